package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRunFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := []byte(`users: 50
posts_per_user: 3
profile_mix: "random=0.5,extremist=0.5"
update_rule: rubber-band
pull_strength: 0.2
seed: 9
ranked_posts: 5
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadRunFileConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	req := cfg.toRequest()
	if req.Users != 50 || req.PostsPerUser != 3 || req.Seed != 9 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.UpdateRule != "rubber-band" || req.PullStrength != 0.2 {
		t.Fatalf("unexpected rule settings: %+v", req)
	}
	if req.ProfileMix != "random=0.5,extremist=0.5" || req.RankedPosts != 5 {
		t.Fatalf("unexpected mix settings: %+v", req)
	}
}

func TestLoadRunFileConfigMissingFile(t *testing.T) {
	if _, err := loadRunFileConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRunFileConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("users: [not an int"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadRunFileConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
