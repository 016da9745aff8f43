package main

import (
	"os"
	"path/filepath"
	"testing"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRunThenSummaryAndExport(t *testing.T) {
	base := t.TempDir()
	runsDir := filepath.Join(base, "runs")
	outDir := filepath.Join(base, "exports")

	err := execute(t,
		"run",
		"--runs-dir", runsDir,
		"--users", "10",
		"--posts-per-user", "2",
		"--seed", "42",
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	entries, err := os.ReadDir(runsDir)
	if err != nil {
		t.Fatalf("read runs dir: %v", err)
	}
	foundRunDir := false
	for _, entry := range entries {
		if entry.IsDir() {
			foundRunDir = true
			if _, err := os.Stat(filepath.Join(runsDir, entry.Name(), "summary.json")); err != nil {
				t.Fatalf("expected summary.json in %s: %v", entry.Name(), err)
			}
		}
	}
	if !foundRunDir {
		t.Fatal("expected a run directory under runs dir")
	}

	if err := execute(t, "runs", "--runs-dir", runsDir); err != nil {
		t.Fatalf("runs: %v", err)
	}
	if err := execute(t, "summary", "--runs-dir", runsDir, "--latest"); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if err := execute(t, "export", "--runs-dir", runsDir, "--latest", "--out", outDir); err != nil {
		t.Fatalf("export: %v", err)
	}

	exportEntries, err := os.ReadDir(outDir)
	if err != nil || len(exportEntries) == 0 {
		t.Fatalf("expected exported run directory, err=%v", err)
	}
	if err := execute(t, "runs", "--runs-dir", runsDir, "--aggregate"); err != nil {
		t.Fatalf("runs --aggregate: %v", err)
	}
}

func TestRunWithConfigFile(t *testing.T) {
	base := t.TempDir()
	runsDir := filepath.Join(base, "runs")
	configPath := filepath.Join(base, "run.yaml")
	content := []byte(`users: 5
posts_per_user: 1
update_rule: rubber-band
seed: 7
`)
	if err := os.WriteFile(configPath, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	err := execute(t,
		"run",
		"--runs-dir", runsDir,
		"--config", configPath,
		"--users", "8", // flag wins over the file
	)
	if err != nil {
		t.Fatalf("run with config: %v", err)
	}
}

func TestRunRejectsUnknownRule(t *testing.T) {
	if err := execute(t, "run", "--runs-dir", t.TempDir(), "--rule", "teleport"); err == nil {
		t.Fatal("expected unknown rule error")
	}
}

func TestExportRequiresSelection(t *testing.T) {
	if err := execute(t, "export", "--runs-dir", t.TempDir()); err == nil {
		t.Fatal("expected error without --run or --latest")
	}
}

func TestProfilesAndVersionCommands(t *testing.T) {
	if err := execute(t, "profiles"); err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if err := execute(t, "version"); err != nil {
		t.Fatalf("version: %v", err)
	}
}
