package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"feedsim/pkg/feedsim"
)

// RunFileConfig is the YAML shape of a run request. Flags passed on the
// command line override file values.
type RunFileConfig struct {
	Users        int     `yaml:"users"`
	PostsPerUser int     `yaml:"posts_per_user"`
	ProfileMix   string  `yaml:"profile_mix"`
	UpdateRule   string  `yaml:"update_rule"`
	PullStrength float64 `yaml:"pull_strength"`
	Seed         int64   `yaml:"seed"`
	RankedPosts  int     `yaml:"ranked_posts"`
}

func loadRunFileConfig(path string) (RunFileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunFileConfig{}, err
	}
	var cfg RunFileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunFileConfig{}, fmt.Errorf("parse run config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultRunRequest leaves every field zero; the client substitutes its own
// defaults for unset values.
func defaultRunRequest() feedsim.RunRequest {
	return feedsim.RunRequest{}
}

func (c RunFileConfig) toRequest() feedsim.RunRequest {
	return feedsim.RunRequest{
		Users:        c.Users,
		PostsPerUser: c.PostsPerUser,
		ProfileMix:   c.ProfileMix,
		UpdateRule:   c.UpdateRule,
		PullStrength: c.PullStrength,
		Seed:         c.Seed,
		RankedPosts:  c.RankedPosts,
	}
}
