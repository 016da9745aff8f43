package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"feedsim/internal/feed"
	"feedsim/internal/population"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero users", Config{NumUsers: 0, PostsPerUser: 1}},
		{"negative users", Config{NumUsers: -3, PostsPerUser: 1}},
		{"zero posts", Config{NumUsers: 5, PostsPerUser: 0}},
		{"negative posts", Config{NumUsers: 5, PostsPerUser: -1}},
		{"all-zero mix", Config{NumUsers: 5, PostsPerUser: 1, Mix: population.Mix{
			{Profile: feed.RandomProfile{}, Weight: 0},
		}}},
	}
	for _, tc := range cases {
		if _, err := New(tc.cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", tc.name, err)
		}
	}
}

func TestRunTwoUserScenario(t *testing.T) {
	mix, err := population.ParseMix("random")
	if err != nil {
		t.Fatalf("mix: %v", err)
	}
	s, err := New(Config{NumUsers: 2, PostsPerUser: 1, Mix: mix, Seed: 11})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.TotalInteractions != 4 {
		t.Fatalf("total interactions: %d", result.TotalInteractions)
	}
	if result.InteractionCount < 0 || result.InteractionCount > 4 {
		t.Fatalf("interaction count: %d", result.InteractionCount)
	}
	if result.EngagementRate < 0 || result.EngagementRate > 1 {
		t.Fatalf("engagement rate: %v", result.EngagementRate)
	}
	if len(result.Users) != 2 || len(result.Posts) != 2 {
		t.Fatalf("collections: %d users, %d posts", len(result.Users), len(result.Posts))
	}
	for _, post := range result.Posts {
		if post.Likes+post.Dislikes > 2 {
			t.Fatalf("post %d has %d engagements from 2 users", post.ID, post.Likes+post.Dislikes)
		}
	}
}

func TestRunIsDeterministicForFixedSeed(t *testing.T) {
	run := func() Result {
		s, err := New(Config{NumUsers: 20, PostsPerUser: 3, Seed: 99})
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		result, err := s.Run(context.Background())
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return result
	}

	a := run()
	b := run()

	if a.InteractionCount != b.InteractionCount || a.EngagementRate != b.EngagementRate {
		t.Fatalf("engagement diverged: %d/%v vs %d/%v",
			a.InteractionCount, a.EngagementRate, b.InteractionCount, b.EngagementRate)
	}
	for i := range a.Users {
		ua, ub := a.Users[i], b.Users[i]
		if ua.ExperimentX != ub.ExperimentX || ua.ExperimentY != ub.ExperimentY ||
			ua.Profile.Name() != ub.Profile.Name() || ua.Quality != ub.Quality {
			t.Fatalf("user %d diverged between identical runs", ua.ID)
		}
	}
	for i := range a.Posts {
		pa, pb := a.Posts[i], b.Posts[i]
		if pa.ExperimentX != pb.ExperimentX || pa.ExperimentQuality != pb.ExperimentQuality ||
			pa.Likes != pb.Likes || pa.Dislikes != pb.Dislikes {
			t.Fatalf("post %d diverged between identical runs", pa.ID)
		}
	}
}

func TestRunAllRandomEngagementConverges(t *testing.T) {
	mix, err := population.ParseMix("random")
	if err != nil {
		t.Fatalf("mix: %v", err)
	}
	s, err := New(Config{NumUsers: 100, PostsPerUser: 5, Mix: mix, Seed: 1})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// 50k pairings of a fixed 15/15/70 draw: the engagement rate should sit
	// close to 0.30.
	if math.Abs(result.EngagementRate-0.30) > 0.02 {
		t.Fatalf("engagement rate %v not near 0.30", result.EngagementRate)
	}
}

func TestRunKeepsStateInBounds(t *testing.T) {
	for _, rule := range feed.UpdateRules() {
		s, err := New(Config{NumUsers: 50, PostsPerUser: 4, Rule: rule, Seed: 5})
		if err != nil {
			t.Fatalf("%s: new: %v", rule.Name(), err)
		}
		result, err := s.Run(context.Background())
		if err != nil {
			t.Fatalf("%s: run: %v", rule.Name(), err)
		}
		for _, user := range result.Users {
			if user.ExperimentX < feed.CoordMin || user.ExperimentX > feed.CoordMax ||
				user.ExperimentY < feed.CoordMin || user.ExperimentY > feed.CoordMax {
				t.Fatalf("%s: user %d out of bounds", rule.Name(), user.ID)
			}
			if user.ExperimentQuality < 0 || user.ExperimentQuality > feed.QualityScale {
				t.Fatalf("%s: user %d quality out of bounds", rule.Name(), user.ID)
			}
		}
		for _, post := range result.Posts {
			if post.ExperimentX < feed.CoordMin || post.ExperimentX > feed.CoordMax ||
				post.ExperimentY < feed.CoordMin || post.ExperimentY > feed.CoordMax {
				t.Fatalf("%s: post %d out of bounds", rule.Name(), post.ID)
			}
			if post.ExperimentQuality < 0 || post.ExperimentQuality > feed.QualityScale {
				t.Fatalf("%s: post %d quality out of bounds", rule.Name(), post.ID)
			}
		}
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	s, err := New(Config{NumUsers: 10, PostsPerUser: 2, Seed: 3})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunExtremistOnlyNeverDislikes(t *testing.T) {
	mix, err := population.ParseMix("extremist")
	if err != nil {
		t.Fatalf("mix: %v", err)
	}
	s, err := New(Config{NumUsers: 30, PostsPerUser: 3, Mix: mix, Seed: 8})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, post := range result.Posts {
		if post.Dislikes != 0 {
			t.Fatalf("post %d disliked by extremist population", post.ID)
		}
	}
}
