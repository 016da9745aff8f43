// Package sim drives one complete simulation run: population creation, the
// post-creation phase, and the exhaustive user-by-post interaction pass.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"feedsim/internal/feed"
	"feedsim/internal/population"
)

// ErrInvalidConfig covers every rejected simulation configuration.
var ErrInvalidConfig = errors.New("invalid simulation configuration")

type Config struct {
	NumUsers     int
	PostsPerUser int

	// Mix defaults to an equal weighting of every profile.
	Mix population.Mix

	// Rule defaults to running-mean assimilation.
	Rule feed.UpdateRule

	Seed int64
}

type Result struct {
	Users []*feed.User
	Posts []*feed.Post

	InteractionCount  int
	TotalInteractions int
	EngagementRate    float64
}

// Simulation is single-threaded on purpose: one seeded rng feeds population
// sampling and every decision draw in a fixed order, so a seed reproduces a
// run bit-for-bit. Parallelizing the pass would reorder the stream and race
// on the running-mean accumulators.
type Simulation struct {
	cfg Config
	rng *rand.Rand
}

func New(cfg Config) (*Simulation, error) {
	if cfg.NumUsers <= 0 {
		return nil, fmt.Errorf("%w: num users must be > 0, got %d", ErrInvalidConfig, cfg.NumUsers)
	}
	if cfg.PostsPerUser <= 0 {
		return nil, fmt.Errorf("%w: posts per user must be > 0, got %d", ErrInvalidConfig, cfg.PostsPerUser)
	}
	if cfg.Mix == nil {
		cfg.Mix = population.DefaultMix()
	}
	if err := cfg.Mix.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Rule == nil {
		cfg.Rule = feed.MeanAssimilation{}
	}

	return &Simulation{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Run executes the two phases and reports the final collections plus the
// engagement rate. Each user evaluates its decision policy against each post
// exactly once; the single decision per pairing feeds both the rate counter
// and the state update.
func (s *Simulation) Run(ctx context.Context) (Result, error) {
	users := population.Generate(s.rng, s.cfg.NumUsers, s.cfg.Mix)
	posts := population.CreatePosts(s.rng, users, s.cfg.PostsPerUser)

	interactionCount := 0
	totalInteractions := 0
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		for _, post := range posts {
			action := user.Profile.Decide(user, post, s.rng)
			if action != feed.ActionNone {
				interactionCount++
			}
			totalInteractions++
			feed.Interact(user, post, action, s.cfg.Rule)
		}
	}

	return Result{
		Users:             users,
		Posts:             posts,
		InteractionCount:  interactionCount,
		TotalInteractions: totalInteractions,
		EngagementRate:    float64(interactionCount) / float64(totalInteractions),
	}, nil
}
