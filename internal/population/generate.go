// Package population samples the initial user and post attributes for a
// simulation run. It only feeds the engine; nothing here reads interaction
// results back.
package population

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"feedsim/internal/feed"
)

// ProfileWeight pairs a behavior profile with its sampling weight.
type ProfileWeight struct {
	Profile feed.Profile
	Weight  float64
}

// Mix is a weighted categorical distribution over behavior profiles.
type Mix []ProfileWeight

// DefaultMix weighs every available profile equally.
func DefaultMix() Mix {
	profiles := feed.Profiles()
	mix := make(Mix, 0, len(profiles))
	for _, profile := range profiles {
		mix = append(mix, ProfileWeight{Profile: profile, Weight: 1})
	}
	return mix
}

// ParseMix parses a spec like "random=0.25,agree=0.25,quality=0.5". A bare
// profile name is shorthand for weight 1, so "random" yields an all-random
// population.
func ParseMix(spec string) (Mix, error) {
	if strings.TrimSpace(spec) == "" {
		return DefaultMix(), nil
	}

	mix := make(Mix, 0, 4)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name := part
		weight := 1.0
		if idx := strings.IndexByte(part, '='); idx >= 0 {
			name = strings.TrimSpace(part[:idx])
			parsed, err := strconv.ParseFloat(strings.TrimSpace(part[idx+1:]), 64)
			if err != nil {
				return nil, fmt.Errorf("parse profile weight %q: %w", part, err)
			}
			weight = parsed
		}
		profile, err := feed.ParseProfile(name)
		if err != nil {
			return nil, err
		}
		mix = append(mix, ProfileWeight{Profile: profile, Weight: weight})
	}
	return mix, mix.Validate()
}

// MixFromWeights builds a mix from a name->weight map, in stable name order.
func MixFromWeights(weights map[string]float64) (Mix, error) {
	if len(weights) == 0 {
		return DefaultMix(), nil
	}
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)

	mix := make(Mix, 0, len(names))
	for _, name := range names {
		profile, err := feed.ParseProfile(name)
		if err != nil {
			return nil, err
		}
		mix = append(mix, ProfileWeight{Profile: profile, Weight: weights[name]})
	}
	return mix, mix.Validate()
}

// Validate rejects negative weights and all-zero totals.
func (m Mix) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("profile mix is empty")
	}
	total := 0.0
	for _, item := range m {
		if item.Profile == nil {
			return fmt.Errorf("profile mix entry has no profile")
		}
		if item.Weight < 0 {
			return fmt.Errorf("profile %s has negative weight %v", item.Profile.Name(), item.Weight)
		}
		total += item.Weight
	}
	if total <= 0 {
		return fmt.Errorf("profile mix requires at least one positive weight")
	}
	return nil
}

// Weights reports the mix as a name->weight map for persistence.
func (m Mix) Weights() map[string]float64 {
	out := make(map[string]float64, len(m))
	for _, item := range m {
		out[item.Profile.Name()] += item.Weight
	}
	return out
}

func (m Mix) pick(rng *rand.Rand) feed.Profile {
	total := 0.0
	for _, item := range m {
		total += item.Weight
	}
	pick := rng.Float64() * total
	acc := 0.0
	for _, item := range m {
		acc += item.Weight
		if pick <= acc {
			return item.Profile
		}
	}
	return m[len(m)-1].Profile
}

// Generate samples n users with IDs 1..n. Ground-truth quality is rounded to
// two decimals; the experimental position prior is drawn from the narrower
// [-2,2] band.
func Generate(rng *rand.Rand, n int, mix Mix) []*feed.User {
	users := make([]*feed.User, 0, n)
	for id := 1; id <= n; id++ {
		quality := math.Round(rng.Float64()*100) / 100
		x := uniform(rng, feed.CoordMin, feed.CoordMax)
		y := uniform(rng, feed.CoordMin, feed.CoordMax)
		profile := mix.pick(rng)

		users = append(users, &feed.User{
			ID:                id,
			Name:              fmt.Sprintf("User%d", id),
			Quality:           quality,
			X:                 x,
			Y:                 y,
			ExperimentX:       uniform(rng, feed.PriorCoordMin, feed.PriorCoordMax),
			ExperimentY:       uniform(rng, feed.PriorCoordMin, feed.PriorCoordMax),
			ExperimentQuality: feed.InitialExperimentQuality,
			Profile:           profile,
		})
	}
	return users
}

// CreatePosts has each user author perUser posts in turn. Post IDs are
// assigned sequentially at creation, so they follow the per-user outer
// iteration order.
func CreatePosts(rng *rand.Rand, users []*feed.User, perUser int) []*feed.Post {
	posts := make([]*feed.Post, 0, len(users)*perUser)
	for _, user := range users {
		for i := 0; i < perUser; i++ {
			quality := rng.Float64()
			x := uniform(rng, feed.CoordMin, feed.CoordMax)
			y := uniform(rng, feed.CoordMin, feed.CoordMax)
			posts = append(posts, feed.NewPost(len(posts)+1, user.ID, quality, x, y))
		}
	}
	return posts
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
