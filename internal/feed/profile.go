package feed

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrUnknownProfile is returned for a behavior-profile tag no policy claims.
var ErrUnknownProfile = errors.New("unknown behavior profile")

// Profile is one user behavior policy. Decide is a pure function of the
// current experimental state of both participants plus draws from rng; it
// must not mutate either entity.
type Profile interface {
	Name() string
	Decide(u *User, p *Post, rng *rand.Rand) Action
}

// experimentDistance is the euclidean distance between the experimental
// positions. It is intentionally unnormalized: with coordinates in [-5,5] it
// ranges up to ~14.14, so the distance/10 terms in the policies can leave
// [0,1]. The weighted draw tolerates the resulting degenerate weights.
func experimentDistance(u *User, p *Post) float64 {
	return math.Hypot(u.ExperimentX-p.ExperimentX, u.ExperimentY-p.ExperimentY)
}

// weightedAction draws one action from three unnormalized relative weights.
// Negative weights count as zero; a non-positive total yields ActionNone.
func weightedAction(rng *rand.Rand, like, dislike, none float64) Action {
	like = math.Max(like, 0)
	dislike = math.Max(dislike, 0)
	none = math.Max(none, 0)

	total := like + dislike + none
	if total <= 0 {
		return ActionNone
	}
	pick := rng.Float64() * total
	if pick < like {
		return ActionLike
	}
	if pick < like+dislike {
		return ActionDislike
	}
	return ActionNone
}

// RandomProfile interacts with a fixed 15/15/70 split regardless of state.
type RandomProfile struct{}

func (RandomProfile) Name() string { return "random" }

func (RandomProfile) Decide(_ *User, _ *Post, rng *rand.Rand) Action {
	return weightedAction(rng, 0.15, 0.15, 0.70)
}

// AgreeProfile favors posts that are close in opinion space or high quality.
type AgreeProfile struct{}

func (AgreeProfile) Name() string { return "agree" }

func (AgreeProfile) Decide(u *User, p *Post, rng *rand.Rand) Action {
	distance := experimentDistance(u, p)
	qualityFactor := p.ExperimentQuality / QualityScale

	like := 0.4*(1-distance/10) + 0.3*qualityFactor
	dislike := 0.3*(distance/10) + 0.2*(1-qualityFactor)
	return weightedAction(rng, like, dislike, 1-like-dislike)
}

// QualityProfile weighs inferred quality more heavily than proximity.
type QualityProfile struct{}

func (QualityProfile) Name() string { return "quality" }

func (QualityProfile) Decide(u *User, p *Post, rng *rand.Rand) Action {
	distance := experimentDistance(u, p)
	qualityFactor := p.ExperimentQuality / QualityScale

	like := 0.5*qualityFactor + 0.2*(1-distance/10)
	dislike := 0.4*(distance/10) + 0.3*(1-qualityFactor)
	return weightedAction(rng, like, dislike, 1-like-dislike)
}

// ExtremistProfile deterministically likes posts far from the origin on both
// axes and never dislikes anything.
type ExtremistProfile struct{}

const extremistThreshold = 3.5

func (ExtremistProfile) Name() string { return "extremist" }

func (ExtremistProfile) Decide(_ *User, p *Post, _ *rand.Rand) Action {
	if math.Abs(p.ExperimentX) >= extremistThreshold && math.Abs(p.ExperimentY) >= extremistThreshold {
		return ActionLike
	}
	return ActionNone
}

// Profiles lists every available behavior profile in a stable order.
func Profiles() []Profile {
	return []Profile{RandomProfile{}, AgreeProfile{}, QualityProfile{}, ExtremistProfile{}}
}

func ParseProfile(name string) (Profile, error) {
	for _, profile := range Profiles() {
		if profile.Name() == name {
			return profile, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
}
