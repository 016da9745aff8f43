package feed

import (
	"errors"
	"fmt"
)

// ErrUnknownRule is returned for an update-rule tag no rule claims.
var ErrUnknownRule = errors.New("unknown update rule")

// UpdateRule moves the experimental positions of both participants after a
// like. Engagement counters and the quality adjustment are shared across
// rules and handled by Interact.
type UpdateRule interface {
	Name() string
	ApplyLike(u *User, p *Post)
}

// Interact applies one already-decided action to the user/post pair. The
// distance is recomputed from the current experimental state rather than
// carried over from the decision step.
func Interact(u *User, p *Post, action Action, rule UpdateRule) {
	distance := experimentDistance(u, p)
	impact := (1 - distance/10) * u.ExperimentQuality / QualityScale

	switch action {
	case ActionLike:
		p.Likes++
		p.ExperimentQuality = clamp(p.ExperimentQuality+100*impact, 0, QualityScale)
		rule.ApplyLike(u, p)
	case ActionDislike:
		p.Dislikes++
		p.ExperimentQuality = clamp(p.ExperimentQuality-100*impact, 0, QualityScale)
	}
}

// MeanAssimilation sets each participant's experimental position to the mean
// position of everything it has positively interacted with: the post moves to
// the mean of all its likers, the user to the mean of all posts it ever
// liked. The post assimilates first, so the user's history samples the post's
// updated position.
type MeanAssimilation struct{}

func (MeanAssimilation) Name() string { return "running-mean" }

func (MeanAssimilation) ApplyLike(u *User, p *Post) {
	p.recordLiker(u.ExperimentX, u.ExperimentY)
	if x, y, ok := p.likerMean(); ok {
		p.setExperimentPosition(x, y)
	}

	u.recordLikedPost(p.ExperimentX, p.ExperimentY)
	if x, y, ok := u.likedMean(); ok {
		u.setExperimentPosition(x, y)
	}
}

// RubberBand moves both participants a fixed fraction of the remaining gap
// toward each other. Both deltas are computed from the same pre-update
// snapshot, so the order of the two moves does not matter.
type RubberBand struct {
	PullStrength float64
}

func (RubberBand) Name() string { return "rubber-band" }

func (r RubberBand) ApplyLike(u *User, p *Post) {
	pull := r.PullStrength
	if pull == 0 {
		pull = DefaultPullStrength
	}

	ux, uy := u.ExperimentX, u.ExperimentY
	px, py := p.ExperimentX, p.ExperimentY
	u.setExperimentPosition(ux+pull*(px-ux), uy+pull*(py-uy))
	p.setExperimentPosition(px+pull*(ux-px), py+pull*(uy-py))
}

// UpdateRules lists the selectable update rules in a stable order.
func UpdateRules() []UpdateRule {
	return []UpdateRule{MeanAssimilation{}, RubberBand{PullStrength: DefaultPullStrength}}
}

// ParseUpdateRule resolves a rule tag. pullStrength only applies to the
// rubber-band rule; zero selects the default.
func ParseUpdateRule(name string, pullStrength float64) (UpdateRule, error) {
	switch name {
	case MeanAssimilation{}.Name():
		return MeanAssimilation{}, nil
	case RubberBand{}.Name():
		if pullStrength == 0 {
			pullStrength = DefaultPullStrength
		}
		if pullStrength < 0 || pullStrength > 1 {
			return nil, fmt.Errorf("pull strength must be in (0, 1], got %v", pullStrength)
		}
		return RubberBand{PullStrength: pullStrength}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}
}
