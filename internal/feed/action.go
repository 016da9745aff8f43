package feed

// Action is the outcome of one decision-policy evaluation.
type Action uint8

const (
	ActionNone Action = iota
	ActionLike
	ActionDislike
)

func (a Action) String() string {
	switch a {
	case ActionLike:
		return "like"
	case ActionDislike:
		return "dislike"
	default:
		return "none"
	}
}
