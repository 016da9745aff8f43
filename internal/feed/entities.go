package feed

// Coordinate and quality bounds shared by users and posts. Experimental
// values are clamped back into these ranges after every mutation.
const (
	CoordMin = -5.0
	CoordMax = 5.0

	PriorCoordMin = -2.0
	PriorCoordMax = 2.0

	QualityScale             = 10000.0
	InitialExperimentQuality = 5000.0

	// DefaultPullStrength is the fraction of the remaining positional gap
	// covered per like under the rubber-band rule.
	DefaultPullStrength = 0.1
)

// User is a participant in the feed. Ground-truth attributes (Quality, X, Y)
// are fixed at creation; the Experiment* fields are the inferred estimate
// assembled from observed interactions.
type User struct {
	ID      int
	Name    string
	Quality float64
	X       float64
	Y       float64

	ExperimentX       float64
	ExperimentY       float64
	ExperimentQuality float64

	Profile Profile

	likedSumX  float64
	likedSumY  float64
	likedCount int
}

// Post is an item in the feed. Unlike users, posts start "honest": their
// experimental position is initialized to the (clamped) true position.
type Post struct {
	ID     int
	UserID int

	Quality float64
	X       float64
	Y       float64

	ExperimentX       float64
	ExperimentY       float64
	ExperimentQuality float64

	Likes    int
	Dislikes int

	likerSumX  float64
	likerSumY  float64
	likerCount int
}

// NewPost clamps the true coordinates into bounds and seeds the experimental
// state from them.
func NewPost(id, userID int, quality, x, y float64) *Post {
	x = clamp(x, CoordMin, CoordMax)
	y = clamp(y, CoordMin, CoordMax)
	return &Post{
		ID:                id,
		UserID:            userID,
		Quality:           quality,
		X:                 x,
		Y:                 y,
		ExperimentX:       x,
		ExperimentY:       y,
		ExperimentQuality: InitialExperimentQuality,
	}
}

func (u *User) setExperimentPosition(x, y float64) {
	u.ExperimentX = clamp(x, CoordMin, CoordMax)
	u.ExperimentY = clamp(y, CoordMin, CoordMax)
}

func (p *Post) setExperimentPosition(x, y float64) {
	p.ExperimentX = clamp(x, CoordMin, CoordMax)
	p.ExperimentY = clamp(y, CoordMin, CoordMax)
}

// recordLikedPost folds a liked post's position into the user's running mean.
func (u *User) recordLikedPost(x, y float64) {
	u.likedSumX += x
	u.likedSumY += y
	u.likedCount++
}

// likedMean reports the mean position of every post the user has liked. The
// second return is false when the user has liked nothing yet; callers must
// not move the user in that case.
func (u *User) likedMean() (float64, float64, bool) {
	if u.likedCount == 0 {
		return 0, 0, false
	}
	n := float64(u.likedCount)
	return u.likedSumX / n, u.likedSumY / n, true
}

// recordLiker folds a liking user's position into the post's running mean.
func (p *Post) recordLiker(x, y float64) {
	p.likerSumX += x
	p.likerSumY += y
	p.likerCount++
}

func (p *Post) likerMean() (float64, float64, bool) {
	if p.likerCount == 0 {
		return 0, 0, false
	}
	n := float64(p.likerCount)
	return p.likerSumX / n, p.likerSumY / n, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
