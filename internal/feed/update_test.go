package feed

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestInteractDislikeDropsQualityOnly(t *testing.T) {
	user := &User{ID: 1, ExperimentQuality: InitialExperimentQuality}
	post := NewPost(1, 2, 0.5, 3, 4)

	// distance 5 -> impact (1-0.5)*5000/10000 = 0.25 -> drop 25.
	Interact(user, post, ActionDislike, MeanAssimilation{})

	if post.Dislikes != 1 || post.Likes != 0 {
		t.Fatalf("counters: likes=%d dislikes=%d", post.Likes, post.Dislikes)
	}
	if !almostEqual(post.ExperimentQuality, 4975) {
		t.Fatalf("quality after dislike: %v", post.ExperimentQuality)
	}
	if post.ExperimentX != 3 || post.ExperimentY != 4 {
		t.Fatalf("dislike moved the post: (%v, %v)", post.ExperimentX, post.ExperimentY)
	}
	if user.ExperimentX != 0 || user.ExperimentY != 0 {
		t.Fatalf("dislike moved the user: (%v, %v)", user.ExperimentX, user.ExperimentY)
	}
}

func TestInteractNoneMutatesNothing(t *testing.T) {
	user := &User{ID: 1, ExperimentX: 1, ExperimentY: -1, ExperimentQuality: InitialExperimentQuality}
	post := NewPost(1, 2, 0.5, 2, 2)

	Interact(user, post, ActionNone, RubberBand{PullStrength: 0.5})

	if post.Likes != 0 || post.Dislikes != 0 {
		t.Fatalf("counters changed: likes=%d dislikes=%d", post.Likes, post.Dislikes)
	}
	if post.ExperimentQuality != InitialExperimentQuality {
		t.Fatalf("quality changed: %v", post.ExperimentQuality)
	}
	if user.ExperimentX != 1 || user.ExperimentY != -1 {
		t.Fatalf("user moved: (%v, %v)", user.ExperimentX, user.ExperimentY)
	}
}

func TestMeanAssimilationSingleLikeMatchesPostExactly(t *testing.T) {
	user := &User{ID: 1, ExperimentX: 1.3, ExperimentY: -0.7, ExperimentQuality: InitialExperimentQuality}
	post := NewPost(1, 2, 0.5, 2.4, 2.4)

	Interact(user, post, ActionLike, MeanAssimilation{})

	// A one-element mean is the element itself, with no rounding slack.
	if user.ExperimentX != post.ExperimentX || user.ExperimentY != post.ExperimentY {
		t.Fatalf("user (%v, %v) != post (%v, %v)",
			user.ExperimentX, user.ExperimentY, post.ExperimentX, post.ExperimentY)
	}
}

func TestMeanAssimilationTracksLikerMean(t *testing.T) {
	a := &User{ID: 1, ExperimentX: 2, ExperimentQuality: InitialExperimentQuality}
	b := &User{ID: 2, ExperimentX: 4, ExperimentQuality: InitialExperimentQuality}
	post := NewPost(1, 3, 0.5, 0, 0)

	Interact(a, post, ActionLike, MeanAssimilation{})
	if !almostEqual(post.ExperimentX, 2) || !almostEqual(post.ExperimentY, 0) {
		t.Fatalf("post after first like: (%v, %v)", post.ExperimentX, post.ExperimentY)
	}
	if !almostEqual(a.ExperimentX, 2) {
		t.Fatalf("first liker after like: %v", a.ExperimentX)
	}

	Interact(b, post, ActionLike, MeanAssimilation{})
	if !almostEqual(post.ExperimentX, 3) {
		t.Fatalf("post should sit at the liker mean, got %v", post.ExperimentX)
	}
	if !almostEqual(b.ExperimentX, 3) {
		t.Fatalf("second liker samples the updated post position, got %v", b.ExperimentX)
	}
	if post.Likes != 2 {
		t.Fatalf("likes: %d", post.Likes)
	}
}

func TestRubberBandPullsBothFromPreUpdateSnapshot(t *testing.T) {
	user := &User{ID: 1, ExperimentQuality: InitialExperimentQuality}
	post := NewPost(1, 2, 0.5, 5, 5)

	Interact(user, post, ActionLike, RubberBand{PullStrength: 0.1})

	if !almostEqual(user.ExperimentX, 0.5) || !almostEqual(user.ExperimentY, 0.5) {
		t.Fatalf("user after pull: (%v, %v)", user.ExperimentX, user.ExperimentY)
	}
	if !almostEqual(post.ExperimentX, 4.5) || !almostEqual(post.ExperimentY, 4.5) {
		t.Fatalf("post after pull: (%v, %v)", post.ExperimentX, post.ExperimentY)
	}
}

func TestExperimentalStateStaysClamped(t *testing.T) {
	user := &User{ID: 1, ExperimentX: CoordMin, ExperimentY: CoordMax, ExperimentQuality: QualityScale}
	post := NewPost(1, 2, 1.0, CoordMax, CoordMin)
	post.ExperimentQuality = QualityScale - 1

	for i := 0; i < 200; i++ {
		Interact(user, post, ActionLike, RubberBand{PullStrength: 1})
		Interact(user, post, ActionLike, MeanAssimilation{})
	}
	checkBounds := func(label string, x, y, q float64) {
		t.Helper()
		if x < CoordMin || x > CoordMax || y < CoordMin || y > CoordMax {
			t.Fatalf("%s position out of bounds: (%v, %v)", label, x, y)
		}
		if q < 0 || q > QualityScale {
			t.Fatalf("%s quality out of bounds: %v", label, q)
		}
	}
	checkBounds("user", user.ExperimentX, user.ExperimentY, user.ExperimentQuality)
	checkBounds("post", post.ExperimentX, post.ExperimentY, post.ExperimentQuality)

	low := &User{ID: 3, ExperimentQuality: QualityScale}
	target := NewPost(2, 4, 0, 0, 0)
	target.ExperimentQuality = 10
	for i := 0; i < 50; i++ {
		Interact(low, target, ActionDislike, MeanAssimilation{})
	}
	if target.ExperimentQuality != 0 {
		t.Fatalf("quality floor: %v", target.ExperimentQuality)
	}
}

func TestParseUpdateRule(t *testing.T) {
	rule, err := ParseUpdateRule("running-mean", 0)
	if err != nil {
		t.Fatalf("running-mean: %v", err)
	}
	if _, ok := rule.(MeanAssimilation); !ok {
		t.Fatalf("unexpected rule type %T", rule)
	}

	rule, err = ParseUpdateRule("rubber-band", 0)
	if err != nil {
		t.Fatalf("rubber-band: %v", err)
	}
	if rb, ok := rule.(RubberBand); !ok || rb.PullStrength != DefaultPullStrength {
		t.Fatalf("expected default pull strength, got %#v", rule)
	}

	if _, err := ParseUpdateRule("rubber-band", 1.5); err == nil {
		t.Fatal("expected error for pull strength > 1")
	}
	if _, err := ParseUpdateRule("teleport", 0); !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
}
