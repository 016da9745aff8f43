package population

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"feedsim/internal/feed"
)

func TestGenerateBoundsAndIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	users := Generate(rng, 200, DefaultMix())

	if len(users) != 200 {
		t.Fatalf("generated %d users", len(users))
	}
	for i, user := range users {
		if user.ID != i+1 {
			t.Fatalf("user %d has id %d", i, user.ID)
		}
		if want := "User" + strconv.Itoa(user.ID); user.Name != want {
			t.Fatalf("user name %q, want %q", user.Name, want)
		}
		if user.Quality < 0 || user.Quality > 1 {
			t.Fatalf("quality out of range: %v", user.Quality)
		}
		if user.X < feed.CoordMin || user.X > feed.CoordMax || user.Y < feed.CoordMin || user.Y > feed.CoordMax {
			t.Fatalf("position out of range: (%v, %v)", user.X, user.Y)
		}
		if user.ExperimentX < feed.PriorCoordMin || user.ExperimentX > feed.PriorCoordMax {
			t.Fatalf("experimental prior out of range: %v", user.ExperimentX)
		}
		if user.ExperimentY < feed.PriorCoordMin || user.ExperimentY > feed.PriorCoordMax {
			t.Fatalf("experimental prior out of range: %v", user.ExperimentY)
		}
		if user.ExperimentQuality != feed.InitialExperimentQuality {
			t.Fatalf("experimental quality prior: %v", user.ExperimentQuality)
		}
		if user.Profile == nil {
			t.Fatalf("user %d has no profile", user.ID)
		}
	}
}

func TestCreatePostsSequentialIDs(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	users := Generate(rng, 3, DefaultMix())
	posts := CreatePosts(rng, users, 4)

	if len(posts) != 12 {
		t.Fatalf("created %d posts", len(posts))
	}
	for i, post := range posts {
		if post.ID != i+1 {
			t.Fatalf("post %d has id %d", i, post.ID)
		}
		// ids follow the per-user outer iteration order
		wantOwner := users[i/4].ID
		if post.UserID != wantOwner {
			t.Fatalf("post %d owned by %d, want %d", post.ID, post.UserID, wantOwner)
		}
		if post.ExperimentX != post.X || post.ExperimentY != post.Y {
			t.Fatalf("post %d experimental position differs from truth at creation", post.ID)
		}
		if post.ExperimentQuality != feed.InitialExperimentQuality {
			t.Fatalf("post %d experimental quality prior: %v", post.ID, post.ExperimentQuality)
		}
	}
}

func TestParseMix(t *testing.T) {
	mix, err := ParseMix("random=0.3,agree=0.4,quality=0.3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(mix) != 3 {
		t.Fatalf("mix size: %d", len(mix))
	}
	weights := mix.Weights()
	if weights["agree"] != 0.4 {
		t.Fatalf("agree weight: %v", weights["agree"])
	}

	mix, err = ParseMix("extremist")
	if err != nil {
		t.Fatalf("bare name: %v", err)
	}
	if len(mix) != 1 || mix[0].Weight != 1 {
		t.Fatalf("bare name mix: %#v", mix)
	}

	if _, err := ParseMix(""); err != nil {
		t.Fatalf("empty spec should fall back to default mix: %v", err)
	}
	if _, err := ParseMix("random=-1"); err == nil {
		t.Fatal("expected error for negative weight")
	}
	if _, err := ParseMix("contrarian=1"); !errors.Is(err, feed.ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
	if _, err := ParseMix("random=zero"); err == nil {
		t.Fatal("expected error for unparsable weight")
	}
}

func TestMixPickRespectsWeights(t *testing.T) {
	mix, err := ParseMix("random=1,extremist=0")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rng := rand.New(rand.NewSource(31))
	users := Generate(rng, 500, mix)
	for _, user := range users {
		if user.Profile.Name() != "random" {
			t.Fatalf("zero-weight profile sampled: %s", user.Profile.Name())
		}
	}
}
