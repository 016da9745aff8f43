package stats

import (
	"sort"

	"feedsim/internal/feed"
	"feedsim/internal/model"
)

// ComputeDeviation measures how far the experimental estimates drifted from
// the ground truth, as one RMS per tracked dimension. Post quality is compared
// on the scaled axis the estimates live on.
func ComputeDeviation(users []model.UserRecord, posts []model.PostRecord) model.DeviationRecord {
	var dev model.DeviationRecord
	if len(users) > 0 {
		ux := make([]float64, 0, len(users))
		uy := make([]float64, 0, len(users))
		for _, user := range users {
			ux = append(ux, user.X-user.ExperimentX)
			uy = append(uy, user.Y-user.ExperimentY)
		}
		dev.UserX, _ = RMS(ux)
		dev.UserY, _ = RMS(uy)
	}
	if len(posts) > 0 {
		px := make([]float64, 0, len(posts))
		py := make([]float64, 0, len(posts))
		pq := make([]float64, 0, len(posts))
		for _, post := range posts {
			px = append(px, post.X-post.ExperimentX)
			py = append(py, post.Y-post.ExperimentY)
			pq = append(pq, post.Quality*feed.QualityScale-post.ExperimentQuality)
		}
		dev.PostX, _ = RMS(px)
		dev.PostY, _ = RMS(py)
		dev.Quality, _ = RMS(pq)
	}
	return dev
}

// RankedPost pairs a post with its rank in a quality ordering. The embedded
// record keeps the experimental estimate next to the ground truth it is
// ranked on.
type RankedPost struct {
	Rank int              `json:"rank"`
	Post model.PostRecord `json:"post"`
}

// TopPostsByQuality returns up to n posts ranked best-first by their actual
// quality. Ties break on post ID so output is reproducible.
func TopPostsByQuality(posts []model.PostRecord, n int) []RankedPost {
	return rankPosts(posts, n, func(a, b model.PostRecord) bool {
		if a.Quality == b.Quality {
			return a.ID < b.ID
		}
		return a.Quality > b.Quality
	})
}

// BottomPostsByQuality returns up to n posts ranked worst-first by their
// actual quality.
func BottomPostsByQuality(posts []model.PostRecord, n int) []RankedPost {
	return rankPosts(posts, n, func(a, b model.PostRecord) bool {
		if a.Quality == b.Quality {
			return a.ID < b.ID
		}
		return a.Quality < b.Quality
	})
}

func rankPosts(posts []model.PostRecord, n int, less func(a, b model.PostRecord) bool) []RankedPost {
	if n <= 0 || len(posts) == 0 {
		return []RankedPost{}
	}
	sorted := make([]model.PostRecord, len(posts))
	copy(sorted, posts)
	sort.Slice(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	ranked := make([]RankedPost, 0, n)
	for i := 0; i < n; i++ {
		ranked = append(ranked, RankedPost{Rank: i + 1, Post: sorted[i]})
	}
	return ranked
}
