package stats

import (
	"fmt"

	"feedsim/internal/model"
)

// EngagementStats aggregates engagement across a set of finished runs,
// typically the same configuration swept over seeds.
type EngagementStats struct {
	TotalRuns int      `json:"total_runs"`
	RunIDs    []string `json:"run_ids"`
	Mean      float64  `json:"mean"`
	Std       float64  `json:"std"`
	Min       float64  `json:"min"`
	Max       float64  `json:"max"`
}

// BuildEngagementStats summarises the engagement rates of the given runs.
func BuildEngagementStats(summaries []model.RunSummaryRecord) (EngagementStats, error) {
	if len(summaries) == 0 {
		return EngagementStats{}, fmt.Errorf("at least one run summary is required")
	}

	result := EngagementStats{
		TotalRuns: len(summaries),
		RunIDs:    make([]string, 0, len(summaries)),
	}
	rates := make([]float64, 0, len(summaries))
	for _, summary := range summaries {
		result.RunIDs = append(result.RunIDs, summary.RunID)
		rates = append(rates, summary.EngagementRate)
	}

	var err error
	if result.Mean, err = Avg(rates); err != nil {
		return EngagementStats{}, err
	}
	if result.Std, err = Std(rates); err != nil {
		return EngagementStats{}, err
	}
	result.Min = rates[0]
	result.Max = rates[0]
	for _, rate := range rates[1:] {
		if rate < result.Min {
			result.Min = rate
		}
		if rate > result.Max {
			result.Max = rate
		}
	}
	return result, nil
}
