package storage

import (
	"context"

	"feedsim/internal/model"
)

// Store is the run archive: configuration, final user/post snapshots, and
// the summary for each completed simulation run.
type Store interface {
	Init(ctx context.Context) error
	SaveRunConfig(ctx context.Context, cfg model.RunConfigRecord) error
	GetRunConfig(ctx context.Context, runID string) (model.RunConfigRecord, bool, error)
	ListRunConfigs(ctx context.Context) ([]model.RunConfigRecord, error)
	SaveUsers(ctx context.Context, runID string, users []model.UserRecord) error
	GetUsers(ctx context.Context, runID string) ([]model.UserRecord, bool, error)
	SavePosts(ctx context.Context, runID string, posts []model.PostRecord) error
	GetPosts(ctx context.Context, runID string) ([]model.PostRecord, bool, error)
	SaveRunSummary(ctx context.Context, summary model.RunSummaryRecord) error
	GetRunSummary(ctx context.Context, runID string) (model.RunSummaryRecord, bool, error)
}
