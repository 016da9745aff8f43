// Package feedsim is the embedding API for the feed simulator. It wraps the
// engine, persistence, and artifact writing behind one client.
package feedsim

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"feedsim/internal/feed"
	"feedsim/internal/model"
	"feedsim/internal/population"
	"feedsim/internal/sim"
	"feedsim/internal/stats"
	"feedsim/internal/storage"
)

const (
	defaultRunsDir    = "runs"
	defaultExportsDir = "exports"
	defaultDBPath     = "feedsim.db"

	defaultNumUsers     = 100
	defaultPostsPerUser = 5
	defaultRankedPosts  = 10
)

type Options struct {
	StoreKind  string
	DBPath     string
	RunsDir    string
	ExportsDir string

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

type Client struct {
	store      storage.Store
	storeReady bool
	logger     *zap.Logger

	runsDir    string
	exportsDir string
}

type RunRequest struct {
	Users        int
	PostsPerUser int

	// ProfileMix is a weighted profile spec such as
	// "random=0.25,agree=0.25,quality=0.25,extremist=0.25". Empty selects an
	// equal mix of every profile.
	ProfileMix string

	// UpdateRule selects the position update strategy. Empty selects
	// running-mean assimilation.
	UpdateRule   string
	PullStrength float64

	Seed int64

	// RankedPosts bounds the top and bottom post listings in the artifacts.
	RankedPosts int
}

type RunSummary struct {
	RunID             string
	ArtifactsDir      string
	InteractionCount  int
	TotalInteractions int
	EngagementRate    float64
	Deviation         model.DeviationRecord
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID          string
	CreatedAtUTC   string
	NumUsers       int
	PostsPerUser   int
	UpdateRule     string
	Seed           int64
	EngagementRate float64
}

type SummaryRequest struct {
	RunID  string
	Latest bool
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	runsDir := opts.RunsDir
	if runsDir == "" {
		runsDir = defaultRunsDir
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		logger:     logger,
		runsDir:    runsDir,
		exportsDir: exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Run executes one simulation, persists the outcome, and writes the run
// artifacts.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Users <= 0 {
		req.Users = defaultNumUsers
	}
	if req.PostsPerUser <= 0 {
		req.PostsPerUser = defaultPostsPerUser
	}
	if req.RankedPosts <= 0 {
		req.RankedPosts = defaultRankedPosts
	}

	mix, err := population.ParseMix(req.ProfileMix)
	if err != nil {
		return RunSummary{}, fmt.Errorf("%w: %v", sim.ErrInvalidConfig, err)
	}
	ruleName := req.UpdateRule
	if ruleName == "" {
		ruleName = feed.MeanAssimilation{}.Name()
	}
	rule, err := feed.ParseUpdateRule(ruleName, req.PullStrength)
	if err != nil {
		return RunSummary{}, fmt.Errorf("%w: %v", sim.ErrInvalidConfig, err)
	}

	simulation, err := sim.New(sim.Config{
		NumUsers:     req.Users,
		PostsPerUser: req.PostsPerUser,
		Mix:          mix,
		Rule:         rule,
		Seed:         req.Seed,
	})
	if err != nil {
		return RunSummary{}, err
	}

	if err := c.ensureStore(ctx); err != nil {
		return RunSummary{}, err
	}

	now := time.Now().UTC()
	runID := fmt.Sprintf("%s-%d-%s", rule.Name(), req.Seed, shortID())
	c.logger.Info("starting run",
		zap.String("run_id", runID),
		zap.Int("users", req.Users),
		zap.Int("posts_per_user", req.PostsPerUser),
		zap.String("update_rule", rule.Name()),
		zap.Int64("seed", req.Seed),
	)

	result, err := simulation.Run(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	users := snapshotUsers(result.Users)
	posts := snapshotPosts(result.Posts)
	deviation := stats.ComputeDeviation(users, posts)

	configRecord := model.RunConfigRecord{
		VersionedRecord: currentVersion(),
		RunID:           runID,
		CreatedAtUTC:    now.Format(time.RFC3339Nano),
		NumUsers:        req.Users,
		PostsPerUser:    req.PostsPerUser,
		ProfileMix:      mix.Weights(),
		UpdateRule:      rule.Name(),
		Seed:            req.Seed,
	}
	if rubber, ok := rule.(feed.RubberBand); ok {
		configRecord.PullStrength = rubber.PullStrength
	}
	summaryRecord := model.RunSummaryRecord{
		VersionedRecord:   currentVersion(),
		RunID:             runID,
		InteractionCount:  result.InteractionCount,
		TotalInteractions: result.TotalInteractions,
		EngagementRate:    result.EngagementRate,
		Deviation:         deviation,
	}

	if err := c.store.SaveRunConfig(ctx, configRecord); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveUsers(ctx, runID, users); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SavePosts(ctx, runID, posts); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveRunSummary(ctx, summaryRecord); err != nil {
		return RunSummary{}, err
	}

	runDir, err := stats.WriteRunArtifacts(c.runsDir, stats.RunArtifacts{
		Config:      configRecord,
		Users:       users,
		Posts:       posts,
		Summary:     summaryRecord,
		TopPosts:    stats.TopPostsByQuality(posts, req.RankedPosts),
		BottomPosts: stats.BottomPostsByQuality(posts, req.RankedPosts),
	})
	if err != nil {
		return RunSummary{}, err
	}
	if err := stats.AppendRunIndex(c.runsDir, stats.RunIndexEntry{
		RunID:          runID,
		NumUsers:       req.Users,
		PostsPerUser:   req.PostsPerUser,
		UpdateRule:     rule.Name(),
		Seed:           req.Seed,
		EngagementRate: result.EngagementRate,
		CreatedAtUTC:   configRecord.CreatedAtUTC,
	}); err != nil {
		return RunSummary{}, err
	}

	c.logger.Info("run finished",
		zap.String("run_id", runID),
		zap.Float64("engagement_rate", result.EngagementRate),
		zap.Int("interactions", result.InteractionCount),
	)

	return RunSummary{
		RunID:             runID,
		ArtifactsDir:      filepath.Clean(runDir),
		InteractionCount:  result.InteractionCount,
		TotalInteractions: result.TotalInteractions,
		EngagementRate:    result.EngagementRate,
		Deviation:         deviation,
	}, nil
}

// Runs lists finished runs, newest first.
func (c *Client) Runs(_ context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	entries, err := stats.ListRunIndex(c.runsDir)
	if err != nil {
		return nil, err
	}
	if len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}

	out := make([]RunItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, RunItem{
			RunID:          e.RunID,
			CreatedAtUTC:   e.CreatedAtUTC,
			NumUsers:       e.NumUsers,
			PostsPerUser:   e.PostsPerUser,
			UpdateRule:     e.UpdateRule,
			Seed:           e.Seed,
			EngagementRate: e.EngagementRate,
		})
	}
	return out, nil
}

// Summary loads the stored outcome of one run. The store is consulted first;
// runs recorded by another process fall back to the artifact files.
func (c *Client) Summary(ctx context.Context, req SummaryRequest) (model.RunSummaryRecord, error) {
	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return model.RunSummaryRecord{}, err
	}

	if err := c.ensureStore(ctx); err != nil {
		return model.RunSummaryRecord{}, err
	}
	summary, ok, err := c.store.GetRunSummary(ctx, runID)
	if err != nil {
		return model.RunSummaryRecord{}, err
	}
	if ok {
		return summary, nil
	}

	summary, ok, err = stats.ReadRunSummary(c.runsDir, runID)
	if err != nil {
		return model.RunSummaryRecord{}, err
	}
	if !ok {
		return model.RunSummaryRecord{}, fmt.Errorf("run summary not found: %s", runID)
	}
	return summary, nil
}

// AggregateEngagement summarises engagement across the most recent runs.
func (c *Client) AggregateEngagement(ctx context.Context, limit int) (stats.EngagementStats, error) {
	items, err := c.Runs(ctx, RunsRequest{Limit: limit})
	if err != nil {
		return stats.EngagementStats{}, err
	}
	if len(items) == 0 {
		return stats.EngagementStats{}, errors.New("no runs available")
	}

	summaries := make([]model.RunSummaryRecord, 0, len(items))
	for _, item := range items {
		summary, err := c.Summary(ctx, SummaryRequest{RunID: item.RunID})
		if err != nil {
			return stats.EngagementStats{}, err
		}
		summaries = append(summaries, summary)
	}
	return stats.BuildEngagementStats(summaries)
}

// Export copies one run's artifacts and their CSV renditions into OutDir.
func (c *Client) Export(_ context.Context, req ExportRequest) (ExportSummary, error) {
	if req.RunID != "" && req.Latest {
		return ExportSummary{}, errors.New("use either run id or latest")
	}
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}

	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return ExportSummary{}, err
	}

	exportedDir, err := stats.ExportRunArtifacts(c.runsDir, runID, req.OutDir)
	if err != nil {
		return ExportSummary{}, err
	}
	c.logger.Info("run exported", zap.String("run_id", runID), zap.String("dir", exportedDir))
	return ExportSummary{RunID: runID, Directory: filepath.Clean(exportedDir)}, nil
}

func (c *Client) ensureStore(ctx context.Context) error {
	if c.storeReady {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.storeReady = true
	return nil
}

func (c *Client) resolveRunID(runID string, latest bool) (string, error) {
	if runID != "" && latest {
		return "", errors.New("use either run id or latest")
	}
	if latest {
		entries, err := stats.ListRunIndex(c.runsDir)
		if err != nil {
			return "", err
		}
		if len(entries) == 0 {
			return "", errors.New("no runs available")
		}
		return entries[0].RunID, nil
	}
	if err := stats.ValidateRunID(runID); err != nil {
		return "", err
	}
	return runID, nil
}

func snapshotUsers(users []*feed.User) []model.UserRecord {
	out := make([]model.UserRecord, 0, len(users))
	for _, user := range users {
		out = append(out, model.UserRecord{
			VersionedRecord:   currentVersion(),
			ID:                user.ID,
			Name:              user.Name,
			Quality:           user.Quality,
			X:                 user.X,
			Y:                 user.Y,
			ExperimentX:       user.ExperimentX,
			ExperimentY:       user.ExperimentY,
			ExperimentQuality: user.ExperimentQuality,
			Profile:           user.Profile.Name(),
		})
	}
	return out
}

func snapshotPosts(posts []*feed.Post) []model.PostRecord {
	out := make([]model.PostRecord, 0, len(posts))
	for _, post := range posts {
		out = append(out, model.PostRecord{
			VersionedRecord:   currentVersion(),
			ID:                post.ID,
			UserID:            post.UserID,
			Quality:           post.Quality,
			X:                 post.X,
			Y:                 post.Y,
			ExperimentX:       post.ExperimentX,
			ExperimentY:       post.ExperimentY,
			ExperimentQuality: post.ExperimentQuality,
			Likes:             post.Likes,
			Dislikes:          post.Dislikes,
		})
	}
	return out
}

func currentVersion() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}
}

func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
