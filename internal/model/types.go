package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// UserRecord is the persisted snapshot of a user after the interaction pass.
type UserRecord struct {
	VersionedRecord
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Quality           float64 `json:"quality"`
	X                 float64 `json:"x"`
	Y                 float64 `json:"y"`
	ExperimentX       float64 `json:"experiment_x"`
	ExperimentY       float64 `json:"experiment_y"`
	ExperimentQuality float64 `json:"experiment_quality"`
	Profile           string  `json:"profile"`
}

// PostRecord is the persisted snapshot of a post after the interaction pass.
type PostRecord struct {
	VersionedRecord
	ID                int     `json:"id"`
	UserID            int     `json:"user_id"`
	Quality           float64 `json:"quality"`
	X                 float64 `json:"x"`
	Y                 float64 `json:"y"`
	ExperimentX       float64 `json:"experiment_x"`
	ExperimentY       float64 `json:"experiment_y"`
	ExperimentQuality float64 `json:"experiment_quality"`
	Likes             int     `json:"likes"`
	Dislikes          int     `json:"dislikes"`
}

// RunConfigRecord describes how a run was configured.
type RunConfigRecord struct {
	VersionedRecord
	RunID        string             `json:"run_id"`
	CreatedAtUTC string             `json:"created_at_utc"`
	NumUsers     int                `json:"num_users"`
	PostsPerUser int                `json:"posts_per_user"`
	ProfileMix   map[string]float64 `json:"profile_mix"`
	UpdateRule   string             `json:"update_rule"`
	PullStrength float64            `json:"pull_strength,omitempty"`
	Seed         int64              `json:"seed"`
}

// DeviationRecord holds the RMS gaps between actual and experimental state.
type DeviationRecord struct {
	UserX   float64 `json:"user_x"`
	UserY   float64 `json:"user_y"`
	PostX   float64 `json:"post_x"`
	PostY   float64 `json:"post_y"`
	Quality float64 `json:"quality"`
}

// RunSummaryRecord aggregates the observable outcome of a run.
type RunSummaryRecord struct {
	VersionedRecord
	RunID             string          `json:"run_id"`
	InteractionCount  int             `json:"interaction_count"`
	TotalInteractions int             `json:"total_interactions"`
	EngagementRate    float64         `json:"engagement_rate"`
	Deviation         DeviationRecord `json:"deviation"`
}
