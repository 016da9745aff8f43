package storage

import (
	"context"
	"sort"
	"sync"

	"feedsim/internal/model"
)

type MemoryStore struct {
	mu        sync.RWMutex
	configs   map[string]model.RunConfigRecord
	users     map[string][]model.UserRecord
	posts     map[string][]model.PostRecord
	summaries map[string]model.RunSummaryRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configs = make(map[string]model.RunConfigRecord)
	s.users = make(map[string][]model.UserRecord)
	s.posts = make(map[string][]model.PostRecord)
	s.summaries = make(map[string]model.RunSummaryRecord)
	return nil
}

func (s *MemoryStore) SaveRunConfig(_ context.Context, cfg model.RunConfigRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configs[cfg.RunID] = cfg
	return nil
}

func (s *MemoryStore) GetRunConfig(_ context.Context, runID string) (model.RunConfigRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[runID]
	return cfg, ok, nil
}

func (s *MemoryStore) ListRunConfigs(_ context.Context) ([]model.RunConfigRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	configs := make([]model.RunConfigRecord, 0, len(s.configs))
	for _, cfg := range s.configs {
		configs = append(configs, cfg)
	}
	sort.Slice(configs, func(i, j int) bool {
		if configs[i].CreatedAtUTC == configs[j].CreatedAtUTC {
			return configs[i].RunID < configs[j].RunID
		}
		return configs[i].CreatedAtUTC > configs[j].CreatedAtUTC
	})
	return configs, nil
}

func (s *MemoryStore) SaveUsers(_ context.Context, runID string, users []model.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.UserRecord, len(users))
	copy(copied, users)
	s.users[runID] = copied
	return nil
}

func (s *MemoryStore) GetUsers(_ context.Context, runID string) ([]model.UserRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, ok := s.users[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.UserRecord, len(users))
	copy(copied, users)
	return copied, true, nil
}

func (s *MemoryStore) SavePosts(_ context.Context, runID string, posts []model.PostRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.PostRecord, len(posts))
	copy(copied, posts)
	s.posts[runID] = copied
	return nil
}

func (s *MemoryStore) GetPosts(_ context.Context, runID string) ([]model.PostRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts, ok := s.posts[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.PostRecord, len(posts))
	copy(copied, posts)
	return copied, true, nil
}

func (s *MemoryStore) SaveRunSummary(_ context.Context, summary model.RunSummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries[summary.RunID] = summary
	return nil
}

func (s *MemoryStore) GetRunSummary(_ context.Context, runID string) (model.RunSummaryRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.summaries[runID]
	return summary, ok, nil
}
