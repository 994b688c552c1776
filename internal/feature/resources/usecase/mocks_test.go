package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"brightloop_backend/internal/feature/resources/domain/entity"
)

// memoryStore is an in-memory ResourceRepository and CategoryRepository.
type memoryStore struct {
	mu         sync.Mutex
	resources  map[string]entity.Resource
	categories map[string]entity.Category
	progress   map[string]entity.ProgressLog // keyed by resource id
	seq        int

	CreateErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		resources:  map[string]entity.Resource{},
		categories: map[string]entity.Category{},
		progress:   map[string]entity.ProgressLog{},
	}
}

func (s *memoryStore) tick() time.Time {
	s.seq++
	return time.Date(2026, 1, 1, 0, 0, s.seq, 0, time.UTC)
}

func (s *memoryStore) fill(r entity.Resource) entity.Resource {
	if c, ok := s.categories[r.CategoryID]; ok {
		r.Category = &c
	}
	r.ActualTimeSpent = s.progress[r.ID].TimeSpent
	return r
}

func (s *memoryStore) List(_ context.Context, userID string) ([]entity.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Resource
	for _, r := range s.resources {
		if r.UserID == userID {
			out = append(out, s.fill(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memoryStore) Get(_ context.Context, userID, id string) (*entity.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok || r.UserID != userID {
		return nil, ErrResourceNotFound
	}
	r = s.fill(r)
	return &r, nil
}

func (s *memoryStore) Create(_ context.Context, r *entity.Resource) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.CreatedAt = s.tick()
	r.UpdatedAt = r.CreatedAt
	stored := *r
	stored.Category = nil
	s.resources[r.ID] = stored
	return nil
}

func (s *memoryStore) Update(_ context.Context, r *entity.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *r
	stored.Category = nil
	s.resources[r.ID] = stored
	return nil
}

func (s *memoryStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok || r.UserID != userID {
		return ErrResourceNotFound
	}
	delete(s.resources, id)
	delete(s.progress, id)
	return nil
}

func (s *memoryStore) MarkComplete(_ context.Context, userID, id string, at time.Time, timeSpent int) (*entity.ProgressLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok || r.UserID != userID {
		return nil, ErrResourceNotFound
	}
	r.IsCompleted = true
	r.CompletedAt = &at
	s.resources[id] = r

	log := s.progress[id]
	if log.ID == "" {
		log = entity.ProgressLog{ID: "log-" + id, ResourceID: id, UserID: userID}
	}
	log.CompletionStatus = entity.StatusCompleted
	log.CompletionDate = &at
	log.TimeSpent = timeSpent
	s.progress[id] = log
	return &log, nil
}

type memoryCategories struct{ *memoryStore }

func (s memoryCategories) List(_ context.Context, userID string) ([]entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Category
	for _, c := range s.categories {
		if c.CreatedBy == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s memoryCategories) Find(_ context.Context, userID, id string) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.CreatedBy != userID {
		return nil, ErrCategoryNotFound
	}
	return &c, nil
}

func (s memoryCategories) Create(_ context.Context, c *entity.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.CreatedBy == c.CreatedBy && existing.Name == c.Name {
			return ErrCategoryExists
		}
	}
	c.CreatedAt = s.tick()
	s.categories[c.ID] = *c
	return nil
}
