package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"brightloop_backend/internal/feature/resources/domain/entity"
	"brightloop_backend/internal/platform/logger"
)

// CreateResourceInput is the data needed to create a resource.
type CreateResourceInput struct {
	Title         string
	Type          entity.ResourceType
	Description   string
	CategoryID    string
	EstimatedTime int
}

// UpdateResourceInput is a partial update; nil fields are left unchanged.
type UpdateResourceInput struct {
	Title         *string
	Type          *entity.ResourceType
	Description   *string
	CategoryID    *string
	EstimatedTime *int
}

// resourceUsecase implements the learning-resource tracker.
type resourceUsecase struct {
	resources  ResourceRepository
	categories CategoryRepository
	now        func() time.Time
	newID      func() string
}

// NewResourceUsecase creates a new resourceUsecase.
func NewResourceUsecase(resources ResourceRepository, categories CategoryRepository) *resourceUsecase {
	return &resourceUsecase{
		resources:  resources,
		categories: categories,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// validID rejects ids that cannot exist so stores never see malformed keys.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// List returns the user's resources, newest first.
func (u *resourceUsecase) List(ctx context.Context, userID string) ([]entity.Resource, error) {
	return u.resources.List(ctx, userID)
}

// Get returns one of the user's resources.
func (u *resourceUsecase) Get(ctx context.Context, userID, id string) (*entity.Resource, error) {
	if !validID(id) {
		return nil, ErrResourceNotFound
	}
	return u.resources.Get(ctx, userID, id)
}

// ownedCategory maps a missing or foreign category to ErrInvalidCategory.
func (u *resourceUsecase) ownedCategory(ctx context.Context, userID, categoryID string) (*entity.Category, error) {
	if !validID(categoryID) {
		return nil, ErrInvalidCategory
	}
	cat, err := u.categories.Find(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}
	return cat, nil
}

// Create adds a resource in one of the user's categories.
func (u *resourceUsecase) Create(ctx context.Context, userID string, in CreateResourceInput) (*entity.Resource, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, &ValidationError{Message: "title is required"}
	}
	if !in.Type.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid resource type: %s", in.Type)}
	}
	if in.EstimatedTime < 0 {
		return nil, &ValidationError{Message: "estimatedTime must not be negative"}
	}
	cat, err := u.ownedCategory(ctx, userID, in.CategoryID)
	if err != nil {
		return nil, err
	}

	r := &entity.Resource{
		ID:            u.newID(),
		Title:         title,
		Type:          in.Type,
		Description:   strings.TrimSpace(in.Description),
		CategoryID:    cat.ID,
		UserID:        userID,
		EstimatedTime: in.EstimatedTime,
	}
	if err := u.resources.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	r.Category = cat
	return r, nil
}

// Update applies a partial update. Any update marks the resource as not completed.
func (u *resourceUsecase) Update(ctx context.Context, userID, id string, in UpdateResourceInput) (*entity.Resource, error) {
	r, err := u.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.CategoryID != nil && *in.CategoryID != "" {
		cat, err := u.ownedCategory(ctx, userID, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		r.CategoryID = cat.ID
		r.Category = cat
	}
	if in.Title != nil {
		if t := strings.TrimSpace(*in.Title); t != "" {
			r.Title = t
		}
	}
	if in.Type != nil && *in.Type != "" {
		if !in.Type.Valid() {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid resource type: %s", *in.Type)}
		}
		r.Type = *in.Type
	}
	if in.Description != nil {
		r.Description = strings.TrimSpace(*in.Description)
	}
	if in.EstimatedTime != nil {
		if *in.EstimatedTime < 0 {
			return nil, &ValidationError{Message: "estimatedTime must not be negative"}
		}
		r.EstimatedTime = *in.EstimatedTime
	}
	r.IsCompleted = false
	r.CompletedAt = nil

	if err := u.resources.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}
	return r, nil
}

// Delete removes a resource together with its progress logs.
func (u *resourceUsecase) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return ErrResourceNotFound
	}
	return u.resources.Delete(ctx, userID, id)
}

// MarkComplete records the resource as completed with the time actually spent (minutes).
func (u *resourceUsecase) MarkComplete(ctx context.Context, userID, id string, actualTimeSpent int) (*entity.Resource, *entity.ProgressLog, error) {
	if actualTimeSpent < 0 {
		return nil, nil, &ValidationError{Message: "actualTimeSpent must not be negative"}
	}
	if !validID(id) {
		return nil, nil, ErrResourceNotFound
	}

	progress, err := u.resources.MarkComplete(ctx, userID, id, u.now().UTC(), actualTimeSpent)
	if err != nil {
		return nil, nil, err
	}
	r, err := u.resources.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	logger.FromContext(ctx).Info("resource completed",
		zap.String("resource_id", id),
		zap.Int("time_spent", actualTimeSpent),
	)
	return r, progress, nil
}

// Summary aggregates totals and per-category completion for the user.
func (u *resourceUsecase) Summary(ctx context.Context, userID string) (*entity.Summary, error) {
	list, err := u.resources.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &entity.Summary{CategoryStats: []entity.CategoryStat{}}
	minutes := 0
	byName := map[string]*entity.CategoryStat{}
	for _, r := range list {
		out.TotalResources++
		if r.IsCompleted {
			out.CompletedResources++
		}
		minutes += r.ActualTimeSpent

		if r.Category == nil {
			continue
		}
		st, ok := byName[r.Category.Name]
		if !ok {
			st = &entity.CategoryStat{Name: r.Category.Name}
			byName[r.Category.Name] = st
		}
		st.Total++
		if r.IsCompleted {
			st.Completed++
		}
	}
	out.TotalTimeSpent = int(math.Round(float64(minutes) / 60))

	for _, st := range byName {
		st.CompletionPercentage = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
		out.CategoryStats = append(out.CategoryStats, *st)
	}
	sort.Slice(out.CategoryStats, func(i, j int) bool {
		return out.CategoryStats[i].Name < out.CategoryStats[j].Name
	})
	return out, nil
}

// ListCategories returns the user's categories sorted by name.
func (u *resourceUsecase) ListCategories(ctx context.Context, userID string) ([]entity.Category, error) {
	return u.categories.List(ctx, userID)
}

// CreateCategory adds a category. Names are trimmed and unique per user.
func (u *resourceUsecase) CreateCategory(ctx context.Context, userID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Message: "name is required"}
	}
	c := &entity.Category{ID: u.newID(), Name: name, CreatedBy: userID}
	if err := u.categories.Create(ctx, c); err != nil {
		if errors.Is(err, ErrCategoryExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}
