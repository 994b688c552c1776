package usecase

import (
	"context"
	"time"

	"brightloop_backend/internal/feature/resources/domain/entity"
)

// ResourceRepository persists resources and their progress logs. Every method is scoped to userID.
type ResourceRepository interface {
	// List returns the user's resources newest first, with Category and ActualTimeSpent filled.
	List(ctx context.Context, userID string) ([]entity.Resource, error)
	// Get returns one resource or ErrResourceNotFound.
	Get(ctx context.Context, userID, id string) (*entity.Resource, error)
	Create(ctx context.Context, r *entity.Resource) error
	// Update saves every column of r except the id and owner.
	Update(ctx context.Context, r *entity.Resource) error
	// Delete removes the resource and its progress logs.
	Delete(ctx context.Context, userID, id string) error
	// MarkComplete flags the resource completed at `at` and upserts its progress log.
	MarkComplete(ctx context.Context, userID, id string, at time.Time, timeSpent int) (*entity.ProgressLog, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	// List returns the user's categories sorted by name.
	List(ctx context.Context, userID string) ([]entity.Category, error)
	// Find returns an owned category or ErrCategoryNotFound.
	Find(ctx context.Context, userID, id string) (*entity.Category, error)
	// Create inserts a category or returns ErrCategoryExists.
	Create(ctx context.Context, c *entity.Category) error
}
