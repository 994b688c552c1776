package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"brightloop_backend/internal/feature/resources/domain/entity"
	"brightloop_backend/internal/feature/resources/usecase"
	"brightloop_backend/internal/platform/db"
)

// categoryGorm はCategoryRepositoryのGORM実装です。
type categoryGorm struct {
	db *gorm.DB
}

var _ usecase.CategoryRepository = (*categoryGorm)(nil)

// NewCategoryGorm は指定されたgorm.DB接続でcategoryGormの新しいインスタンスを生成します。
func NewCategoryGorm(db *gorm.DB) *categoryGorm {
	return &categoryGorm{db: db}
}

// List はユーザーのカテゴリを名前順に返します。
func (r *categoryGorm) List(ctx context.Context, userID string) ([]entity.Category, error) {
	var list []entity.Category
	if err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Find はユーザーが所有するカテゴリを返します。
func (r *categoryGorm) Find(ctx context.Context, userID, id string) (*entity.Category, error) {
	var c entity.Category
	if err := r.db.WithContext(ctx).Where("id = ? AND created_by = ?", id, userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create はカテゴリを追加します。(created_by, name)が重複する場合はErrCategoryExistsを返します。
func (r *categoryGorm) Create(ctx context.Context, c *entity.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrCategoryExists
		}
		return err
	}
	return nil
}
