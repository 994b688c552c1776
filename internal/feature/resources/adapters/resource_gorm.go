// Package adapters はresourcesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brightloop_backend/internal/feature/resources/domain/entity"
	"brightloop_backend/internal/feature/resources/usecase"
)

// resourceGorm はResourceRepositoryのGORM実装です。
type resourceGorm struct {
	db *gorm.DB
}

var _ usecase.ResourceRepository = (*resourceGorm)(nil)

// NewResourceGorm は指定されたgorm.DB接続でresourceGormの新しいインスタンスを生成します。
func NewResourceGorm(db *gorm.DB) *resourceGorm {
	return &resourceGorm{db: db}
}

type timeSpentRow struct {
	ResourceID string
	TimeSpent  int
}

// timeSpent はユーザーの進捗ログからリソースIDごとの所要時間を返します。
func (r *resourceGorm) timeSpent(ctx context.Context, userID string, resourceIDs ...string) (map[string]int, error) {
	q := r.db.WithContext(ctx).Model(&entity.ProgressLog{}).Select("resource_id, time_spent").Where("user_id = ?", userID)
	if len(resourceIDs) > 0 {
		q = q.Where("resource_id IN ?", resourceIDs)
	}
	var rows []timeSpentRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.ResourceID] = row.TimeSpent
	}
	return out, nil
}

// List はユーザーのリソースを作成日時の新しい順に返します。
func (r *resourceGorm) List(ctx context.Context, userID string) ([]entity.Resource, error) {
	var list []entity.Resource
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	spent, err := r.timeSpent(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].ActualTimeSpent = spent[list[i].ID]
	}
	return list, nil
}

// Get はユーザーが所有するリソースを1件返します。
func (r *resourceGorm) Get(ctx context.Context, userID, id string) (*entity.Resource, error) {
	var res entity.Resource
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrResourceNotFound
		}
		return nil, err
	}
	spent, err := r.timeSpent(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	res.ActualTimeSpent = spent[id]
	return &res, nil
}

// Create はリソースを追加します。関連するカテゴリは書き込みません。
func (r *resourceGorm) Create(ctx context.Context, res *entity.Resource) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error
}

// Update はリソースの全カラムを保存します。
func (r *resourceGorm) Update(ctx context.Context, res *entity.Resource) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Resource{}).
		Where("id = ? AND user_id = ?", res.ID, res.UserID).
		Updates(map[string]any{
			"title":          res.Title,
			"type":           res.Type,
			"description":    res.Description,
			"category_id":    res.CategoryID,
			"estimated_time": res.EstimatedTime,
			"is_completed":   res.IsCompleted,
			"completed_at":   res.CompletedAt,
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrResourceNotFound
	}
	return nil
}

// Delete はリソースとその進捗ログを1トランザクションで削除します。
func (r *resourceGorm) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Resource{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrResourceNotFound
		}
		return tx.Where("resource_id = ?", id).Delete(&entity.ProgressLog{}).Error
	})
}

// MarkComplete はリソースを完了にし、進捗ログを(resource_id, user_id)でupsertします。
func (r *resourceGorm) MarkComplete(ctx context.Context, userID, id string, at time.Time, timeSpent int) (*entity.ProgressLog, error) {
	var log entity.ProgressLog
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Resource{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]any{"is_completed": true, "completed_at": at, "updated_at": at})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrResourceNotFound
		}

		upsert := &entity.ProgressLog{
			ID:               uuid.NewString(),
			ResourceID:       id,
			UserID:           userID,
			CompletionStatus: entity.StatusCompleted,
			TimeSpent:        timeSpent,
			CompletionDate:   &at,
			CreatedAt:        at,
			UpdatedAt:        at,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "resource_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completion_status", "time_spent", "completion_date", "updated_at"}),
		}).Create(upsert).Error; err != nil {
			return err
		}
		return tx.Where("resource_id = ? AND user_id = ?", id, userID).First(&log).Error
	})
	if err != nil {
		return nil, err
	}
	return &log, nil
}
