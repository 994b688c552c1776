package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brightloop_backend/internal/feature/auth/domain/entity"
	"brightloop_backend/internal/feature/auth/usecase"
)

// otpGorm is a SQL implementation of OTPRepository. Expired rows are removed by DeleteExpired.
type otpGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure otpGorm implements OTPRepository.
var _ usecase.OTPRepository = (*otpGorm)(nil)

// NewOTPGorm creates a new instance of otpGorm.
func NewOTPGorm(db *gorm.DB) *otpGorm {
	return &otpGorm{db: db}
}

// Find retrieves the user's record.
func (r *otpGorm) Find(ctx context.Context, userID string) (*entity.OTP, error) {
	var model OTPModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrOTPNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Upsert inserts the record or replaces the code and timestamps of the existing one in a single statement.
// ttl is unused: rows live until DeleteExpired removes them.
func (r *otpGorm) Upsert(ctx context.Context, otp *entity.OTP, expiresAt time.Time, _ time.Duration) error {
	model := OTPModelFromEntity(otp, expiresAt)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "created_at", "expires_at"}),
	}).Create(model).Error
}

// DeleteExpired removes records created at or before the cutoff.
func (r *otpGorm) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at <= ?", before).Delete(&OTPModel{})
	return res.RowsAffected, res.Error
}
