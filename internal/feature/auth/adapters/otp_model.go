package adapters

import (
	"time"

	"brightloop_backend/internal/feature/auth/domain/entity"
)

// OTPModel is the GORM model for the otp_records table. user_id is the primary key,
// so a user can never hold more than one record.
type OTPModel struct {
	UserID    string    `gorm:"primaryKey;size:36"`
	Code      string    `gorm:"size:6;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (OTPModel) TableName() string {
	return "otp_records"
}

// ToEntity converts the GORM model to a domain entity.
func (m *OTPModel) ToEntity() *entity.OTP {
	return &entity.OTP{
		UserID:    m.UserID,
		Code:      m.Code,
		CreatedAt: m.CreatedAt,
	}
}

// OTPModelFromEntity converts a domain entity to a GORM model.
func OTPModelFromEntity(o *entity.OTP, expiresAt time.Time) *OTPModel {
	return &OTPModel{
		UserID:    o.UserID,
		Code:      o.Code,
		CreatedAt: o.CreatedAt,
		ExpiresAt: expiresAt,
	}
}
