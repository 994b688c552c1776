// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "brightloop_backend/internal/feature/auth/adapters"
	authentity "brightloop_backend/internal/feature/auth/domain/entity"
	authusecase "brightloop_backend/internal/feature/auth/usecase"
	"brightloop_backend/internal/feature/interview/adapters/answerstore"
	interviewusecase "brightloop_backend/internal/feature/interview/usecase"
	resourceentity "brightloop_backend/internal/feature/resources/domain/entity"
)

// OTPKeyPrefix is the Redis key prefix of OTP records.
const OTPKeyPrefix = "otp"

// Models returns every GORM model managed by AutoMigrate.
func Models() []any {
	return []any{
		&authentity.User{},
		&authadapters.OTPModel{},
		&resourceentity.Category{},
		&resourceentity.Resource{},
		&resourceentity.ProgressLog{},
	}
}

// NewOTPRepository creates an OTPRepository implementation.
// If Redis is available, it returns a Redis-backed implementation with native expiry.
// Otherwise, it falls back to SQL and expired rows are removed by the sweep job.
func NewOTPRepository(rdb *redis.Client, db *gorm.DB) authusecase.OTPRepository {
	if rdb != nil {
		return authadapters.NewOTPRedis(rdb, OTPKeyPrefix)
	}
	return authadapters.NewOTPGorm(db)
}

// NewAnswerStore creates the store for generated answers.
// Redis is shared between instances; the in-process LRU is used when Redis is unavailable.
func NewAnswerStore(rdb *redis.Client, capacity int, ttl time.Duration) interviewusecase.AnswerStore {
	if rdb != nil {
		return answerstore.NewRedisStore(rdb, "", ttl)
	}
	return answerstore.NewLRUStore(capacity, ttl)
}
