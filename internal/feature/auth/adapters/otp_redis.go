package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"brightloop_backend/internal/feature/auth/domain/entity"
	"brightloop_backend/internal/feature/auth/usecase"
)

// otpRedis implements OTPRepository on Redis. Each record is a single key whose TTL
// matches the record's expiry, so no sweeping is needed.
type otpRedis struct {
	client redis.Cmdable
	prefix string
}

var _ usecase.OTPRepository = (*otpRedis)(nil)

const minOTPTTL = time.Millisecond

// otpPayload is the JSON stored under each key.
type otpPayload struct {
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOTPRedis creates a new otpRedis. An empty prefix defaults to "otp".
func NewOTPRedis(client redis.Cmdable, prefix string) *otpRedis {
	if prefix == "" {
		prefix = "otp"
	}
	return &otpRedis{client: client, prefix: prefix}
}

func (r *otpRedis) key(userID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, userID)
}

// Find retrieves the user's record.
func (r *otpRedis) Find(ctx context.Context, userID string) (*entity.OTP, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrOTPNotFound
		}
		return nil, err
	}

	var p otpPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp: %w", err)
	}
	return &entity.OTP{UserID: userID, Code: p.Code, CreatedAt: p.CreatedAt}, nil
}

// Upsert overwrites the key with the caller's ttl. expiresAt is carried by the key's TTL only.
func (r *otpRedis) Upsert(ctx context.Context, otp *entity.OTP, _ time.Time, ttl time.Duration) error {
	// 0 は Redis では無期限になるため、期限ちょうどの再利用は最小TTLで保存する
	if ttl < minOTPTTL {
		ttl = minOTPTTL
	}

	data, err := json.Marshal(otpPayload{Code: otp.Code, CreatedAt: otp.CreatedAt})
	if err != nil {
		return fmt.Errorf("failed to marshal otp: %w", err)
	}
	return r.client.Set(ctx, r.key(otp.UserID), data, ttl).Err()
}

// DeleteExpired is a no-op: Redis expires keys on its own.
func (r *otpRedis) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
