// Package ratelimiter は外部API呼び出しの頻度を制限します。
package ratelimiter

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"brightloop_backend/internal/platform/logger"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiter は、interval あたり limit 回までの呼び出しを許可するトークンバケットです。
type RateLimiter struct {
	limiter *rate.Limiter
	limit   int
}

var _ RateLimiterInterface = (*RateLimiter)(nil)

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。limitが0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0), limit: limit}
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit),
		limit:   limit,
	}
}

// Wait はトークンが得られるまで待機します。ctxが先に終了した場合はエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limiter.Allow() {
		return nil
	}
	logger.FromContext(ctx).Info("[RATE LIMIT] waiting for token", zap.Int("limit", rl.limit))
	return rl.limiter.Wait(ctx)
}
