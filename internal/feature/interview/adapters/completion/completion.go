// Package completion はCompletionClientのデコレーターと無効化実装を提供します。
package completion

import (
	"context"
	"fmt"

	"brightloop_backend/internal/feature/interview/usecase"
	"brightloop_backend/internal/shared/ratelimiter"
)

// rateLimited は呼び出し前にレートリミッターのトークンを待つCompletionClientです。
type rateLimited struct {
	next    usecase.CompletionClient
	limiter ratelimiter.RateLimiterInterface
}

var _ usecase.CompletionClient = (*rateLimited)(nil)

// NewRateLimited はnextへの呼び出しをlimiterで制限します。
func NewRateLimited(next usecase.CompletionClient, limiter ratelimiter.RateLimiterInterface) *rateLimited {
	return &rateLimited{next: next, limiter: limiter}
}

func (c *rateLimited) Complete(ctx context.Context, system, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return c.next.Complete(ctx, system, prompt)
}

// disabled は常にErrCompletionDisabledを返します。全ステージが固定コンテンツになります。
type disabled struct{}

var _ usecase.CompletionClient = disabled{}

// NewDisabled は無効化されたCompletionClientを返します。
func NewDisabled() usecase.CompletionClient {
	return disabled{}
}

func (disabled) Complete(context.Context, string, string) (string, error) {
	return "", usecase.ErrCompletionDisabled
}
