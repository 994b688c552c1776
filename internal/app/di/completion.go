package di

import (
	"context"
	"fmt"
	"time"

	"brightloop_backend/internal/app/config"
	"brightloop_backend/internal/feature/interview/adapters/completion"
	"brightloop_backend/internal/feature/interview/adapters/gemini"
	"brightloop_backend/internal/feature/interview/usecase"
	"brightloop_backend/internal/platform/externalapi/perplexity"
	infrahttp "brightloop_backend/internal/platform/http"
	"brightloop_backend/internal/shared/ratelimiter"
)

// NewCompletionClient creates the configured completion provider behind an outbound rate limiter.
// Provider "none" yields a client that always fails, so every stage uses its fallback.
func NewCompletionClient(ctx context.Context, cfg config.AIConfig) (usecase.CompletionClient, error) {
	var client usecase.CompletionClient
	switch cfg.Provider {
	case "perplexity":
		pcfg := perplexity.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}
		client = perplexity.NewClient(pcfg, infrahttp.NewHTTPClient(cfg.Timeout))
	case "gemini":
		model := cfg.Model
		if model == perplexity.DefaultModel {
			model = ""
		}
		g, err := gemini.NewGeminiCompleter(ctx, cfg.APIKey, model)
		if err != nil {
			return nil, err
		}
		client = g
	case "none":
		return completion.NewDisabled(), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
	return completion.NewRateLimited(client, ratelimiter.NewRateLimiter(cfg.RequestsPerMinute, time.Minute)), nil
}
