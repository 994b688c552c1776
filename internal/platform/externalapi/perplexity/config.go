// Package perplexity はPerplexityのOpenAI互換chat completions APIクライアントを提供します。
package perplexity

import "time"

const (
	// DefaultBaseURL はPerplexity APIのベースURLです。
	DefaultBaseURL = "https://api.perplexity.ai"
	// DefaultModel はデフォルトのモデル名です。
	DefaultModel = "sonar"
)

// Config holds configuration for the Perplexity API client.
type Config struct {
	APIKey  string        // Bearer token
	BaseURL string        // e.g. "https://api.perplexity.ai"
	Model   string        // e.g. "sonar"
	Timeout time.Duration // HTTP request timeout
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	return c
}
