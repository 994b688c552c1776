// Package gemini はGoogle Gemini APIを使用したCompletionClientを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"brightloop_backend/internal/feature/interview/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiCompleter はGoogle Gemini APIでテキストを生成します。
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// GeminiCompleterがCompletionClientを実装していることをコンパイル時に検証します。
var _ usecase.CompletionClient = (*GeminiCompleter)(nil)

// NewGeminiCompleter はGeminiCompleterの新しいインスタンスを生成します。
// apiKeyが空の場合はADCと環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION を使用します。
func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	var cfg *genai.ClientConfig
	if apiKey != "" {
		cfg = &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiCompleter{client: client, model: model}, nil
}

// Complete はシステム指示付きでプロンプトを送信し、生成されたテキストを返します。
func (g *GeminiCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
