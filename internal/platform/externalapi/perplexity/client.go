package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"brightloop_backend/internal/feature/interview/usecase"
	"brightloop_backend/internal/platform/externalapi/perplexity/dto"
	"brightloop_backend/internal/platform/logger"
)

// maxErrorBody はエラーログに含めるレスポンスボディの最大バイト数です。
const maxErrorBody = 512

// Client はPerplexity APIを使用するCompletionClient実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがCompletionClientを実装していることをコンパイル時に検証します。
var _ usecase.CompletionClient = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg.withDefaults(), client: client}
}

// Complete はシステムプロンプトとユーザープロンプトを送信し、最初の選択肢の本文を返します。
// 2xx以外のステータス、空の選択肢はエラーになります。
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	body, err := json.Marshal(dto.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []dto.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			logger.FromContext(ctx).Warn("failed to close response body", zap.Error(err))
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return "", fmt.Errorf("perplexity http %d: %s", res.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out dto.ChatCompletionResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode perplexity response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("perplexity: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", errors.New("perplexity: no response from AI")
	}
	return out.Choices[0].Message.Content, nil
}
