// Package dto はchat completions APIのリクエスト/レスポンスを定義します。
package dto

// Message はチャットメッセージです。
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest は POST /chat/completions のリクエストボディです。
type ChatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// ChatCompletionResponse は必要なフィールドのみを持つレスポンスです。
type ChatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
