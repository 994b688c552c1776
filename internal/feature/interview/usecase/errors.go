// Package usecase はinterviewフィーチャーのビジネスロジック（質問生成パイプライン）を実装します。
package usecase

import "errors"

var (
	// ErrQuestionNotFound は未知・期限切れ・不正なIDの質問に対して返されます。
	ErrQuestionNotFound = errors.New("question not found")

	// ErrCompletionDisabled はAIプロバイダーが無効な場合にCompletionClientが返します。
	ErrCompletionDisabled = errors.New("completion provider disabled")
)

// ValidationError は外部呼び出し前に検出された入力エラーです。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
