package usecase

import (
	"context"

	"brightloop_backend/internal/feature/interview/domain/entity"
)

// CompletionClient はテキスト生成エンドポイントです。応答は信頼できない自由テキストとして扱います。
type CompletionClient interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// AnswerStore は質問IDから回答を引くためのストアです。実装は並行利用に安全である必要があります。
type AnswerStore interface {
	// Put は回答を保存します。
	Put(ctx context.Context, id string, answer entity.Answer) error
	// Get は回答を返します。存在しない場合はErrQuestionNotFoundを返します。
	Get(ctx context.Context, id string) (*entity.Answer, error)
}
