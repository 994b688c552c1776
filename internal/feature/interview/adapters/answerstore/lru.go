// Package answerstore はAnswerStoreの実装（プロセス内LRUとRedis）を提供します。
package answerstore

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"brightloop_backend/internal/feature/interview/domain/entity"
	"brightloop_backend/internal/feature/interview/usecase"
)

const (
	// DefaultCapacity はLRUストアの既定の最大エントリ数です。
	DefaultCapacity = 10000
	// DefaultTTL は回答の既定の保持期間です。
	DefaultTTL = 24 * time.Hour
)

// lruStore は容量とTTLで回答を追い出すプロセス内ストアです。
type lruStore struct {
	cache *expirable.LRU[string, entity.Answer]
}

var _ usecase.AnswerStore = (*lruStore)(nil)

// NewLRUStore はlruStoreの新しいインスタンスを生成します。
func NewLRUStore(capacity int, ttl time.Duration) *lruStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &lruStore{cache: expirable.NewLRU[string, entity.Answer](capacity, nil, ttl)}
}

func (s *lruStore) Put(_ context.Context, id string, answer entity.Answer) error {
	s.cache.Add(id, answer)
	return nil
}

func (s *lruStore) Get(_ context.Context, id string) (*entity.Answer, error) {
	answer, ok := s.cache.Get(id)
	if !ok {
		return nil, usecase.ErrQuestionNotFound
	}
	return &answer, nil
}

// Len は保持中のエントリ数を返します。
func (s *lruStore) Len() int {
	return s.cache.Len()
}
