package answerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"brightloop_backend/internal/feature/interview/domain/entity"
	"brightloop_backend/internal/feature/interview/usecase"
)

// redisStore は回答をTTL付きのRedisキーとして保存します。複数インスタンス間で共有できます。
type redisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

var _ usecase.AnswerStore = (*redisStore)(nil)

// NewRedisStore はredisStoreの新しいインスタンスを生成します。空のprefixは"answer"になります。
func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) *redisStore {
	if prefix == "" {
		prefix = "answer"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *redisStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

func (s *redisStore) Put(ctx context.Context, id string, answer entity.Answer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	return s.client.Set(ctx, s.key(id), data, s.ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, id string) (*entity.Answer, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrQuestionNotFound
		}
		return nil, err
	}
	var answer entity.Answer
	if err := json.Unmarshal(data, &answer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answer: %w", err)
	}
	return &answer, nil
}
