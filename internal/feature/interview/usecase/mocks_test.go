package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"brightloop_backend/internal/feature/interview/domain/entity"
)

// mockCompletionClient is a mock implementation of the CompletionClient interface.
type mockCompletionClient struct {
	mu           sync.Mutex
	CompleteFunc func(ctx context.Context, system, prompt string) (string, error)
	prompts      []string
}

func (m *mockCompletionClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, system, prompt)
	}
	return "", errors.New("completion unavailable")
}

func (m *mockCompletionClient) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// stageOf classifies a rendered prompt by its stage.
func stageOf(prompt string) string {
	switch {
	case strings.Contains(prompt, "Analyze the following job description"):
		return "analyze"
	case strings.Contains(prompt, "interview questions for the following job requirements"):
		return "questions"
	case strings.Contains(prompt, "Create an interview structure"):
		return "structure"
	}
	return "unknown"
}

// scriptedClient answers each stage with a fixed response.
func scriptedClient(responses map[string]string) *mockCompletionClient {
	return &mockCompletionClient{CompleteFunc: func(ctx context.Context, system, prompt string) (string, error) {
		if resp, ok := responses[stageOf(prompt)]; ok {
			return resp, nil
		}
		return "", errors.New("unexpected stage")
	}}
}

// memoryAnswerStore is an in-memory AnswerStore for tests.
type memoryAnswerStore struct {
	mu     sync.Mutex
	data   map[string]entity.Answer
	PutErr error
}

func newMemoryAnswerStore() *memoryAnswerStore {
	return &memoryAnswerStore{data: map[string]entity.Answer{}}
}

func (s *memoryAnswerStore) Put(_ context.Context, id string, a entity.Answer) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = a
	return nil
}

func (s *memoryAnswerStore) Get(_ context.Context, id string) (*entity.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.data[id]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	return &a, nil
}
