package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"brightloop_backend/internal/feature/interview/domain/entity"
	"brightloop_backend/internal/platform/logger"
)

const (
	// DefaultNumberOfQuestions は質問数が指定されない場合の値です。
	DefaultNumberOfQuestions = 5
	// MaxNumberOfQuestions は1回の生成で要求できる質問数の上限です。
	MaxNumberOfQuestions = 20
	// MaxStyles は1回の生成で指定できるスタイル数の上限です。
	MaxStyles = 3
	// DefaultLanguage は言語が指定されない場合の値です。
	DefaultLanguage = "English"
	// DefaultCallTimeout は補完呼び出し1回あたりのタイムアウトです。
	DefaultCallTimeout = 30 * time.Second
)

// pipeline は分析・質問生成・構成生成の3ステージを順に実行します。
// 外部呼び出しの失敗は呼び出し元に返さず、固定コンテンツで置き換えます。
type pipeline struct {
	client      CompletionClient
	answers     AnswerStore
	callTimeout time.Duration
	newID       func() uuid.UUID
}

// NewPipeline はpipelineの新しいインスタンスを生成します。callTimeoutが0以下の場合はDefaultCallTimeoutを使います。
func NewPipeline(client CompletionClient, answers AnswerStore, callTimeout time.Duration) *pipeline {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &pipeline{
		client:      client,
		answers:     answers,
		callTimeout: callTimeout,
		newID:       uuid.New,
	}
}

// validate は外部呼び出しの前に入力を検査し、デフォルト値を補ったリクエストを返します。
func validate(req entity.GenerateRequest) (entity.GenerateRequest, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return req, &ValidationError{Message: "Job description is required"}
	}
	if len(req.Styles) == 0 {
		return req, &ValidationError{Message: "At least one question style must be selected"}
	}
	var invalid []string
	for _, s := range req.Styles {
		if !s.Valid() {
			invalid = append(invalid, string(s))
		}
	}
	if len(invalid) > 0 {
		return req, &ValidationError{Message: "Invalid question styles: " + strings.Join(invalid, ", ")}
	}
	if len(req.Styles) > MaxStyles {
		return req, &ValidationError{Message: fmt.Sprintf("Maximum %d question styles can be selected", MaxStyles)}
	}
	if req.Level == "" {
		return req, &ValidationError{Message: "Experience level is required"}
	}
	if !req.Level.Valid() {
		return req, &ValidationError{Message: "Invalid experience level"}
	}

	switch {
	case req.NumberOfQuestions == 0:
		req.NumberOfQuestions = DefaultNumberOfQuestions
	case req.NumberOfQuestions < 0 || req.NumberOfQuestions > MaxNumberOfQuestions:
		return req, &ValidationError{Message: fmt.Sprintf("Number of questions must be between 1 and %d", MaxNumberOfQuestions)}
	}
	if strings.TrimSpace(req.Language) == "" {
		req.Language = DefaultLanguage
	}
	return req, nil
}

// Generate は求人票から面接質問セットを生成します。
// 入力エラーの場合は外部呼び出しを一切行わずValidationErrorを返します。
// 各質問には新しいIDが割り当てられ、回答と評価のヒントはAnswerStoreに保存されます。
func (p *pipeline) Generate(ctx context.Context, req entity.GenerateRequest) (*entity.QuestionSet, error) {
	req, err := validate(req)
	if err != nil {
		return nil, err
	}

	data := promptData{
		JobDescription: req.JobDescription,
		Level:          req.Level,
		Styles:         req.Styles,
		Count:          req.NumberOfQuestions,
		Language:       req.Language,
	}

	data.Analysis = p.analyze(ctx, data)
	items := p.generateQuestions(ctx, data)
	structure := p.generateStructure(ctx, data)

	questions := make([]entity.GeneratedQuestion, 0, len(items))
	for _, item := range items {
		id := p.newID()
		answer := entity.Answer{Answer: item.ExpectedAnswer, EvaluationTips: item.EvaluationTips}
		if err := p.answers.Put(ctx, id.String(), answer); err != nil {
			return nil, fmt.Errorf("failed to store answer: %w", err)
		}
		questions = append(questions, entity.GeneratedQuestion{ID: id, Question: item.Question, Style: item.Style})
	}

	logger.FromContext(ctx).Info("interview questions generated",
		zap.String("job_title", data.Analysis.JobTitle),
		zap.Int("requested", req.NumberOfQuestions),
		zap.Int("generated", len(questions)),
	)

	return &entity.QuestionSet{
		Analysis:       data.Analysis,
		Level:          req.Level,
		TotalQuestions: req.NumberOfQuestions,
		Structure:      structure,
		Questions:      questions,
	}, nil
}

// GetAnswer は質問IDに対応する回答と評価のヒントを返します。
func (p *pipeline) GetAnswer(ctx context.Context, id string) (*entity.Answer, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrQuestionNotFound
	}
	answer, err := p.answers.Get(ctx, parsed.String())
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load answer: %w", err)
	}
	return answer, nil
}

func (p *pipeline) logFallback(ctx context.Context, stage string, err error) {
	logger.FromContext(ctx).Warn("completion stage failed, using fallback",
		zap.String("stage", stage),
		zap.Error(err),
	)
}
