// Package handler はinterviewフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"

	"brightloop_backend/internal/api"
	"brightloop_backend/internal/feature/interview/domain/entity"
	"brightloop_backend/internal/feature/interview/usecase"
	"brightloop_backend/internal/platform/logger"
	"brightloop_backend/internal/platform/validation"
)

// QuestionUsecase は面接質問生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuestionUsecase interface {
	Generate(ctx context.Context, req entity.GenerateRequest) (*entity.QuestionSet, error)
	GetAnswer(ctx context.Context, id string) (*entity.Answer, error)
}

// QuestionHandler は面接質問のHTTPリクエストを処理します。
type QuestionHandler struct {
	uc QuestionUsecase
}

// NewQuestionHandler は指定されたusecaseでQuestionHandlerの新しいインスタンスを生成します。
func NewQuestionHandler(uc QuestionUsecase) *QuestionHandler {
	return &QuestionHandler{uc: uc}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// toResponse はQuestionSetをレスポンスに変換します。回答と評価のヒントは含めません。
func toResponse(set *entity.QuestionSet) api.GenerateQuestionsResponse {
	a := set.Analysis
	questions := make([]api.QuestionSummary, 0, len(set.Questions))
	for _, q := range set.Questions {
		questions = append(questions, api.QuestionSummary{ID: q.ID, Question: q.Question, Style: string(q.Style)})
	}
	return api.GenerateQuestionsResponse{
		JobSummary: api.JobSummary{
			JobTitle:        a.JobTitle,
			Industry:        a.Industry,
			ExperienceLevel: string(set.Level),
		},
		KeySkillsAndCompetencies: api.KeySkillsAndCompetencies{
			PersonalSkills:   nonNil(a.PersonalSkills),
			TechnicalSkills:  nonNil(a.TechnicalSkills),
			Certifications:   nonNil(a.Certifications),
			CoreCompetencies: nonNil(a.CoreCompetencies),
			TotalQuestions:   set.TotalQuestions,
		},
		RecommendedInterviewStructure: api.InterviewStructure{
			EstimatedDuration: set.Structure.EstimatedDuration,
			Structure: api.InterviewSections{
				Introduction:         set.Structure.Sections.Introduction,
				TechnicalAssessment:  set.Structure.Sections.TechnicalAssessment,
				BehavioralAssessment: set.Structure.Sections.BehavioralAssessment,
				Closing:              set.Structure.Sections.Closing,
			},
		},
		AdditionalNotes: nonNil(a.AdditionalNotes),
		Questions:       questions,
	}
}

// Generate は求人票から面接質問を生成します。
//
// エンドポイント例:
// POST /api/questions/generate
func (h *QuestionHandler) Generate(c *gin.Context) {
	var req api.GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}

	styles := make([]entity.Style, 0, len(req.QuestionStyles))
	for _, s := range req.QuestionStyles {
		styles = append(styles, entity.Style(s))
	}

	set, err := h.uc.Generate(c.Request.Context(), entity.GenerateRequest{
		JobDescription:    req.JobDescription,
		Styles:            styles,
		Level:             entity.ExperienceLevel(req.ExperienceLevel),
		NumberOfQuestions: req.NumberOfQuestions,
		Language:          req.Language,
	})
	if err != nil {
		var vErr *usecase.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: vErr.Message})
			return
		}
		logger.FromContext(c.Request.Context()).Error("question generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to generate questions. Please try again."})
		return
	}

	c.JSON(http.StatusOK, toResponse(set))
}

// GetAnswer は質問IDに対応する回答と評価のヒントを返します。
//
// エンドポイント例:
// GET /api/questions/answer/:questionId
func (h *QuestionHandler) GetAnswer(c *gin.Context) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "questionId", c.Param("questionId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Question not found"})
		return
	}

	answer, err := h.uc.GetAnswer(c.Request.Context(), id.String())
	if err != nil {
		if errors.Is(err, usecase.ErrQuestionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Question not found"})
			return
		}
		logger.FromContext(c.Request.Context()).Error("answer lookup failed", zap.Error(err), zap.String("question_id", id.String()))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch answer. Please try again."})
		return
	}

	c.JSON(http.StatusOK, api.AnswerResponse{Answer: answer.Answer, EvaluationTips: answer.EvaluationTips})
}

// ValidationEnums はこのハンドラーのリクエストが使うカスタムバリデーションタグです。
func ValidationEnums() map[string][]string {
	styles := make([]string, 0, len(entity.Styles()))
	for _, s := range entity.Styles() {
		styles = append(styles, string(s))
	}
	levels := make([]string, 0, len(entity.ExperienceLevels()))
	for _, l := range entity.ExperienceLevels() {
		levels = append(levels, string(l))
	}
	return map[string][]string{
		"question_style":   styles,
		"experience_level": levels,
	}
}
