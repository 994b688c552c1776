// Package api defines the JSON request and response bodies of the HTTP API.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database,omitempty"`
}

// --- auth ---

type SignupRequest struct {
	Name     string              `json:"name" binding:"required,min=2"`
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required"`
}

type GenerateOTPRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type VerifyOTPRequest struct {
	UserID string `json:"userId" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
}

type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
}

type SignupResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	OTPSent bool         `json:"otpSent"`
}

type TokenResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// NeedsVerificationResponse is returned when a correct login belongs to an unverified account.
type NeedsVerificationResponse struct {
	Error             string `json:"error"`
	NeedsVerification bool   `json:"needs_verification"`
	UserID            string `json:"userId"`
}

type ProfileResponse struct {
	User UserResponse `json:"user"`
}

type OTPSentResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// --- questions ---

type GenerateQuestionsRequest struct {
	JobDescription    string   `json:"jobDescription" binding:"required"`
	QuestionStyles    []string `json:"questionStyles" binding:"required,min=1,max=3,dive,question_style"`
	ExperienceLevel   string   `json:"experienceLevel" binding:"required,experience_level"`
	Language          string   `json:"language"`
	NumberOfQuestions int      `json:"numberOfQuestions" binding:"omitempty,min=1,max=20"`
}

type JobSummary struct {
	JobTitle        string `json:"jobTitle"`
	Industry        string `json:"industry"`
	ExperienceLevel string `json:"experienceLevel"`
}

type KeySkillsAndCompetencies struct {
	PersonalSkills   []string `json:"personalSkills"`
	TechnicalSkills  []string `json:"technicalSkills"`
	Certifications   []string `json:"certifications"`
	CoreCompetencies []string `json:"coreCompetencies"`
	TotalQuestions   int      `json:"totalQuestions"`
}

type InterviewSections struct {
	Introduction         string `json:"introduction"`
	TechnicalAssessment  string `json:"technicalAssessment"`
	BehavioralAssessment string `json:"behavioralAssessment"`
	Closing              string `json:"closing"`
}

type InterviewStructure struct {
	EstimatedDuration string            `json:"estimatedDuration"`
	Structure         InterviewSections `json:"structure"`
}

type QuestionSummary struct {
	ID       openapi_types.UUID `json:"id"`
	Question string             `json:"question"`
	Style    string             `json:"style"`
}

type GenerateQuestionsResponse struct {
	JobSummary                    JobSummary               `json:"jobSummary"`
	KeySkillsAndCompetencies      KeySkillsAndCompetencies `json:"keySkillsAndCompetencies"`
	RecommendedInterviewStructure InterviewStructure       `json:"recommendedInterviewStructure"`
	AdditionalNotes               []string                 `json:"additionalNotes"`
	Questions                     []QuestionSummary        `json:"questions"`
}

type AnswerResponse struct {
	Answer         string `json:"answer"`
	EvaluationTips string `json:"evaluationTips"`
}

// --- upload ---

type UploadResponse struct {
	Success  bool   `json:"success"`
	Content  string `json:"content"`
	Filename string `json:"filename"`
	FileSize int64  `json:"fileSize"`
}

// --- resources ---

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateResourceRequest struct {
	Title         string `json:"title" binding:"required"`
	Type          string `json:"type" binding:"required,resource_type"`
	Description   string `json:"description"`
	CategoryID    string `json:"categoryId" binding:"required"`
	EstimatedTime int    `json:"estimatedTime" binding:"omitempty,min=0"`
}

type UpdateResourceRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1"`
	Type          *string `json:"type" binding:"omitempty,resource_type"`
	Description   *string `json:"description"`
	CategoryID    *string `json:"categoryId"`
	EstimatedTime *int    `json:"estimatedTime" binding:"omitempty,min=0"`
}

type MarkCompleteRequest struct {
	ActualTimeSpent int `json:"actualTimeSpent" binding:"min=0"`
}

type ResourceResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Type            string           `json:"type"`
	Description     string           `json:"description"`
	Category        CategoryResponse `json:"category"`
	EstimatedTime   int              `json:"estimatedTime"`
	IsCompleted     bool             `json:"isCompleted"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty"`
	ActualTimeSpent int              `json:"actualTimeSpent"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type CategoryStat struct {
	Name                 string `json:"name"`
	Total                int    `json:"total"`
	Completed            int    `json:"completed"`
	CompletionPercentage int    `json:"completionPercentage"`
}

type SummaryResponse struct {
	TotalResources     int            `json:"totalResources"`
	CompletedResources int            `json:"completedResources"`
	TotalTimeSpent     int            `json:"totalTimeSpent"`
	CategoryStats      []CategoryStat `json:"categoryStats"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type ProgressResponse struct {
	ID               string     `json:"id"`
	ResourceID       string     `json:"resourceId"`
	CompletionStatus string     `json:"completionStatus"`
	TimeSpent        int        `json:"timeSpent"`
	CompletionDate   *time.Time `json:"completionDate,omitempty"`
}

type MarkCompleteResponse struct {
	Message  string           `json:"message"`
	Resource ResourceResponse `json:"resource"`
	Progress ProgressResponse `json:"progress"`
}
