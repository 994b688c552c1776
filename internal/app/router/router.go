// Package router はginエンジンの構築とルーティング定義を提供します。
package router

import (
	"fmt"
	"maps"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authhandler "brightloop_backend/internal/feature/auth/transport/handler"
	interviewhandler "brightloop_backend/internal/feature/interview/transport/handler"
	resourcehandler "brightloop_backend/internal/feature/resources/transport/handler"
	uploadhandler "brightloop_backend/internal/feature/upload/transport/handler"
	platformhandler "brightloop_backend/internal/platform/http/handler"
	jwtmw "brightloop_backend/internal/platform/jwt"
	"brightloop_backend/internal/platform/middleware"
	"brightloop_backend/internal/platform/validation"
)

// Options はミドルウェアの設定です。
type Options struct {
	Logger         *zap.Logger
	JWTSecret      string
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
	MaxBodyBytes   int64
}

// Handlers はルーターに登録するハンドラー一式です。
type Handlers struct {
	Health    *platformhandler.HealthHandler
	Auth      *authhandler.AuthHandler
	Questions *interviewhandler.QuestionHandler
	Upload    *uploadhandler.UploadHandler
	Resources *resourcehandler.ResourceHandler
}

// NewRouter はミドルウェアとルートを登録したginエンジンを返します。
// カスタムバリデーションタグはここで登録するため、バインドより先に呼び出す必要があります。
func NewRouter(opts Options, h Handlers) (*gin.Engine, error) {
	enums := interviewhandler.ValidationEnums()
	maps.Copy(enums, resourcehandler.ValidationEnums())
	if err := validation.Setup(enums); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	r := gin.New()
	r.Use(
		middleware.RequestLogger(opts.Logger),
		middleware.Recovery(),
		middleware.SecureHeaders(),
		middleware.CORS(opts.AllowedOrigins),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.BodyLimit(opts.MaxBodyBytes),
	)

	api := r.Group("/api")
	// 導通確認用（レート制限の対象外）
	api.GET("/health", h.Health.Health)

	limited := api.Group("")
	limited.Use(middleware.RateLimit(opts.RateLimit, opts.RateWindow))

	// 認証不要
	auth := limited.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/generate-otp", h.Auth.GenerateOTP)
		auth.POST("/verify-otp", h.Auth.VerifyOTP)
		auth.GET("/me", jwtmw.AuthRequired(opts.JWTSecret), h.Auth.Me)
	}

	questions := limited.Group("/questions")
	{
		questions.POST("/generate", h.Questions.Generate)
		questions.GET("/answer/:questionId", h.Questions.GetAnswer)
	}

	limited.POST("/upload/job-description", h.Upload.JobDescription)

	// 認証必須のルート
	private := limited.Group("")
	private.Use(jwtmw.AuthRequired(opts.JWTSecret))
	{
		resources := private.Group("/resources")
		resources.GET("", h.Resources.List)
		resources.GET("/summary", h.Resources.Summary)
		resources.GET("/:id", h.Resources.Get)
		resources.POST("", h.Resources.Create)
		resources.PUT("/:id", h.Resources.Update)
		resources.DELETE("/:id", h.Resources.Delete)
		resources.POST("/:id/mark-complete", h.Resources.MarkComplete)

		private.GET("/categories", h.Resources.ListCategories)
		private.POST("/categories", h.Resources.CreateCategory)
	}

	return r, nil
}
