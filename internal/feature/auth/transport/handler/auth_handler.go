// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brightloop_backend/internal/api"
	"brightloop_backend/internal/feature/auth/domain/entity"
	"brightloop_backend/internal/feature/auth/usecase"
	jwtmw "brightloop_backend/internal/platform/jwt"
	"brightloop_backend/internal/platform/logger"
	"brightloop_backend/internal/platform/validation"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は未検証ユーザーを登録し、OTPを送信します。
	Signup(ctx context.Context, name, email, password string) (*usecase.SignupResult, error)
	// Login はユーザーを認証し、検証済みであればJWTトークンを返します。
	Login(ctx context.Context, email, password string) (*usecase.LoginResult, error)
	// VerifyCode はOTPを検証し、成功時にトークンを返します。
	VerifyCode(ctx context.Context, userID, code string) (*usecase.LoginResult, error)
	// ResendCode はOTPを再送し、送信先メールアドレスを返します。
	ResendCode(ctx context.Context, userID string) (string, error)
	// Profile は認証済みユーザーを返します。
	Profile(ctx context.Context, userID string) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func toUserResponse(u *entity.User) api.UserResponse {
	return api.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, IsVerified: u.IsVerified}
}

// respondError はユースケースのエラーをHTTPステータスに変換します。
// 想定外のエラーは詳細を隠して500を返します。
func respondError(c *gin.Context, op string, err error) {
	log := logger.FromContext(c.Request.Context())

	var vErr *usecase.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: vErr.Message})
	case errors.Is(err, usecase.ErrInvalidUser),
		errors.Is(err, usecase.ErrInvalidOrExpiredOtp):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrDuplicateVerifiedUser),
		errors.Is(err, usecase.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: usecase.ErrDuplicateVerifiedUser.Error()})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid credentials"})
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
	default:
		log.Error(op+" failed", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error during " + op})
		return
	}
	log.Warn(op+" rejected", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400
// - 検証済みユーザーとメールが重複した場合は409
// - 成功時は201（トークンは返さない）
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}
	res, err := h.auth.Signup(c.Request.Context(), req.Name, string(req.Email), req.Password)
	if err != nil {
		respondError(c, "signup", err)
		return
	}
	logger.FromContext(c.Request.Context()).Info("user signup successful", zap.String("user_id", res.User.ID))
	c.JSON(http.StatusCreated, api.SignupResponse{
		Message: "User created successfully",
		User:    toUserResponse(res.User),
		OTPSent: res.OTPSent,
	})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 未検証ユーザーは403とneeds_verificationを受け取ります。
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}
	res, err := h.auth.Login(c.Request.Context(), string(req.Email), req.Password)
	if err != nil {
		respondError(c, "login", err)
		return
	}
	if res.NeedsVerification {
		c.JSON(http.StatusForbidden, api.NeedsVerificationResponse{
			Error:             "Please verify your email first",
			NeedsVerification: true,
			UserID:            res.User.ID,
		})
		return
	}
	c.JSON(http.StatusOK, api.TokenResponse{Message: "Login successful", Token: res.Token, User: toUserResponse(res.User)})
}

// GenerateOTP はOTPを(再)送信します。
func (h *AuthHandler) GenerateOTP(c *gin.Context) {
	var req api.GenerateOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}
	email, err := h.auth.ResendCode(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, "otp generation", err)
		return
	}
	c.JSON(http.StatusOK, api.OTPSentResponse{Message: "OTP sent successfully", Email: email})
}

// VerifyOTP はOTPを検証し、成功時にトークンを返します。
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req api.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}
	res, err := h.auth.VerifyCode(c.Request.Context(), req.UserID, req.OTP)
	if err != nil {
		respondError(c, "otp verification", err)
		return
	}
	c.JSON(http.StatusOK, api.TokenResponse{Message: "OTP verified successfully", Token: res.Token, User: toUserResponse(res.User)})
}

// Me は認証済みユーザーのプロフィールを返します。AuthRequiredの後段で使用します。
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "profile lookup", err)
		return
	}
	c.JSON(http.StatusOK, api.ProfileResponse{User: toUserResponse(user)})
}
