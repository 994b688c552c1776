package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightloop_backend/internal/feature/auth/domain/entity"
	"brightloop_backend/internal/feature/auth/usecase"
	jwtmw "brightloop_backend/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	SignupFunc     func(ctx context.Context, name, email, password string) (*usecase.SignupResult, error)
	LoginFunc      func(ctx context.Context, email, password string) (*usecase.LoginResult, error)
	VerifyCodeFunc func(ctx context.Context, userID, code string) (*usecase.LoginResult, error)
	ResendCodeFunc func(ctx context.Context, userID string) (string, error)
	ProfileFunc    func(ctx context.Context, userID string) (*entity.User, error)
}

func (m *mockAuthUsecase) Signup(ctx context.Context, name, email, password string) (*usecase.SignupResult, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, name, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, usecase.ErrInvalidCredentials
}

func (m *mockAuthUsecase) VerifyCode(ctx context.Context, userID, code string) (*usecase.LoginResult, error) {
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, userID, code)
	}
	return nil, usecase.ErrInvalidOrExpiredOtp
}

func (m *mockAuthUsecase) ResendCode(ctx context.Context, userID string) (string, error) {
	if m.ResendCodeFunc != nil {
		return m.ResendCodeFunc(ctx, userID)
	}
	return "", usecase.ErrUserNotFound
}

func (m *mockAuthUsecase) Profile(ctx context.Context, userID string) (*entity.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return nil, usecase.ErrUserNotFound
}

var testUser = &entity.User{ID: "0f8fad5b-d9cb-469f-a165-70867728950e", Name: "Taro", Email: "taro@example.com"}

func setupRouter(h *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/generate-otp", h.GenerateOTP)
	r.POST("/verify-otp", h.VerifyOTP)
	r.GET("/me", func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set(jwtmw.ContextUserID, id)
		}
		h.Me(c)
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var got map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	return w, got
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    gin.H
		mockSignupFunc func(ctx context.Context, name, email, password string) (*usecase.SignupResult, error)
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "success: user registration",
			requestBody: gin.H{"name": "Taro", "email": "taro@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, name, email, password string) (*usecase.SignupResult, error) {
				return &usecase.SignupResult{User: testUser, OTPSent: true}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"name": "Taro", "email": "invalid-email", "password": "password123"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"name": "Taro", "email": "taro@example.com", "password": "abc"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "failure: verified duplicate",
			requestBody: gin.H{"name": "Taro", "email": "taro@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, name, email, password string) (*usecase.SignupResult, error) {
				return nil, usecase.ErrDuplicateVerifiedUser
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "user already exists with this email",
		},
		{
			name:        "failure: storage error is hidden",
			requestBody: gin.H{"name": "Taro", "email": "taro@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, name, email, password string) (*usecase.SignupResult, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Server error during signup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mock := &mockAuthUsecase{}
			if tt.mockSignupFunc != nil {
				mock.SignupFunc = func(ctx context.Context, name, email, password string) (*usecase.SignupResult, error) {
					called = true
					return tt.mockSignupFunc(ctx, name, email, password)
				}
			}
			w, got := doJSON(t, setupRouter(NewAuthHandler(mock)), http.MethodPost, "/signup", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.mockSignupFunc != nil, called)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, got["error"])
			}
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, true, got["otpSent"])
				assert.NotContains(t, got, "token")
				user := got["user"].(map[string]any)
				assert.Equal(t, testUser.ID, user["id"])
				assert.Equal(t, false, user["isVerified"])
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	verified := *testUser
	verified.IsVerified = true

	tests := []struct {
		name           string
		mockLoginFunc  func(ctx context.Context, email, password string) (*usecase.LoginResult, error)
		expectedStatus int
		check          func(t *testing.T, got map[string]any)
	}{
		{
			name: "success: verified user gets token",
			mockLoginFunc: func(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
				return &usecase.LoginResult{Token: "jwt-token", User: &verified}, nil
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, got map[string]any) {
				assert.Equal(t, "jwt-token", got["token"])
			},
		},
		{
			name: "unverified user needs verification",
			mockLoginFunc: func(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
				return &usecase.LoginResult{User: testUser, NeedsVerification: true}, nil
			},
			expectedStatus: http.StatusForbidden,
			check: func(t *testing.T, got map[string]any) {
				assert.Equal(t, true, got["needs_verification"])
				assert.Equal(t, testUser.ID, got["userId"])
				assert.NotContains(t, got, "token")
			},
		},
		{
			name: "failure: invalid credentials",
			mockLoginFunc: func(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
				return nil, usecase.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
			check: func(t *testing.T, got map[string]any) {
				assert.Equal(t, "Invalid credentials", got["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthUsecase{LoginFunc: tt.mockLoginFunc})
			w, got := doJSON(t, setupRouter(h), http.MethodPost, "/login", gin.H{"email": "taro@example.com", "password": "password123"})

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.check(t, got)
		})
	}
}

func TestAuthHandler_GenerateOTP(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{ResendCodeFunc: func(ctx context.Context, userID string) (string, error) {
			assert.Equal(t, testUser.ID, userID)
			return testUser.Email, nil
		}})
		w, got := doJSON(t, setupRouter(h), http.MethodPost, "/generate-otp", gin.H{"userId": testUser.ID})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testUser.Email, got["email"])
		assert.NotContains(t, got, "otp")
	})

	t.Run("missing userId", func(t *testing.T) {
		w, _ := doJSON(t, setupRouter(NewAuthHandler(&mockAuthUsecase{})), http.MethodPost, "/generate-otp", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed userId", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{ResendCodeFunc: func(ctx context.Context, userID string) (string, error) {
			return "", usecase.ErrInvalidUser
		}})
		w, got := doJSON(t, setupRouter(h), http.MethodPost, "/generate-otp", gin.H{"userId": "nope"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid userId", got["error"])
	})

	t.Run("unknown user", func(t *testing.T) {
		w, _ := doJSON(t, setupRouter(NewAuthHandler(&mockAuthUsecase{})), http.MethodPost, "/generate-otp", gin.H{"userId": testUser.ID})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthHandler_VerifyOTP(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		verified := *testUser
		verified.IsVerified = true
		h := NewAuthHandler(&mockAuthUsecase{VerifyCodeFunc: func(ctx context.Context, userID, code string) (*usecase.LoginResult, error) {
			return &usecase.LoginResult{Token: "jwt-token", User: &verified}, nil
		}})
		w, got := doJSON(t, setupRouter(h), http.MethodPost, "/verify-otp", gin.H{"userId": testUser.ID, "otp": "123456"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "jwt-token", got["token"])
		assert.Equal(t, true, got["user"].(map[string]any)["isVerified"])
	})

	t.Run("wrong code", func(t *testing.T) {
		w, got := doJSON(t, setupRouter(NewAuthHandler(&mockAuthUsecase{})), http.MethodPost, "/verify-otp", gin.H{"userId": testUser.ID, "otp": "000000"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid or expired OTP", got["error"])
	})

	t.Run("malformed userId", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{VerifyCodeFunc: func(ctx context.Context, userID, code string) (*usecase.LoginResult, error) {
			return nil, usecase.ErrInvalidUser
		}})
		w, got := doJSON(t, setupRouter(h), http.MethodPost, "/verify-otp", gin.H{"userId": "nope", "otp": "123456"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid userId", got["error"])
	})

	t.Run("missing otp is a binding error", func(t *testing.T) {
		w, got := doJSON(t, setupRouter(NewAuthHandler(&mockAuthUsecase{})), http.MethodPost, "/verify-otp", gin.H{"userId": testUser.ID})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, got["error"])
	})
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&mockAuthUsecase{ProfileFunc: func(ctx context.Context, userID string) (*entity.User, error) {
		if userID == testUser.ID {
			return testUser, nil
		}
		return nil, usecase.ErrUserNotFound
	}})
	r := setupRouter(h)

	t.Run("authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("X-Test-User", testUser.ID)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), testUser.Email)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("no user in context", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
