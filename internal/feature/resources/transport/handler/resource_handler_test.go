package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightloop_backend/internal/api"
	"brightloop_backend/internal/feature/resources/domain/entity"
	"brightloop_backend/internal/feature/resources/usecase"
	jwtmw "brightloop_backend/internal/platform/jwt"
	"brightloop_backend/internal/platform/validation"
)

const (
	testUserID     = "0f8fad5b-d9cb-469f-a165-70867728950e"
	testResourceID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.Setup(ValidationEnums()); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// mockResourceUsecase is a mock implementation of the ResourceUsecase interface.
type mockResourceUsecase struct {
	ListFunc           func(ctx context.Context, userID string) ([]entity.Resource, error)
	GetFunc            func(ctx context.Context, userID, id string) (*entity.Resource, error)
	CreateFunc         func(ctx context.Context, userID string, in usecase.CreateResourceInput) (*entity.Resource, error)
	UpdateFunc         func(ctx context.Context, userID, id string, in usecase.UpdateResourceInput) (*entity.Resource, error)
	DeleteFunc         func(ctx context.Context, userID, id string) error
	MarkCompleteFunc   func(ctx context.Context, userID, id string, actualTimeSpent int) (*entity.Resource, *entity.ProgressLog, error)
	SummaryFunc        func(ctx context.Context, userID string) (*entity.Summary, error)
	ListCategoriesFunc func(ctx context.Context, userID string) ([]entity.Category, error)
	CreateCategoryFunc func(ctx context.Context, userID, name string) (*entity.Category, error)
}

var errNotMocked = errors.New("not mocked")

func (m *mockResourceUsecase) List(ctx context.Context, userID string) ([]entity.Resource, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, errNotMocked
}

func (m *mockResourceUsecase) Get(ctx context.Context, userID, id string) (*entity.Resource, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, id)
	}
	return nil, usecase.ErrResourceNotFound
}

func (m *mockResourceUsecase) Create(ctx context.Context, userID string, in usecase.CreateResourceInput) (*entity.Resource, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, in)
	}
	return nil, errNotMocked
}

func (m *mockResourceUsecase) Update(ctx context.Context, userID, id string, in usecase.UpdateResourceInput) (*entity.Resource, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, in)
	}
	return nil, errNotMocked
}

func (m *mockResourceUsecase) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return errNotMocked
}

func (m *mockResourceUsecase) MarkComplete(ctx context.Context, userID, id string, actualTimeSpent int) (*entity.Resource, *entity.ProgressLog, error) {
	if m.MarkCompleteFunc != nil {
		return m.MarkCompleteFunc(ctx, userID, id, actualTimeSpent)
	}
	return nil, nil, errNotMocked
}

func (m *mockResourceUsecase) Summary(ctx context.Context, userID string) (*entity.Summary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, userID)
	}
	return nil, errNotMocked
}

func (m *mockResourceUsecase) ListCategories(ctx context.Context, userID string) ([]entity.Category, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx, userID)
	}
	return nil, errNotMocked
}

func (m *mockResourceUsecase) CreateCategory(ctx context.Context, userID, name string) (*entity.Category, error) {
	if m.CreateCategoryFunc != nil {
		return m.CreateCategoryFunc(ctx, userID, name)
	}
	return nil, errNotMocked
}

// setupRouter wires the handler behind a fake authentication middleware.
func setupRouter(h *ResourceHandler, authenticated bool) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if authenticated {
			c.Set(jwtmw.ContextUserID, testUserID)
		}
		c.Next()
	})
	res := r.Group("/resources")
	res.GET("", h.List)
	res.GET("/summary", h.Summary)
	res.GET("/:id", h.Get)
	res.POST("", h.Create)
	res.PUT("/:id", h.Update)
	res.DELETE("/:id", h.Delete)
	res.POST("/:id/mark-complete", h.MarkComplete)
	r.GET("/categories", h.ListCategories)
	r.POST("/categories", h.CreateCategory)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleResource() *entity.Resource {
	return &entity.Resource{
		ID:            testResourceID,
		Title:         "Effective Go",
		Type:          entity.TypeArticle,
		CategoryID:    "11111111-1111-1111-1111-111111111111",
		Category:      &entity.Category{ID: "11111111-1111-1111-1111-111111111111", Name: "Go"},
		UserID:        testUserID,
		EstimatedTime: 30,
	}
}

func TestResourceHandler_RequiresUser(t *testing.T) {
	r := setupRouter(NewResourceHandler(&mockResourceUsecase{}), false)

	w := do(t, r, http.MethodGet, "/resources", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResourceHandler_List(t *testing.T) {
	h := NewResourceHandler(&mockResourceUsecase{ListFunc: func(ctx context.Context, userID string) ([]entity.Resource, error) {
		assert.Equal(t, testUserID, userID)
		res := sampleResource()
		res.ActualTimeSpent = 45
		return []entity.Resource{*res}, nil
	}})

	w := do(t, setupRouter(h, true), http.MethodGet, "/resources", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got []api.ResourceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Go", got[0].Category.Name)
	assert.Equal(t, 45, got[0].ActualTimeSpent)
}

func TestResourceHandler_Get(t *testing.T) {
	h := NewResourceHandler(&mockResourceUsecase{GetFunc: func(ctx context.Context, userID, id string) (*entity.Resource, error) {
		if id == testResourceID {
			return sampleResource(), nil
		}
		return nil, usecase.ErrResourceNotFound
	}})
	r := setupRouter(h, true)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"found", "/resources/" + testResourceID, http.StatusOK},
		{"unknown", "/resources/11111111-2222-3333-4444-555555555555", http.StatusNotFound},
		{"malformed id", "/resources/abc", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestResourceHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       gin.H
		createErr  error
		wantStatus int
		wantError  string
	}{
		{"created", gin.H{"title": "Go", "type": "Book", "categoryId": "c1", "estimatedTime": 60}, nil, http.StatusCreated, ""},
		{"invalid type", gin.H{"title": "Go", "type": "Podcast", "categoryId": "c1"}, nil, http.StatusBadRequest, "type has an invalid value: Podcast"},
		{"missing title", gin.H{"type": "Book", "categoryId": "c1"}, nil, http.StatusBadRequest, "title is required"},
		{"foreign category", gin.H{"title": "Go", "type": "Book", "categoryId": "c2"}, usecase.ErrInvalidCategory, http.StatusBadRequest, "Invalid category"},
		{"storage failure", gin.H{"title": "Go", "type": "Book", "categoryId": "c1"}, errors.New("db down"), http.StatusInternalServerError, "Server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewResourceHandler(&mockResourceUsecase{CreateFunc: func(ctx context.Context, userID string, in usecase.CreateResourceInput) (*entity.Resource, error) {
				if tt.createErr != nil {
					return nil, tt.createErr
				}
				assert.Equal(t, entity.TypeBook, in.Type)
				return sampleResource(), nil
			}})

			w := do(t, setupRouter(h, true), http.MethodPost, "/resources", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, w.Body.String())
			}
		})
	}
}

func TestResourceHandler_Update(t *testing.T) {
	var got usecase.UpdateResourceInput
	h := NewResourceHandler(&mockResourceUsecase{UpdateFunc: func(ctx context.Context, userID, id string, in usecase.UpdateResourceInput) (*entity.Resource, error) {
		got = in
		return sampleResource(), nil
	}})

	w := do(t, setupRouter(h, true), http.MethodPut, "/resources/"+testResourceID, gin.H{"title": "New", "type": "Video"})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Title)
	assert.Equal(t, "New", *got.Title)
	require.NotNil(t, got.Type)
	assert.Equal(t, entity.TypeVideo, *got.Type)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.EstimatedTime)
}

func TestResourceHandler_Delete(t *testing.T) {
	h := NewResourceHandler(&mockResourceUsecase{DeleteFunc: func(ctx context.Context, userID, id string) error {
		if id == testResourceID {
			return nil
		}
		return usecase.ErrResourceNotFound
	}})
	r := setupRouter(h, true)

	w := do(t, r, http.MethodDelete, "/resources/"+testResourceID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Resource deleted successfully"}`, w.Body.String())

	w = do(t, r, http.MethodDelete, "/resources/11111111-2222-3333-4444-555555555555", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResourceHandler_MarkComplete(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var gotMinutes int
	h := NewResourceHandler(&mockResourceUsecase{MarkCompleteFunc: func(ctx context.Context, userID, id string, actualTimeSpent int) (*entity.Resource, *entity.ProgressLog, error) {
		gotMinutes = actualTimeSpent
		res := sampleResource()
		res.IsCompleted = true
		res.CompletedAt = &at
		return res, &entity.ProgressLog{ID: "p1", ResourceID: id, CompletionStatus: entity.StatusCompleted, TimeSpent: actualTimeSpent, CompletionDate: &at}, nil
	}})
	r := setupRouter(h, true)

	t.Run("with body", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/resources/"+testResourceID+"/mark-complete", gin.H{"actualTimeSpent": 45})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 45, gotMinutes)
		var resp api.MarkCompleteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Marked as complete", resp.Message)
		assert.True(t, resp.Resource.IsCompleted)
		assert.Equal(t, "completed", resp.Progress.CompletionStatus)
		assert.Equal(t, 45, resp.Progress.TimeSpent)
	})

	t.Run("without body defaults to zero", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/resources/"+testResourceID+"/mark-complete", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, gotMinutes)
	})

	t.Run("negative time", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/resources/"+testResourceID+"/mark-complete", gin.H{"actualTimeSpent": -1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestResourceHandler_Summary(t *testing.T) {
	h := NewResourceHandler(&mockResourceUsecase{SummaryFunc: func(ctx context.Context, userID string) (*entity.Summary, error) {
		return &entity.Summary{
			TotalResources: 4, CompletedResources: 2, TotalTimeSpent: 2,
			CategoryStats: []entity.CategoryStat{{Name: "Go", Total: 3, Completed: 1, CompletionPercentage: 33}},
		}, nil
	}})

	w := do(t, setupRouter(h, true), http.MethodGet, "/resources/summary", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"totalResources": 4,
		"completedResources": 2,
		"totalTimeSpent": 2,
		"categoryStats": [{"name":"Go","total":3,"completed":1,"completionPercentage":33}]
	}`, w.Body.String())
}

func TestResourceHandler_Categories(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewResourceHandler(&mockResourceUsecase{
		ListCategoriesFunc: func(ctx context.Context, userID string) ([]entity.Category, error) {
			return []entity.Category{{ID: "c1", Name: "Go", CreatedAt: created}}, nil
		},
		CreateCategoryFunc: func(ctx context.Context, userID, name string) (*entity.Category, error) {
			if name == "Go" {
				return nil, usecase.ErrCategoryExists
			}
			return &entity.Category{ID: "c2", Name: name, CreatedAt: created}, nil
		},
	})
	r := setupRouter(h, true)

	w := do(t, r, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list api.CategoriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Categories, 1)
	assert.Equal(t, "Go", list.Categories[0].Name)

	w = do(t, r, http.MethodPost, "/categories", gin.H{"name": "Rust"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/categories", gin.H{"name": "Go"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Category already exists"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/categories", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
