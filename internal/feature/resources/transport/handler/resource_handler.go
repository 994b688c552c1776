// Package handler はresourcesフィーチャーのHTTPハンドラーを提供します。
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
	"brightloop_backend/internal/feature/resources/domain/entity"
	"brightloop_backend/internal/feature/resources/usecase"
	jwtmw "brightloop_backend/internal/platform/jwt"
	"brightloop_backend/internal/platform/logger"
	"brightloop_backend/internal/platform/validation"
)

// ResourceUsecase は学習リソース操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ResourceUsecase interface {
	List(ctx context.Context, userID string) ([]entity.Resource, error)
	Get(ctx context.Context, userID, id string) (*entity.Resource, error)
	Create(ctx context.Context, userID string, in usecase.CreateResourceInput) (*entity.Resource, error)
	Update(ctx context.Context, userID, id string, in usecase.UpdateResourceInput) (*entity.Resource, error)
	Delete(ctx context.Context, userID, id string) error
	MarkComplete(ctx context.Context, userID, id string, actualTimeSpent int) (*entity.Resource, *entity.ProgressLog, error)
	Summary(ctx context.Context, userID string) (*entity.Summary, error)
	ListCategories(ctx context.Context, userID string) ([]entity.Category, error)
	CreateCategory(ctx context.Context, userID, name string) (*entity.Category, error)
}

// ResourceHandler は学習リソースとカテゴリのHTTPリクエストを処理します。
// すべてのルートはAuthRequiredの後段で使用します。
type ResourceHandler struct {
	uc ResourceUsecase
}

// NewResourceHandler は指定されたusecaseでResourceHandlerの新しいインスタンスを生成します。
func NewResourceHandler(uc ResourceUsecase) *ResourceHandler {
	return &ResourceHandler{uc: uc}
}

// ValidationEnums はこのハンドラーのリクエストが使うカスタムバリデーションタグです。
func ValidationEnums() map[string][]string {
	types := make([]string, 0, len(entity.ResourceTypes()))
	for _, t := range entity.ResourceTypes() {
		types = append(types, string(t))
	}
	return map[string][]string{"resource_type": types}
}

func toCategoryResponse(c *entity.Category) api.CategoryResponse {
	if c == nil {
		return api.CategoryResponse{}
	}
	return api.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toResourceResponse(r *entity.Resource) api.ResourceResponse {
	return api.ResourceResponse{
		ID:              r.ID,
		Title:           r.Title,
		Type:            string(r.Type),
		Description:     r.Description,
		Category:        toCategoryResponse(r.Category),
		EstimatedTime:   r.EstimatedTime,
		IsCompleted:     r.IsCompleted,
		CompletedAt:     r.CompletedAt,
		ActualTimeSpent: r.ActualTimeSpent,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// userID は認証済みユーザーIDを返します。存在しない場合は401を書き込みます。
func userID(c *gin.Context) (string, bool) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
	}
	return id, ok
}

// resourceID はパスパラメータ:idをUUIDとしてバインドします。不正な場合は404を書き込みます。
func resourceID(c *gin.Context) (string, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Resource not found"})
		return "", false
	}
	return id.String(), true
}

// respondError はユースケースのエラーをHTTPステータスに変換します。
func respondError(c *gin.Context, op string, err error) {
	var vErr *usecase.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: vErr.Message})
	case errors.Is(err, usecase.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, usecase.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid category"})
	case errors.Is(err, usecase.ErrCategoryExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Category already exists"})
	default:
		logger.FromContext(c.Request.Context()).Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
	}
}

// List はユーザーのリソース一覧を返します。
// GET /api/resources
func (h *ResourceHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	list, err := h.uc.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, "list resources", err)
		return
	}
	out := make([]api.ResourceResponse, 0, len(list))
	for i := range list {
		out = append(out, toResourceResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get はリソースを1件返します。
// GET /api/resources/:id
func (h *ResourceHandler) Get(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := resourceID(c)
	if !ok {
		return
	}
	r, err := h.uc.Get(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, "get resource", err)
		return
	}
	c.JSON(http.StatusOK, toResourceResponse(r))
}

// Create はリソースを作成します。
// POST /api/resources
func (h *ResourceHandler) Create(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req api.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}
	r, err := h.uc.Create(c.Request.Context(), uid, usecase.CreateResourceInput{
		Title:         req.Title,
		Type:          entity.ResourceType(req.Type),
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		EstimatedTime: req.EstimatedTime,
	})
	if err != nil {
		respondError(c, "create resource", err)
		return
	}
	c.JSON(http.StatusCreated, toResourceResponse(r))
}

// Update はリソースを部分更新します。更新後のリソースは未完了になります。
// PUT /api/resources/:id
func (h *ResourceHandler) Update(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := resourceID(c)
	if !ok {
		return
	}
	var req api.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}
	in := usecase.UpdateResourceInput{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		EstimatedTime: req.EstimatedTime,
	}
	if req.Type != nil {
		t := entity.ResourceType(*req.Type)
		in.Type = &t
	}
	r, err := h.uc.Update(c.Request.Context(), uid, id, in)
	if err != nil {
		respondError(c, "update resource", err)
		return
	}
	c.JSON(http.StatusOK, toResourceResponse(r))
}

// Delete はリソースと進捗ログを削除します。
// DELETE /api/resources/:id
func (h *ResourceHandler) Delete(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := resourceID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), uid, id); err != nil {
		respondError(c, "delete resource", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Resource deleted successfully"})
}

// MarkComplete はリソースを完了にします。ボディは省略可能です。
// POST /api/resources/:id/mark-complete
func (h *ResourceHandler) MarkComplete(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := resourceID(c)
	if !ok {
		return
	}
	var req api.MarkCompleteRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
			return
		}
	}
	r, progress, err := h.uc.MarkComplete(c.Request.Context(), uid, id, req.ActualTimeSpent)
	if err != nil {
		respondError(c, "mark resource complete", err)
		return
	}
	c.JSON(http.StatusOK, api.MarkCompleteResponse{
		Message:  "Marked as complete",
		Resource: toResourceResponse(r),
		Progress: api.ProgressResponse{
			ID:               progress.ID,
			ResourceID:       progress.ResourceID,
			CompletionStatus: string(progress.CompletionStatus),
			TimeSpent:        progress.TimeSpent,
			CompletionDate:   progress.CompletionDate,
		},
	})
}

// Summary はユーザーの進捗サマリーを返します。
// GET /api/resources/summary
func (h *ResourceHandler) Summary(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	s, err := h.uc.Summary(c.Request.Context(), uid)
	if err != nil {
		respondError(c, "resource summary", err)
		return
	}
	stats := make([]api.CategoryStat, 0, len(s.CategoryStats))
	for _, st := range s.CategoryStats {
		stats = append(stats, api.CategoryStat{
			Name:                 st.Name,
			Total:                st.Total,
			Completed:            st.Completed,
			CompletionPercentage: st.CompletionPercentage,
		})
	}
	c.JSON(http.StatusOK, api.SummaryResponse{
		TotalResources:     s.TotalResources,
		CompletedResources: s.CompletedResources,
		TotalTimeSpent:     s.TotalTimeSpent,
		CategoryStats:      stats,
	})
}

// ListCategories はユーザーのカテゴリを名前順に返します。
// GET /api/categories
func (h *ResourceHandler) ListCategories(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	list, err := h.uc.ListCategories(c.Request.Context(), uid)
	if err != nil {
		respondError(c, "list categories", err)
		return
	}
	out := make([]api.CategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, toCategoryResponse(&list[i]))
	}
	c.JSON(http.StatusOK, api.CategoriesResponse{Categories: out})
}

// CreateCategory はカテゴリを作成します。
// POST /api/categories
func (h *ResourceHandler) CreateCategory(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req api.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}
	cat, err := h.uc.CreateCategory(c.Request.Context(), uid, req.Name)
	if err != nil {
		respondError(c, "create category", err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(cat))
}
