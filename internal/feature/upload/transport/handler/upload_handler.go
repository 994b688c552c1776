// Package handler はuploadフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brightloop_backend/internal/api"
	"brightloop_backend/internal/feature/upload/usecase"
	"brightloop_backend/internal/platform/logger"
)

// FormField はファイルを受け取るmultipartフィールド名です。
const FormField = "jobDescription"

// UploadUsecase は求人票テキスト抽出のユースケースインターフェースを定義します。
type UploadUsecase interface {
	Extract(ctx context.Context, contentType string, data []byte) (string, error)
}

// UploadHandler は求人票ファイルのアップロードを処理します。
type UploadHandler struct {
	uc UploadUsecase
}

// NewUploadHandler はUploadHandlerの新しいインスタンスを生成します。
func NewUploadHandler(uc UploadUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// JobDescription はアップロードされたファイルの内容をテキストで返します。
//
// エンドポイント: POST /api/upload/job-description
// Content-Type: multipart/form-data
// フィールド: jobDescription（.txt、最大5MB）
func (h *UploadHandler) JobDescription(c *gin.Context) {
	log := logger.FromContext(c.Request.Context())

	file, err := c.FormFile(FormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "File too large. Maximum size is 5MB"})
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "No file uploaded"})
		return
	}
	if file.Size > usecase.MaxFileSize {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "File too large. Maximum size is 5MB"})
		return
	}

	f, err := file.Open()
	if err != nil {
		log.Error("failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to process uploaded file"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn("failed to close uploaded file", zap.Error(err))
		}
	}()

	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxFileSize+1))
	if err != nil {
		log.Error("failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to process uploaded file"})
		return
	}

	content, err := h.uc.Extract(c.Request.Context(), file.Header.Get("Content-Type"), data)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrPDFNotSupported):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "PDF parsing not implemented yet. Please use .txt files."})
		return
	case errors.Is(err, usecase.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Only .txt and .pdf files are allowed"})
		return
	case errors.Is(err, usecase.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "File too large. Maximum size is 5MB"})
		return
	case errors.Is(err, usecase.ErrNoText):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "No text could be read from the image"})
		return
	default:
		log.Error("failed to process uploaded file", zap.String("filename", file.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to process uploaded file"})
		return
	}

	c.JSON(http.StatusOK, api.UploadResponse{
		Success:  true,
		Content:  content,
		Filename: file.Filename,
		FileSize: file.Size,
	})
}
