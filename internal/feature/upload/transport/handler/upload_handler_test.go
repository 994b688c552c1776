package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightloop_backend/internal/api"
	"brightloop_backend/internal/feature/upload/usecase"
)

type mockUploadUsecase struct {
	ExtractFunc func(ctx context.Context, contentType string, data []byte) (string, error)
}

func (m *mockUploadUsecase) Extract(ctx context.Context, contentType string, data []byte) (string, error) {
	return m.ExtractFunc(ctx, contentType, data)
}

func setupRouter(uc UploadUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/upload/job-description", NewUploadHandler(uc).JobDescription)
	return r
}

// multipartBody はfieldにファイルを1つ持つリクエストボディを組み立てます。
func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadHandler_JobDescription(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		contentType string
		extractErr  error
		wantStatus  int
		wantError   string
	}{
		{"text file", FormField, "text/plain", nil, http.StatusOK, ""},
		{"missing file", "other", "text/plain", nil, http.StatusBadRequest, "No file uploaded"},
		{"pdf", FormField, "application/pdf", usecase.ErrPDFNotSupported, http.StatusBadRequest, "PDF parsing not implemented yet. Please use .txt files."},
		{"unsupported", FormField, "application/zip", usecase.ErrUnsupportedType, http.StatusBadRequest, "Only .txt and .pdf files are allowed"},
		{"unexpected failure", FormField, "image/png", errors.New("vision down"), http.StatusInternalServerError, "Failed to process uploaded file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotType string
			uc := &mockUploadUsecase{ExtractFunc: func(ctx context.Context, contentType string, data []byte) (string, error) {
				gotType = contentType
				if tt.extractErr != nil {
					return "", tt.extractErr
				}
				return string(data), nil
			}}
			body, ct := multipartBody(t, tt.field, "job.txt", tt.contentType, []byte("Go developer wanted"))
			req := httptest.NewRequest(http.MethodPost, "/upload/job-description", body)
			req.Header.Set("Content-Type", ct)
			w := httptest.NewRecorder()

			setupRouter(uc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, w.Body.String())
				return
			}
			assert.Equal(t, "text/plain", gotType)
			var resp api.UploadResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.Equal(t, "Go developer wanted", resp.Content)
			assert.Equal(t, "job.txt", resp.Filename)
			assert.Equal(t, int64(len("Go developer wanted")), resp.FileSize)
		})
	}
}

func TestUploadHandler_NotMultipart(t *testing.T) {
	uc := &mockUploadUsecase{ExtractFunc: func(ctx context.Context, contentType string, data []byte) (string, error) {
		t.Fatal("usecase must not be called")
		return "", nil
	}}
	req := httptest.NewRequest(http.MethodPost, "/upload/job-description", bytes.NewBufferString(`{"a":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	setupRouter(uc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No file uploaded"}`, w.Body.String())
}

func TestUploadHandler_TooLarge(t *testing.T) {
	uc := &mockUploadUsecase{ExtractFunc: func(ctx context.Context, contentType string, data []byte) (string, error) {
		t.Fatal("usecase must not be called")
		return "", nil
	}}
	body, ct := multipartBody(t, FormField, "big.txt", "text/plain", bytes.Repeat([]byte("x"), int(usecase.MaxFileSize)+1))
	req := httptest.NewRequest(http.MethodPost, "/upload/job-description", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()

	setupRouter(uc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"File too large. Maximum size is 5MB"}`, w.Body.String())
}
