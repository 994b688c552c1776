package di

import (
	"context"

	"brightloop_backend/internal/app/config"
	"brightloop_backend/internal/feature/upload/adapters/vision"
	uploadusecase "brightloop_backend/internal/feature/upload/usecase"
)

// NewTextRecognizer creates the OCR client for image uploads.
// It returns nil, and images are rejected, when OCR is disabled.
func NewTextRecognizer(ctx context.Context, cfg config.VisionConfig) (uploadusecase.TextRecognizer, func() error, error) {
	if !cfg.Enabled {
		return nil, func() error { return nil }, nil
	}
	v, err := vision.NewVisionTextDetector(ctx)
	if err != nil {
		return nil, nil, err
	}
	return v, v.Close, nil
}
