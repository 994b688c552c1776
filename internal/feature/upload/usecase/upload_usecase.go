package usecase

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"brightloop_backend/internal/platform/logger"
)

// MaxFileSize はアップロードできるファイルの最大サイズ（5MB）です。
const MaxFileSize int64 = 5 << 20

const (
	typeText = "text/plain"
	typePDF  = "application/pdf"
	typePNG  = "image/png"
	typeJPEG = "image/jpeg"
)

// TextRecognizer は画像から文字を読み取るOCRクライアントです。
type TextRecognizer interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}

// uploadUsecase はアップロードされた求人票からテキストを取り出します。
// ファイルはメモリ上でのみ扱い、保存しません。
type uploadUsecase struct {
	ocr TextRecognizer
}

// NewUploadUsecase はuploadUsecaseを生成します。ocrがnilの場合、画像は受け付けません。
func NewUploadUsecase(ocr TextRecognizer) *uploadUsecase {
	return &uploadUsecase{ocr: ocr}
}

// Extract はContent-Typeに応じてファイル内容をテキストに変換します。
func (u *uploadUsecase) Extract(ctx context.Context, contentType string, data []byte) (string, error) {
	if int64(len(data)) > MaxFileSize {
		return "", ErrFileTooLarge
	}

	switch mediaType(contentType, data) {
	case typeText:
		return strings.ToValidUTF8(string(data), "�"), nil
	case typePDF:
		return "", ErrPDFNotSupported
	case typePNG, typeJPEG:
		if u.ocr == nil {
			return "", ErrUnsupportedType
		}
		text, err := u.ocr.DetectText(ctx, data)
		if err != nil {
			return "", fmt.Errorf("ocr: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return "", ErrNoText
		}
		logger.FromContext(ctx).Debug("text extracted from image", zap.Int("chars", len(text)))
		return text, nil
	default:
		return "", ErrUnsupportedType
	}
}

// mediaType はパラメータ（charset等）を除いたメディアタイプを返します。
// クライアントが型を送らない場合は内容から推定します。
func mediaType(contentType string, data []byte) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || mt == "" || mt == "application/octet-stream" {
		mt, _, _ = mime.ParseMediaType(http.DetectContentType(data))
	}
	return strings.ToLower(mt)
}
