// Package vision はGoogle Cloud Vision APIを使用した文字認識（OCR）クライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"brightloop_backend/internal/feature/upload/usecase"
)

// VisionTextDetector はGoogle Cloud Vision APIのDOCUMENT_TEXT_DETECTIONで画像内の文字を読み取ります。
type VisionTextDetector struct {
	client *gvision.ImageAnnotatorClient
}

// VisionTextDetectorがTextRecognizerを実装していることをコンパイル時に検証します。
var _ usecase.TextRecognizer = (*VisionTextDetector)(nil)

// NewVisionTextDetector はADCを使用してVisionTextDetectorの新しいインスタンスを生成します。
func NewVisionTextDetector(ctx context.Context) (*VisionTextDetector, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionTextDetector{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionTextDetector) Close() error {
	return v.client.Close()
}

// DetectText は画像バイト列から文書テキストを抽出します。
func (v *VisionTextDetector) DetectText(ctx context.Context, image []byte) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}
	return textFromResponse(resp)
}

// textFromResponse は最初の画像の結果から全文を取り出します。
// FullTextAnnotationが無い場合は先頭のTextAnnotationを使います。
func textFromResponse(resp *visionpb.BatchAnnotateImagesResponse) (string, error) {
	if len(resp.GetResponses()) == 0 {
		return "", nil
	}
	r := resp.GetResponses()[0]
	if r.GetError() != nil {
		return "", fmt.Errorf("vision API error: %s", r.GetError().GetMessage())
	}
	if text := r.GetFullTextAnnotation().GetText(); text != "" {
		return text, nil
	}
	if anns := r.GetTextAnnotations(); len(anns) > 0 {
		return anns[0].GetDescription(), nil
	}
	return "", nil
}
