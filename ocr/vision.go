package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// VisionService extracts text using Google Cloud Vision document text
// detection.
type VisionService struct {
	client        *vision.ImageAnnotatorClient
	languageHints []string
}

// NewVisionService creates a Vision-backed extractor with credentials from
// the environment. It checks GOOGLE_CREDENTIALS (inline JSON) first, then
// GOOGLE_APPLICATION_CREDENTIALS (file path), then application default
// credentials.
func NewVisionService(ctx context.Context, languageHints ...string) (*VisionService, error) {
	const op = "NewVisionService"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &VisionService{
		client:        client,
		languageHints: languageHints,
	}, nil
}

// NewVisionServiceWithClient creates a Vision-backed extractor with an
// explicit client (for testing).
func NewVisionServiceWithClient(client *vision.ImageAnnotatorClient, languageHints ...string) *VisionService {
	return &VisionService{
		client:        client,
		languageHints: languageHints,
	}
}

// ExtractText runs document text detection over a single image and returns
// the recognized text. An image with no detectable text yields an empty
// string, not an error.
func (s *VisionService) ExtractText(ctx context.Context, image []byte) (string, error) {
	const op = "ExtractText"

	if len(image) == 0 {
		return "", NewError(op, ErrEmptyImage, "")
	}
	if len(image) > MaxImageSizeBytes {
		return "", NewError(op, ErrImageTooLarge, fmt.Sprintf("image size: %d bytes", len(image)))
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				ImageContext: s.imageContext(),
			},
		},
	}

	resp, err := s.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", WrapError(op, ErrOCRFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}

	if len(resp.Responses) == 0 {
		return "", WrapError(op, ErrOCRFailed, "no response from Vision API")
	}

	annotation := resp.Responses[0]
	if annotation.Error != nil {
		return "", WrapError(op, ErrOCRFailed, fmt.Sprintf("Vision API error: %s", annotation.Error.Message))
	}

	if annotation.FullTextAnnotation == nil {
		return "", nil
	}

	return strings.TrimRight(annotation.FullTextAnnotation.Text, "\n"), nil
}

func (s *VisionService) imageContext() *visionpb.ImageContext {
	if len(s.languageHints) == 0 {
		return nil
	}
	return &visionpb.ImageContext{LanguageHints: s.languageHints}
}

// Close closes the underlying Vision client.
func (s *VisionService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
