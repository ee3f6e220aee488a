package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
)

// maxImageBytes bounds a single uploaded image.
const maxImageBytes = 10 << 20

const defaultImageContext = "event photo"

const captionPromptDefault = `Analyze this image and provide a concise 2-3 sentence caption describing:
- Main subjects and their activities
- Key setting or environment
- Purpose or significance of the scene

Be specific and factual.`

const captionPromptWithContext = `Context: %s

Analyze this image and provide a concise 2-3 sentence caption describing the
key elements relevant to this context. Focus on main subjects, their
activities, and important details.`

const ocrPrompt = `Extract ALL text visible in this image.

Instructions:
- List all visible text exactly as it appears
- Maintain the original formatting and line breaks
- Include text from posters, banners, signs, presentations, etc.
- If no text is visible, respond with "No text detected"
- Be accurate and complete

Provide only the extracted text without additional commentary.`

// ImageService captions images and extracts visible text via the vision
// model. Images are processed one by one; a failing image yields an inline
// error entry and never fails the batch.
type ImageService struct {
	vision ports.VisionAnalyzer
	log    zerolog.Logger
}

func NewImageService(vision ports.VisionAnalyzer, log zerolog.Logger) *ImageService {
	return &ImageService{vision: vision, log: log}
}

// Caption generates a descriptive caption for each image.
func (s *ImageService) Caption(ctx context.Context, images []ports.ImageInput, imageContext string) ([]ports.ImageResult, error) {
	if s.vision == nil {
		return nil, domain.ErrGeneratorUnavailable
	}
	if len(images) == 0 {
		return nil, &validationError{"no images provided"}
	}

	prompt := captionPromptDefault
	if c := strings.TrimSpace(imageContext); c != "" && c != defaultImageContext {
		prompt = fmt.Sprintf(captionPromptWithContext, c)
	}

	results := make([]ports.ImageResult, 0, len(images))
	for _, img := range images {
		caption, err := s.analyze(ctx, img, prompt, ports.GenerateOptions{Temperature: 0.7, MaxTokens: 500})
		if err != nil {
			s.log.Warn().Err(err).Str("image", img.Name).Msg("caption generation failed")
			results = append(results, ports.ImageResult{Image: img.Name, Err: err.Error()})
			continue
		}
		results = append(results, ports.ImageResult{
			Image:   img.Name,
			Caption: caption,
			Model:   s.vision.ModelName(),
		})
	}
	return results, nil
}

// ExtractText runs the vision model as an OCR pass over each image.
func (s *ImageService) ExtractText(ctx context.Context, images []ports.ImageInput) ([]ports.ImageResult, error) {
	if s.vision == nil {
		return nil, domain.ErrGeneratorUnavailable
	}
	if len(images) == 0 {
		return nil, &validationError{"no images provided"}
	}

	results := make([]ports.ImageResult, 0, len(images))
	for _, img := range images {
		text, err := s.analyze(ctx, img, ocrPrompt, ports.GenerateOptions{Temperature: 0.3, MaxTokens: 800})
		if err != nil {
			s.log.Warn().Err(err).Str("image", img.Name).Msg("text extraction failed")
			results = append(results, ports.ImageResult{Image: img.Name, Err: err.Error()})
			continue
		}
		results = append(results, ports.ImageResult{
			Image:   img.Name,
			Text:    text,
			HasText: !strings.EqualFold(strings.TrimSpace(text), "no text detected"),
			Model:   s.vision.ModelName(),
		})
	}
	return results, nil
}

func (s *ImageService) analyze(ctx context.Context, img ports.ImageInput, prompt string, opts ports.GenerateOptions) (string, error) {
	if len(img.Data) == 0 {
		return "", fmt.Errorf("empty image")
	}
	if len(img.Data) > maxImageBytes {
		return "", fmt.Errorf("image exceeds %d MB limit", maxImageBytes>>20)
	}

	mime := http.DetectContentType(img.Data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("unsupported file type %s", mime)
	}

	return s.vision.AnalyzeImage(ctx, img.Data, mime, prompt, opts)
}
