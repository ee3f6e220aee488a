package ports

import (
	"context"
	"encoding/json"
)

// GenerateOptions tune a single generation round-trip.
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int32
}

// TextGenerator produces free-form or structured text from a prompt. A nil
// TextGenerator means the provider is not configured; callers must map that to
// domain.ErrGeneratorUnavailable rather than panic.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, prompt string, opts GenerateOptions) (string, error)
	// GenerateJSON asks the model for a JSON document and returns the raw
	// payload with any markdown fences already stripped.
	GenerateJSON(ctx context.Context, system, prompt string, opts GenerateOptions) (json.RawMessage, error)
}

// VisionAnalyzer answers a prompt about a single image.
type VisionAnalyzer interface {
	AnalyzeImage(ctx context.Context, data []byte, mimeType, prompt string, opts GenerateOptions) (string, error)
	// ModelName identifies the vision model, echoed back in results.
	ModelName() string
}
