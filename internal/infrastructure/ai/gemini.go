// Package ai adapts the Google Gemini API to the generation ports.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/campusops/api/internal/core/ports"
)

// Gemini implements ports.TextGenerator and ports.VisionAnalyzer on top of
// the google.golang.org/genai client.
type Gemini struct {
	client      *genai.Client
	model       string
	visionModel string
}

// NewGemini creates a Gemini adapter. An empty API key is an error; callers
// that want to run without AI features should not construct the adapter at
// all and leave the generator ports nil instead.
func NewGemini(ctx context.Context, apiKey, model, visionModel string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	if visionModel == "" {
		visionModel = model
	}
	return &Gemini{client: client, model: model, visionModel: visionModel}, nil
}

// GenerateText runs one text generation round-trip.
func (g *Gemini) GenerateText(ctx context.Context, system, prompt string, opts ports.GenerateOptions) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		g.config(system, opts, ""))
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

// GenerateJSON asks for a JSON document and strips any markdown fences the
// model wrapped around it.
func (g *Gemini) GenerateJSON(ctx context.Context, system, prompt string, opts ports.GenerateOptions) (json.RawMessage, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		g.config(system, opts, "application/json"))
	if err != nil {
		return nil, fmt.Errorf("gemini: generate json: %w", err)
	}

	text := stripJSONFences(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("gemini: empty response")
	}
	return json.RawMessage(text), nil
}

// AnalyzeImage answers a prompt about a single image.
func (g *Gemini) AnalyzeImage(ctx context.Context, data []byte, mimeType, prompt string, opts ports.GenerateOptions) (string, error) {
	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(data, mimeType),
		genai.NewPartFromText(prompt),
	}, genai.RoleUser)

	resp, err := g.client.Models.GenerateContent(ctx,
		g.visionModel,
		[]*genai.Content{content},
		g.config("", opts, ""))
	if err != nil {
		return "", fmt.Errorf("gemini: analyze image: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

// ModelName identifies the vision model, echoed back in results.
func (g *Gemini) ModelName() string {
	return g.visionModel
}

func (g *Gemini) config(system string, opts ports.GenerateOptions, responseMIME string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if opts.Temperature > 0 {
		cfg.Temperature = genai.Ptr(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = opts.MaxTokens
	}
	if responseMIME != "" {
		cfg.ResponseMIMEType = responseMIME
	}
	return cfg
}

// stripJSONFences removes a surrounding ```json ... ``` block if present.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
