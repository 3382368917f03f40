package generator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiModel calls Google's Gemini API with a response schema that only
// admits the contractText field.
type GeminiModel struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiModel(ctx context.Context, apiKey, modelName string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiModel{
		client:      client,
		model:       modelName,
		temperature: 0.4,
	}, nil
}

func contractSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"contractText": {
				Type:        genai.TypeString,
				Description: "O texto completo do contrato gerado em formato Markdown.",
			},
		},
		Required: []string{"contractText"},
	}
}

func (g *GeminiModel) GenerateStructured(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:      &temperature,
			ResponseMIMEType: "application/json",
			ResponseSchema:   contractSchema(),
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no content returned by %s", g.model)
	}
	return text, nil
}

func (g *GeminiModel) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}
