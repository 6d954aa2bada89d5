package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextModel generates a completion for a text prompt.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageModel answers a prompt about an image.
type ImageModel interface {
	DescribeImage(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}

// GeminiClient talks to Google Gemini for both text and image prompts.
type GeminiClient struct {
	client      *genai.Client
	textModel   string
	visionModel string
}

func NewGeminiClient(ctx context.Context, apiKey, textModel, visionModel string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, textModel: textModel, visionModel: visionModel}, nil
}

func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.textModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

func (g *GeminiClient) DescribeImage(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	model := g.client.GenerativeModel(g.visionModel)
	format := strings.TrimPrefix(mimeType, "image/")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt), genai.ImageData(format, data))
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from Gemini")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("no text in Gemini response")
	}
	return b.String(), nil
}
