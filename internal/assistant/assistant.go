// Package assistant drafts editorial text with Gemini.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"school-cms-api/internal/util"

	"google.golang.org/genai"
)

// Generator writes short summaries of long-form content.
type Generator interface {
	GenerateExcerpt(ctx context.Context, title, content string, maxWords int) (string, error)
}

var ErrEmptyResponse = errors.New("no response from Gemini")

// generateContent is swapped out in tests.
var generateContent = func(c *genai.Client, ctx context.Context, model string, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
	return c.Models.GenerateContent(ctx, model, contents, nil)
}

type GeminiGenerator struct {
	Client *genai.Client
	Model  string
}

// NewGeminiGenerator uses the Gemini API backend with an API key.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiGenerator{Client: client, Model: model}, nil
}

func (g *GeminiGenerator) GenerateExcerpt(ctx context.Context, title, content string, maxWords int) (string, error) {
	if maxWords <= 0 {
		maxWords = 40
	}

	prompt := fmt.Sprintf(
		"Write a summary of at most %d words for a school website article. "+
			"Use plain text, no markdown, no quotes, and do not invent facts that are not in the article.\n\n"+
			"Title: %s\n\nArticle:\n%s",
		maxWords, title, util.StripTags(content),
	)

	resp, err := generateContent(g.Client, ctx, g.Model, []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generation error: %w", err)
	}

	text := firstText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return util.Excerpt(text, maxWords), nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if t := strings.TrimSpace(part.Text); t != "" {
				return t
			}
		}
	}
	return ""
}
