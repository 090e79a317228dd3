package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func stubGenerate(t *testing.T, fn func(model string, contents []*genai.Content) (*genai.GenerateContentResponse, error)) {
	t.Helper()
	old := generateContent
	generateContent = func(_ *genai.Client, _ context.Context, model string, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
		return fn(model, contents)
	}
	t.Cleanup(func() { generateContent = old })
}

func response(t *testing.T, raw string) *genai.GenerateContentResponse {
	t.Helper()
	var out genai.GenerateContentResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return &out
}

func TestGenerateExcerpt_PromptAndTrim(t *testing.T) {
	stubGenerate(t, func(model string, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
		if model != "gemini-test" {
			t.Fatalf("model=%q", model)
		}
		prompt := contents[0].Parts[0].Text
		if !strings.Contains(prompt, "at most 5 words") || !strings.Contains(prompt, "Title: Sports Day") {
			t.Fatalf("unexpected prompt: %s", prompt)
		}
		if strings.Contains(prompt, "<p>") {
			t.Fatalf("markup should be stripped: %s", prompt)
		}
		return response(t, `{"candidates":[{"content":{"parts":[{"text":"  "},{"text":"Students raced and cheered all afternoon long"}]}}]}`), nil
	})

	g := &GeminiGenerator{Client: &genai.Client{}, Model: "gemini-test"}
	got, err := g.GenerateExcerpt(context.Background(), "Sports Day", "<p>The field was full.</p>", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Students raced and cheered all..." {
		t.Fatalf("got %q", got)
	}
}

func TestGenerateExcerpt_EmptyResponse(t *testing.T) {
	stubGenerate(t, func(string, []*genai.Content) (*genai.GenerateContentResponse, error) {
		return response(t, `{"candidates":[{"content":{"parts":[]}}]}`), nil
	})

	g := &GeminiGenerator{Client: &genai.Client{}, Model: "m"}
	if _, err := g.GenerateExcerpt(context.Background(), "t", "c", 0); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGenerateExcerpt_UpstreamError(t *testing.T) {
	stubGenerate(t, func(string, []*genai.Content) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("quota")
	})

	g := &GeminiGenerator{Client: &genai.Client{}, Model: "m"}
	_, err := g.GenerateExcerpt(context.Background(), "t", "c", 10)
	if err == nil || !strings.Contains(err.Error(), "generation error") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
