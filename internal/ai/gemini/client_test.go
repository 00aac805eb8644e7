package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"google.golang.org/genai"
)

type fakeModels struct {
	mu     sync.Mutex
	resp   *genai.GenerateContentResponse
	err    error
	calls  int
	model  string
	config *genai.GenerateContentConfig
	prompt string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, text := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: text})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGeneratorGenerateContent(t *testing.T) {
	models := &fakeModels{resp: textResponse(`{"scores": [`, "", `]}`)}
	g := newGenerator(models, "")

	output, err := g.GenerateContent(context.Background(), "  score this  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != "{\"scores\": [\n]}" {
		t.Fatalf("unexpected output: %q", output)
	}

	if models.model != defaultModel {
		t.Fatalf("expected default model, got %q", models.model)
	}

	if models.prompt != "score this" {
		t.Fatalf("unexpected prompt: %q", models.prompt)
	}

	if models.config == nil || models.config.Temperature == nil || *models.config.Temperature != defaultTemperature {
		t.Fatalf("expected temperature %v to be set", defaultTemperature)
	}

	if models.config.ResponseMIMEType != responseMIMEType {
		t.Fatalf("unexpected response mime type: %q", models.config.ResponseMIMEType)
	}
}

func TestGeneratorEmptyResponse(t *testing.T) {
	for name, resp := range map[string]*genai.GenerateContentResponse{
		"nil":          nil,
		"no candidate": {},
		"blank parts":  textResponse("  ", "\n"),
	} {
		t.Run(name, func(t *testing.T) {
			g := newGenerator(&fakeModels{resp: resp}, "gemini-pro")

			_, err := g.GenerateContent(context.Background(), "prompt")
			if !errors.Is(err, ErrEmptyResponse) {
				t.Fatalf("expected ErrEmptyResponse, got %v", err)
			}
		})
	}
}

func TestGeneratorWrapsAPIError(t *testing.T) {
	apiErr := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	models := &fakeModels{err: apiErr}
	g := newGenerator(models, "gemini-pro")

	_, err := g.GenerateContent(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}

	var got genai.APIError
	if !errors.As(err, &got) || got.Code != http.StatusInternalServerError {
		t.Fatalf("expected wrapped api error, got %v", err)
	}

	if models.calls != 1 {
		t.Fatalf("expected a single call, got %d", models.calls)
	}
}

func TestGeneratorRejectsEmptyPrompt(t *testing.T) {
	models := &fakeModels{resp: textResponse("ok")}
	g := newGenerator(models, "gemini-pro")

	if _, err := g.GenerateContent(context.Background(), " \n "); err == nil {
		t.Fatal("expected error for empty prompt")
	}

	if models.calls != 0 {
		t.Fatalf("expected no api calls, got %d", models.calls)
	}
}

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "  ", ""); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
