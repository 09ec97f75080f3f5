package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"
	"google.golang.org/genai"
)

// DefaultModel used when no model configured
const DefaultModel = "gemini-2.5-flash"

// GeminiClient calls Gemini API. The API key is checked on every call, so a missing key
// fails requests rather than the startup.
type GeminiClient struct {
	APIKey     string
	Model      string
	Timeout    time.Duration // 0 means no timeout
	BaseURL    string        // optional API endpoint override
	HTTPClient *http.Client
}

// Generate sends prompt to the model and returns the text of the answer
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if g.APIKey == "" {
		return "", ErrNoCredential
	}
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	cfg := &genai.ClientConfig{APIKey: g.APIKey, Backend: genai.BackendGeminiAPI, HTTPClient: g.HTTPClient}
	if g.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("can't make gemini client: %w", err)
	}

	model := g.Model
	if model == "" {
		model = DefaultModel
	}

	st := time.Now()
	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini request to %s failed: %w", model, err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned empty response")
	}
	log.Printf("[DEBUG] gemini %s responded in %v", model, time.Since(st))
	return text, nil
}
