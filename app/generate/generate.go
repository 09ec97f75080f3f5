// Package generate rewrites a LaTeX resume for a job description with a hosted language model.
package generate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	log "github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/client.go -pkg mocks -skip-ensure -fmt goimports . Client

var (
	// ErrMissingField returned when the resume or the job description is empty
	ErrMissingField = errors.New("currentResume and jobDescription are required")
	// ErrGeneration wraps every failure of the generation service
	ErrGeneration = errors.New("generation failed")
	// ErrNoCredential returned by clients when no API key is configured
	ErrNoCredential = errors.New("generation service credential is not configured")
)

// Client sends a single prompt to the generation service and returns the generated text
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Repeater repeats failed function, the service is called once if not set
type Repeater interface {
	Do(ctx context.Context, fun func() error, errors ...error) (err error)
}

// Request is the input of a rewrite
type Request struct {
	CurrentResume  string
	JobDescription string
}

// Generator builds the prompt, calls the client and cleans up the answer
type Generator struct {
	client   Client
	repeater Repeater
	prompt   *prompt
}

// New makes Generator. Repeater can be nil.
func New(client Client, rptr Repeater, cfg PromptConfig) (*Generator, error) {
	p, err := newPrompt(cfg)
	if err != nil {
		return nil, err
	}
	return &Generator{client: client, repeater: rptr, prompt: p}, nil
}

// Rewrite returns LaTeX rewritten for the job description. Both request fields are required and
// checked before the service is called. Errors from the service are wrapped with ErrGeneration.
func (g *Generator) Rewrite(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.CurrentResume) == "" || strings.TrimSpace(req.JobDescription) == "" {
		return "", ErrMissingField
	}

	text, err := g.prompt.build(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	var resp string
	call := func() error {
		r, e := g.client.Generate(ctx, text)
		if e != nil {
			return e
		}
		resp = r
		return nil
	}

	if g.repeater != nil {
		err = g.repeater.Do(ctx, call, ErrNoCredential)
	} else {
		err = call()
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	res := StripFences(resp)
	log.Printf("[DEBUG] generated %d bytes of latex (raw %d)", len(res), len(resp))
	return res, nil
}

var fenceRe = regexp.MustCompile("```[A-Za-z0-9_+-]*")

// StripFences removes markdown code fence markers (with optional language tag) and surrounding
// whitespace. The result never contains a triple backtick.
func StripFences(s string) string {
	for strings.Contains(s, "```") {
		s = fenceRe.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}
