package generate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/texpress/app/generate/mocks"
)

func TestGenerator_Rewrite(t *testing.T) {
	client := &mocks.ClientMock{GenerateFunc: func(_ context.Context, prompt string) (string, error) {
		return "```latex\n\\documentclass{article}\n\\begin{document}Go dev\\end{document}\n```\n", nil
	}}
	gen, err := New(client, nil, PromptConfig{})
	require.NoError(t, err)

	res, err := gen.Rewrite(context.Background(), Request{CurrentResume: "my resume", JobDescription: "go developer"})
	require.NoError(t, err)
	assert.Equal(t, "\\documentclass{article}\n\\begin{document}Go dev\\end{document}", res)

	require.Len(t, client.GenerateCalls(), 1)
	prompt := client.GenerateCalls()[0].Prompt
	assert.Contains(t, prompt, "my resume")
	assert.Contains(t, prompt, "go developer")
	assert.Contains(t, prompt, `\textbf`)
	assert.Contains(t, prompt, "matching closing brace")
	assert.Contains(t, prompt, "code fences")
}

func TestGenerator_RewriteMissingFields(t *testing.T) {
	client := &mocks.ClientMock{GenerateFunc: func(context.Context, string) (string, error) {
		return "never", nil
	}}
	gen, err := New(client, nil, PromptConfig{})
	require.NoError(t, err)

	tbl := []Request{
		{},
		{CurrentResume: "resume"},
		{JobDescription: "job"},
		{CurrentResume: "  ", JobDescription: "job"},
	}
	for _, req := range tbl {
		_, err := gen.Rewrite(context.Background(), req)
		assert.ErrorIs(t, err, ErrMissingField)
	}
	assert.Empty(t, client.GenerateCalls())
}

func TestGenerator_RewriteClientError(t *testing.T) {
	client := &mocks.ClientMock{GenerateFunc: func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	}}
	gen, err := New(client, nil, PromptConfig{})
	require.NoError(t, err)

	_, err = gen.Rewrite(context.Background(), Request{CurrentResume: "r", JobDescription: "j"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Len(t, client.GenerateCalls(), 1, "called once, no retries")
}

func TestGenerator_RewriteWithRepeater(t *testing.T) {
	calls := 0
	client := &mocks.ClientMock{GenerateFunc: func(context.Context, string) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary")
		}
		return "\\section{ok}", nil
	}}
	rptr := repeater.New(&strategy.Backoff{Repeats: 3, Duration: time.Millisecond, Factor: 1})
	gen, err := New(client, rptr, PromptConfig{})
	require.NoError(t, err)

	res, err := gen.Rewrite(context.Background(), Request{CurrentResume: "r", JobDescription: "j"})
	require.NoError(t, err)
	assert.Equal(t, "\\section{ok}", res)
	assert.Len(t, client.GenerateCalls(), 3)
}

func TestGenerator_RewriteNoCredentialNotRetried(t *testing.T) {
	client := &mocks.ClientMock{GenerateFunc: func(context.Context, string) (string, error) {
		return "", ErrNoCredential
	}}
	rptr := repeater.New(&strategy.Backoff{Repeats: 5, Duration: time.Millisecond, Factor: 1})
	gen, err := New(client, rptr, PromptConfig{})
	require.NoError(t, err)

	_, err = gen.Rewrite(context.Background(), Request{CurrentResume: "r", JobDescription: "j"})
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, ErrNoCredential)
	assert.Len(t, client.GenerateCalls(), 1)
}

func TestStripFences(t *testing.T) {
	tbl := []struct {
		name, in, want string
	}{
		{"no fences", "  \\section{a}  \n", "\\section{a}"},
		{"latex fence", "```latex\n\\section{a}\n```", "\\section{a}"},
		{"tex fence", "```tex\n\\section{a}\n```\n", "\\section{a}"},
		{"plain fence", "```\nbody\n```", "body"},
		{"fence in the middle", "a\n```\nb", "a\n\nb"},
		{"four backticks", "````latex\nx\n````", "`latex\nx\n`"},
		{"six backticks", "``````", ""},
		{"nested after removal", "``` ```", ""},
		{"empty", "", ""},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res := StripFences(tt.in)
			assert.Equal(t, tt.want, res)
			assert.NotContains(t, res, "```")
		})
	}
}
