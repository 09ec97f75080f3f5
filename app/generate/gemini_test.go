package generate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClient_NoCredential(t *testing.T) {
	c := GeminiClient{}
	_, err := c.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestGeminiClient_Generate(t *testing.T) {
	var gotPath, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"role": "model", "parts": []map[string]any{{"text": "\\section{Rewritten}"}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	c := GeminiClient{APIKey: "test-key", Model: "test-model", BaseURL: ts.URL + "/"}
	res, err := c.Generate(context.Background(), "rewrite this")
	require.NoError(t, err)
	assert.Equal(t, "\\section{Rewritten}", res)
	assert.True(t, strings.HasSuffix(gotPath, "models/test-model:generateContent"), gotPath)
	assert.Contains(t, gotBody, "rewrite this")
}

func TestGeminiClient_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
	}))
	defer ts.Close()

	c := GeminiClient{APIKey: "test-key", BaseURL: ts.URL + "/"}
	_, err := c.Generate(context.Background(), "rewrite this")
	require.Error(t, err)
	assert.Contains(t, err.Error(), DefaultModel)
}
