package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Success(t *testing.T) {
	var gotModel, gotPrompt string
	var gotStream bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotModel, gotPrompt, gotStream = req.Model, req.Prompt, req.Stream
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "generated text", "done": true})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Model: "llama3"})
	out, err := c.Generate(context.Background(), "a prompt")
	require.NoError(t, err)
	assert.Equal(t, "generated text", out)
	assert.Equal(t, "llama3", gotModel)
	assert.Equal(t, "a prompt", gotPrompt)
	assert.False(t, gotStream)
}

func TestGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), "a prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "llama3", NewClient(Config{}).ModelName())
	assert.Equal(t, "mistral", NewClient(Config{Model: "mistral"}).ModelName())
}
