package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5001, cfg.Server.Port)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "llama3", cfg.Ollama.LLMModel)
	assert.Equal(t, "DocumentDir", cfg.Documents.Dir)
	assert.Equal(t, "memory", cfg.VectorStore.Type)
	assert.Equal(t, 2, cfg.Retrieval.TopK)
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
ollama:
  base_url: http://ollama:11434
  llm_model: mistral
documents:
  dir: /srv/docs
vector_store:
  type: qdrant
  qdrant:
    url: http://qdrant:6333
    collection: docs
retrieval:
  top_k: 4
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://ollama:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "mistral", cfg.Ollama.LLMModel)
	assert.Equal(t, "/srv/docs", cfg.Documents.Dir)
	assert.Equal(t, "qdrant", cfg.VectorStore.Type)
	require.NotNil(t, cfg.VectorStore.Qdrant)
	assert.Equal(t, "docs", cfg.VectorStore.Qdrant.Collection)
	assert.Equal(t, 4, cfg.Retrieval.TopK)
}

func TestLoad_FillsMissingFieldsWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "llama3", cfg.Ollama.EmbedModel)
	assert.Equal(t, 5, cfg.Chunker.SentencesPerChunk)
	assert.Equal(t, 5, cfg.Summarizer.MaxSentences)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("OLLAMA_BASE_URL", "http://remote:11434")
	t.Setenv("DOCQA_DOCUMENT_DIR", "/mnt/docs")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "http://remote:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "/mnt/docs", cfg.Documents.Dir)
}

func TestEnvOverrides_InvalidPortIgnored(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5001, cfg.Server.Port)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OLLAMA_BASE_URL", "")
	t.Setenv("DOCQA_DOCUMENT_DIR", "")

	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
	want := defaultConfig()
	want.Server.Port = 6001
	want.Embedder.Type = "tfidf"
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
