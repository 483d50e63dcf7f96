package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/config"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	cfg.Documents.Dir = t.TempDir()
	return cfg
}

func TestAssembleEngine_Defaults(t *testing.T) {
	cfg := testConfig(t)
	eng, err := AssembleEngine(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.Documents.Dir, eng.DocumentDir())
}

func TestAssembleEngine_OfflineVariant(t *testing.T) {
	cfg := testConfig(t)
	cfg.Embedder.Type = "tfidf"
	cfg.VectorStore.Type = "memory"

	_, err := AssembleEngine(cfg, nil)
	require.NoError(t, err)
}

func TestAssembleEngine_UnknownComponents(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AppConfig)
	}{
		{"embedder", func(c *config.AppConfig) { c.Embedder.Type = "word2vec" }},
		{"chunker", func(c *config.AppConfig) { c.Chunker.Type = "paragraph" }},
		{"vector store", func(c *config.AppConfig) { c.VectorStore.Type = "pinecone" }},
		{"summarizer", func(c *config.AppConfig) { c.Summarizer.Type = "llm" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)
			_, err := AssembleEngine(cfg, nil)
			assert.Error(t, err)
		})
	}
}

func TestAssembleEngine_QdrantRequiresConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.VectorStore.Type = "qdrant"
	cfg.VectorStore.Qdrant = nil

	_, err := AssembleEngine(cfg, nil)
	assert.Error(t, err)
}
