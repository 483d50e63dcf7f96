package app

import (
	"fmt"
	"log/slog"
	"time"

	"docqa/internal/chunker"
	"docqa/internal/config"
	"docqa/internal/domain"
	"docqa/internal/embedding"
	ollamaembed "docqa/internal/embedding/ollama"
	"docqa/internal/embedding/tfidf"
	"docqa/internal/engine"
	ollamallm "docqa/internal/llm/ollama"
	"docqa/internal/loader"
	"docqa/internal/summarizer"
	"docqa/internal/vectorstore"
	"docqa/internal/vectorstore/memory"
	"docqa/internal/vectorstore/qdrant"
)

// AssembleEngine wires the engine's collaborators from the config type
// switches. Both binaries share this so their wiring cannot drift apart.
func AssembleEngine(cfg *config.AppConfig, logger *slog.Logger) (*engine.Engine, error) {
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "ollama", "":
		emb = ollamaembed.NewClient(ollamaembed.Config{
			BaseURL: cfg.Ollama.BaseURL,
			Model:   cfg.Ollama.EmbedModel,
			Timeout: time.Duration(cfg.Ollama.EmbedTimeoutSecs) * time.Second,
		})
	case "tfidf":
		emb = tfidf.NewEmbedder()
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var ch domain.Chunker
	switch cfg.Chunker.Type {
	case "sentence", "":
		ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	default:
		return nil, fmt.Errorf("unknown chunker: %s", cfg.Chunker.Type)
	}

	var newStore func() vectorstore.Storage
	switch cfg.VectorStore.Type {
	case "memory", "":
		newStore = func() vectorstore.Storage { return memory.NewStorage() }
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			return nil, fmt.Errorf("qdrant config missing")
		}
		qcfg := qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		}
		newStore = func() vectorstore.Storage { return qdrant.NewStorage(qcfg) }
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	var sum domain.Summarizer
	switch cfg.Summarizer.Type {
	case "frequency", "":
		sum = summarizer.NewFrequencySummarizer()
	default:
		return nil, fmt.Errorf("unknown summarizer: %s", cfg.Summarizer.Type)
	}

	gen := ollamallm.NewClient(ollamallm.Config{
		BaseURL: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.LLMModel,
		Timeout: time.Duration(cfg.Ollama.GenerateTimeoutSecs) * time.Second,
	})

	return engine.New(engine.Config{
		Loader:              loader.New(),
		Chunker:             ch,
		Embedder:            emb,
		Generator:           gen,
		Summarizer:          sum,
		NewStore:            newStore,
		DocumentDir:         cfg.Documents.Dir,
		TopK:                cfg.Retrieval.TopK,
		SummaryMaxSentences: cfg.Summarizer.MaxSentences,
		Logger:              logger,
	})
}
