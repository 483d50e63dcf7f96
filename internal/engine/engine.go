package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"docqa/internal/domain"
	"docqa/internal/embedding"
	"docqa/internal/llm"
	"docqa/internal/vectorstore"
)

const (
	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 2

	// excerptLimit is the maximum source excerpt length in characters.
	excerptLimit = 200

	unknownLabel = "Unknown"
)

// Config assembles the collaborators the engine wires together.
type Config struct {
	Loader     domain.Loader
	Chunker    domain.Chunker
	Embedder   embedding.Embedder
	Generator  llm.Generator
	Summarizer domain.Summarizer

	// NewStore creates a fresh vector store for each index build so a
	// rebuild never mutates the store readers are using.
	NewStore func() vectorstore.Storage

	DocumentDir         string
	TopK                int
	SummaryMaxSentences int
	Logger              *slog.Logger
}

// index is one fully built, immutable index snapshot.
type index struct {
	store    vectorstore.Storage
	docCount int
	summary  string
}

// Engine owns a single replaceable index and answers questions against it.
// Rebuilds are serialized; readers either see the previous index or the new
// one, never a partially built state.
type Engine struct {
	loader     domain.Loader
	chunker    domain.Chunker
	embedder   embedding.Embedder
	generator  llm.Generator
	summarizer domain.Summarizer
	newStore   func() vectorstore.Storage

	docDir              string
	topK                int
	summaryMaxSentences int
	log                 *slog.Logger

	buildMu sync.Mutex   // one rebuild at a time
	mu      sync.RWMutex // guards idx
	idx     *index
}

// New creates an engine and ensures the document directory exists.
func New(cfg Config) (*Engine, error) {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.SummaryMaxSentences <= 0 {
		cfg.SummaryMaxSentences = 5
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if _, err := os.Stat(cfg.DocumentDir); os.IsNotExist(err) {
		if err := os.MkdirAll(cfg.DocumentDir, 0o755); err != nil {
			return nil, fmt.Errorf("create document directory: %w", err)
		}
		cfg.Logger.Info("created document directory", "dir", cfg.DocumentDir)
	}
	return &Engine{
		loader:              cfg.Loader,
		chunker:             cfg.Chunker,
		embedder:            cfg.Embedder,
		generator:           cfg.Generator,
		summarizer:          cfg.Summarizer,
		newStore:            cfg.NewStore,
		docDir:              cfg.DocumentDir,
		topK:                cfg.TopK,
		summaryMaxSentences: cfg.SummaryMaxSentences,
		log:                 cfg.Logger,
	}, nil
}

// DocumentDir returns the directory documents are loaded from.
func (e *Engine) DocumentDir() string { return e.docDir }

// Ready reports whether an index has been built.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.idx != nil
}

// Summary returns the corpus summary computed at the last build.
func (e *Engine) Summary() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.idx == nil {
		return ""
	}
	return e.idx.summary
}

// BuildIndex loads all documents, chunks and embeds them, and atomically
// replaces the current index. A failure for any single chunk aborts the
// whole build; the previous index (if any) stays in place.
func (e *Engine) BuildIndex(ctx context.Context) (domain.BuildResult, error) {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	e.log.Info("loading documents", "dir", e.docDir)
	docs, err := e.loader.LoadAll(e.docDir)
	if err != nil {
		return domain.BuildResult{}, fmt.Errorf("%w: loading documents: %v", domain.ErrIndexBuild, err)
	}
	if len(docs) == 0 {
		return domain.BuildResult{}, fmt.Errorf("%w: no usable documents in %s", domain.ErrIndexBuild, e.docDir)
	}

	var chunks []domain.Chunk
	var texts []string
	var corpus strings.Builder
	for _, d := range docs {
		cs, err := e.chunker.Chunk(d)
		if err != nil {
			return domain.BuildResult{}, fmt.Errorf("%w: chunking %s: %v", domain.ErrIndexBuild, d.FileName, err)
		}
		for _, ch := range cs {
			chunks = append(chunks, ch)
			texts = append(texts, ch.Text)
		}
		corpus.WriteString("\n")
		corpus.WriteString(d.Text)
	}
	if len(chunks) == 0 {
		return domain.BuildResult{}, fmt.Errorf("%w: documents contain no indexable text", domain.ErrIndexBuild)
	}

	if err := e.embedder.Prepare(texts); err != nil {
		return domain.BuildResult{}, fmt.Errorf("%w: preparing embedder: %v", domain.ErrIndexBuild, err)
	}
	vectors := make([][]float64, len(chunks))
	for i := range chunks {
		vec, err := e.embedder.Embed(ctx, chunks[i].Text)
		if err != nil {
			return domain.BuildResult{}, fmt.Errorf("%w: embedding chunk %d of %s: %v",
				domain.ErrIndexBuild, chunks[i].Index, chunks[i].FileName, err)
		}
		vectors[i] = vec
	}

	store := e.newStore()
	if err := store.Clear(ctx); err != nil {
		return domain.BuildResult{}, fmt.Errorf("%w: clearing store: %v", domain.ErrIndexBuild, err)
	}
	if err := store.Init(ctx, e.embedder.Dimension()); err != nil {
		return domain.BuildResult{}, fmt.Errorf("%w: initializing store: %v", domain.ErrIndexBuild, err)
	}
	if err := store.Upsert(ctx, chunks, vectors); err != nil {
		return domain.BuildResult{}, fmt.Errorf("%w: storing vectors: %v", domain.ErrIndexBuild, err)
	}

	summary := ""
	if e.summarizer != nil {
		summary, err = e.summarizer.Summarize(corpus.String(), e.summaryMaxSentences)
		if err != nil {
			e.log.Warn("corpus summary failed", "error", err)
			summary = ""
		}
	}

	e.mu.Lock()
	e.idx = &index{store: store, docCount: len(docs), summary: summary}
	e.mu.Unlock()

	e.log.Info("index created", "documents", len(docs), "chunks", len(chunks))
	return domain.BuildResult{Status: "success", DocumentCount: len(docs)}, nil
}

// Answer embeds the question, retrieves the top-K chunks, runs the QA and
// refinement prompts through the generator, and formats the result with
// source attribution.
func (e *Engine) Answer(ctx context.Context, question string) (domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return domain.Answer{}, domain.ErrInvalidQuestion
	}

	e.mu.RLock()
	idx := e.idx
	e.mu.RUnlock()
	if idx == nil {
		return domain.Answer{}, domain.ErrIndexNotReady
	}

	qvec, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: %v", domain.ErrEmbedding, err)
	}
	results, err := idx.store.Search(ctx, qvec, e.topK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("similarity search: %w", err)
	}

	raw, err := e.generate(ctx, question, results)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}

	final := raw
	if len(results) > 0 {
		final = raw + "\n\n Check further at " + citationSuffix(results)
	}

	sources := make([]domain.Source, 0, len(results))
	for _, r := range results {
		score := r.Score
		sources = append(sources, domain.Source{
			Text:      excerpt(r.Chunk.Text),
			Score:     &score,
			FileName:  orUnknown(r.Chunk.FileName),
			PageLabel: orUnknown(r.Chunk.PageLabel),
		})
	}

	return domain.Answer{
		Question:  question,
		Answer:    final,
		RawAnswer: raw,
		Sources:   sources,
	}, nil
}

// generate runs the QA prompt on the best match, then one refinement pass
// per additional retrieved chunk, threading the prior answer through.
func (e *Engine) generate(ctx context.Context, question string, results []domain.SearchResult) (string, error) {
	contextText := ""
	if len(results) > 0 {
		contextText = results[0].Chunk.Text
	}
	answer, err := e.generator.Generate(ctx, qaPrompt(contextText, question))
	if err != nil {
		return "", err
	}
	for _, r := range results[min(1, len(results)):] {
		answer, err = e.generator.Generate(ctx, refinePrompt(question, answer, r.Chunk.Text))
		if err != nil {
			return "", err
		}
	}
	return answer, nil
}

// citationSuffix renders the human-readable pointer appended to answers:
// the top match's text and file name plus the page labels of the top one
// or two matches.
func citationSuffix(results []domain.SearchResult) string {
	top := results[0].Chunk
	s := top.Text + orUnknown(top.FileName) + "page nos: " + orUnknown(top.PageLabel)
	if len(results) >= 2 {
		s += ", " + orUnknown(results[1].Chunk.PageLabel)
	}
	return s
}

func excerpt(text string) string {
	r := []rune(text)
	if len(r) <= excerptLimit {
		return text
	}
	return string(r[:excerptLimit]) + "..."
}

func orUnknown(s string) string {
	if s == "" {
		return unknownLabel
	}
	return s
}
