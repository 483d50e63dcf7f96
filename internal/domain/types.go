package domain

// Document is a single unit of ingested content: one file, or one page of a
// multi-page file. Page labels are 1-based strings ("1", "2", ...).
type Document struct {
	FileName  string
	PageLabel string
	Text      string
}

// Chunk is a retrievable slice of a document's text. FileName and PageLabel
// are carried from the source document for attribution only.
type Chunk struct {
	ID        string
	FileName  string
	PageLabel string
	Index     int
	Text      string
}

// SearchResult is a matching chunk with a similarity score (higher = more relevant).
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Source is one citation entry in an answer. Text is an excerpt of at most
// 200 characters (with a trailing "..." when truncated). Score is nil when
// the backing store did not report one.
type Source struct {
	Text      string   `json:"text"`
	Score     *float64 `json:"score,omitempty"`
	FileName  string   `json:"file_name"`
	PageLabel string   `json:"page_label"`
}

// Answer is the full result of answering one question. RawAnswer is the
// generated text before the citation suffix is appended; with zero retrieved
// chunks the two are identical.
type Answer struct {
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	RawAnswer string   `json:"raw_answer"`
	Sources   []Source `json:"sources"`
}

// BuildResult reports the outcome of an index build.
type BuildResult struct {
	Status        string `json:"status"`
	DocumentCount int    `json:"document_count"`
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Loader reads all supported documents under a directory.
type Loader interface {
	LoadAll(dir string) ([]Document, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
