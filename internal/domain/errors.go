package domain

import "errors"

// Failure categories surfaced to the HTTP boundary. Build and generation
// failures wrap the underlying cause with fmt.Errorf("%w: ...", ...) so
// callers classify them with errors.Is.
var (
	// ErrInvalidQuestion marks bad caller input; the caller can re-ask.
	ErrInvalidQuestion = errors.New("question must be a non-empty string")

	// ErrIndexNotReady means no index has been built yet.
	ErrIndexNotReady = errors.New("index not initialized")

	// ErrIndexBuild marks a document load or embedding failure during a build.
	ErrIndexBuild = errors.New("index build failed")

	// ErrEmbedding marks a failed call to the embedding service at query time.
	ErrEmbedding = errors.New("question embedding failed")

	// ErrGeneration marks a failed call to the text-generation service.
	ErrGeneration = errors.New("text generation failed")
)
