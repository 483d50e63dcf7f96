package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"docqa/internal/domain"
)

// Engine is the server-facing subset of the question-answering engine.
type Engine interface {
	Ready() bool
	DocumentDir() string
	BuildIndex(ctx context.Context) (domain.BuildResult, error)
	Answer(ctx context.Context, question string) (domain.Answer, error)
}

// Server exposes the RAG engine over HTTP.
type Server struct {
	engine    Engine
	ollamaURL string
	log       *slog.Logger
}

// New creates a Server around the given engine. ollamaURL is reported by the
// health endpoint only.
func New(engine Engine, ollamaURL string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{engine: engine, ollamaURL: ollamaURL, log: log}
}

// Routes returns the HTTP handler with all endpoints registered.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/api/ask", enableCORS(s.handleAsk))
	mux.HandleFunc("/api/reload", enableCORS(s.handleReload))
	mux.HandleFunc("/api/chat", enableCORS(s.handleChat))
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// enableCORS allows all origins and handles preflight requests.
func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	}
}
