package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"docqa/internal/domain"
)

// farewellMessage is returned verbatim when a chat client sends "exit".
const farewellMessage = "Thank you for reaching out. Feel free to visit us again.. byee"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"timestamp":    float64(time.Now().UnixMilli()) / 1000.0,
		"ollama_url":   s.ollamaURL,
		"document_dir": s.engine.DocumentDir(),
	})
}

// ensureIndex lazily builds the index when none exists yet. It reports
// whether the caller may proceed.
func (s *Server) ensureIndex(w http.ResponseWriter, r *http.Request) bool {
	if s.engine.Ready() {
		return true
	}
	if _, err := s.engine.BuildIndex(r.Context()); err != nil {
		s.log.Error("lazy index build failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to initialize RAG engine: %v", err))
		return false
	}
	return true
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.ensureIndex(w, r) {
		return
	}

	var req struct {
		Question *string `json:"question"`
	}
	if err := decodeBody(r, &req); err != nil || req.Question == nil {
		writeError(w, http.StatusBadRequest, "Missing 'question' field in request")
		return
	}
	if strings.TrimSpace(*req.Question) == "" {
		writeError(w, http.StatusBadRequest, "Question must be a non-empty string")
		return
	}

	answer, err := s.engine.Answer(r.Context(), *req.Question)
	if err != nil {
		s.answerError(w, err, "Failed to process question")
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	result, err := s.engine.BuildIndex(r.Context())
	if err != nil {
		s.log.Error("reload failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to reload data: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Data reloaded successfully",
		"details": result,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.ensureIndex(w, r) {
		return
	}

	var req struct {
		Message *string `json:"message"`
	}
	if err := decodeBody(r, &req); err != nil || req.Message == nil {
		writeError(w, http.StatusBadRequest, "Missing 'message' field in request")
		return
	}
	message := *req.Message
	if strings.TrimSpace(message) == "" {
		writeError(w, http.StatusBadRequest, "Message must be a non-empty string")
		return
	}

	// Exit command bypasses the pipeline entirely.
	if strings.EqualFold(message, "exit") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(farewellMessage))
		return
	}

	answer, err := s.engine.Answer(r.Context(), message)
	if err != nil {
		s.answerError(w, err, "Failed to process message")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(answer.Answer))
}

// answerError maps the error taxonomy onto HTTP status codes.
func (s *Server) answerError(w http.ResponseWriter, err error, prefix string) {
	if errors.Is(err, domain.ErrInvalidQuestion) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Error("answer failed", "error", err)
	writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", prefix, err))
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
