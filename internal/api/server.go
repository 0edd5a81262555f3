package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/chat"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/ingest"
)

// Responder turns a conversation into a reply. It never fails: tier
// fallbacks guarantee some text comes back.
type Responder interface {
	Reply(ctx context.Context, msgs []chat.Message, receiver string) string
}

// Enqueuer hands a context document to the ingestion queue and returns
// the job id.
type Enqueuer interface {
	Enqueue(job ingest.Job) (string, error)
}

type Server struct {
	router    *chi.Mux
	port      int
	responder Responder
	queue     Enqueuer
	workers   int
	logger    *slog.Logger
}

func NewServer(port int, responder Responder, queue Enqueuer, workers int, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors)

	s := &Server{
		router:    router,
		port:      port,
		responder: responder,
		queue:     queue,
		workers:   workers,
		logger:    logger,
	}

	router.Get("/health", s.health)
	router.Post("/api/chat", s.handleChat)
	router.Post("/chat", s.handleChat)
	router.Post("/api/save-context", s.handleSaveContext)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"workers": s.workers,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}
