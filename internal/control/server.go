package control

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/watch"
)

// Controller is the command surface the watcher exposes: immediate
// check, feature toggle, description updates and status reads.
type Controller interface {
	Toggle(enabled bool) watch.Status
	SetDescription(desc string) watch.Status
	CheckNow() watch.Status
	Status() watch.Status
}

// Server is the agent's local control API, the stand-in for extension
// popup messaging.
type Server struct {
	router  *chi.Mux
	port    int
	watcher Controller
	logger  *slog.Logger
}

func NewServer(port int, watcher Controller, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:  router,
		port:    port,
		watcher: watcher,
		logger:  logger,
	}

	router.Get("/control/status", s.status)
	router.Post("/control/check", s.check)
	router.Post("/control/toggle", s.toggle)
	router.Post("/control/description", s.description)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("control server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, s.watcher.Status())
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, s.watcher.CheckNow())
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
		writeError(w, http.StatusBadRequest, "enabled boolean is required")
		return
	}
	writeStatus(w, s.watcher.Toggle(*req.Enabled))
}

func (s *Server) description(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Description == nil {
		writeError(w, http.StatusBadRequest, "description string is required")
		return
	}
	writeStatus(w, s.watcher.SetDescription(*req.Description))
}

func writeStatus(w http.ResponseWriter, st watch.Status) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"status":  st,
	})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   msg,
	})
}
