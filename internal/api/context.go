package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/ingest"
)

type saveContextRequest struct {
	Context *string `json:"context"`
}

func (s *Server) handleSaveContext(w http.ResponseWriter, r *http.Request) {
	var req saveContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Context == nil {
		writeError(w, http.StatusBadRequest, "context field is required and must be a string")
		return
	}
	if strings.TrimSpace(*req.Context) == "" {
		writeError(w, http.StatusBadRequest, "context must not be empty")
		return
	}

	job := ingest.Job{
		Text: *req.Context,
		Metadata: ingest.Metadata{
			Timestamp: time.Now().UTC(),
			Source:    "linkedin-conversation",
		},
	}
	id, err := s.queue.Enqueue(job)
	if err != nil {
		s.logger.Error("failed to enqueue context job", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to queue context for processing")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Context queued for processing",
		"jobId":   id,
	})
}
