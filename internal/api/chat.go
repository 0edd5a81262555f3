package api

import (
	"encoding/json"
	"net/http"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/chat"
)

type chatRequest struct {
	Messages     json.RawMessage `json:"messages"`
	ReceiverName string          `json:"receiverName"`
	Receiver     string          `json:"receiver"`
}

func (r chatRequest) receiver() string {
	if r.ReceiverName != "" {
		return r.ReceiverName
	}
	return r.Receiver
}

// decodeMessages accepts both a flat array and the wrapped form some
// clients send, where the array sits under a nested "messages" key.
func decodeMessages(raw json.RawMessage) ([]chat.Message, error) {
	var msgs []chat.Message
	if err := json.Unmarshal(raw, &msgs); err == nil {
		return msgs, nil
	}
	var nested struct {
		Messages []chat.Message `json:"messages"`
	}
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, err
	}
	return nested.Messages, nil
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages array is required")
		return
	}

	msgs, err := decodeMessages(req.Messages)
	if err != nil {
		writeError(w, http.StatusBadRequest, "messages must be an array of {role, message} objects")
		return
	}
	if len(msgs) == 0 {
		writeError(w, http.StatusBadRequest, "messages array must not be empty")
		return
	}
	for _, m := range msgs {
		if m.Role == "" || m.Message == "" {
			writeError(w, http.StatusBadRequest, "each message requires a role and a message")
			return
		}
	}

	reply := s.responder.Reply(r.Context(), msgs, req.receiver())

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"response": reply,
		"message":  reply,
	})
}
