package chat

import "strings"

// Message is one conversation entry as sent by the agent. Slices of Message are
// ordered most-recent-first throughout the pipeline.
type Message struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Latest returns the text of the most recent message, or "" for an empty slice.
func Latest(msgs []Message) string {
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0].Message
}

// History renders the conversation as "role: message" lines, most recent first.
func History(msgs []Message) string {
	var sb strings.Builder
	for i, m := range msgs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Message)
	}
	return sb.String()
}
