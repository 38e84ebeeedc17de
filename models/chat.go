package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is one entry of the session transcript. The transcript is
// append-only and kept in memory for the lifetime of the session.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session holds everything the UI works with: the current diagram and the
// chat transcript. Sessions are TTL-evicted, never persisted.
type Session struct {
	ID        string        `json:"id"`
	Diagram   *Diagram      `json:"diagram,omitempty"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
