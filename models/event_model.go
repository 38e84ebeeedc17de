package models

import "time"

type DiagramEventType string

const (
	EventGenerationStarted   DiagramEventType = "generation_started"
	EventGenerationCompleted DiagramEventType = "generation_completed"
	EventGenerationFailed    DiagramEventType = "generation_failed"
	EventDiagramUpdated      DiagramEventType = "diagram_updated"
	EventSessionReset        DiagramEventType = "session_reset"
)

// DiagramEvent is pushed to websocket subscribers while a session's diagram
// is being generated or edited.
type DiagramEvent struct {
	Type      DiagramEventType `json:"type"`
	SessionID string           `json:"session_id"`
	Message   string           `json:"message,omitempty"`
	NodeCount int              `json:"node_count,omitempty"`
	Fallback  bool             `json:"fallback,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
