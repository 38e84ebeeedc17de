package repository

import (
	"context"
	"errors"

	"github.com/kirill778/flowchart/models"
)

// ErrSessionNotFound is returned when a session ID is unknown or its
// cache entry has expired.
var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Save(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
