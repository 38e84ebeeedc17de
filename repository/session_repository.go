package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/pkg/logging"
	"github.com/kirill778/flowchart/platform/cache"
)

// sessionRepository keeps sessions in the two-tier cache. Nothing is
// written to disk, an expired or evicted entry is simply gone.
type sessionRepository struct {
	cache *cache.TypedCache[models.Session]
	ttl   time.Duration
}

func NewSessionRepository(cacheService cache.CacheService, ttl time.Duration) SessionRepository {
	return &sessionRepository{
		cache: cache.NewTypedCache[models.Session](cacheService),
		ttl:   ttl,
	}
}

func (r *sessionRepository) Save(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	session.UpdatedAt = time.Now()
	return r.cache.Set(r.getCacheKey(session.ID), *session, r.ttl)
}

func (r *sessionRepository) GetByID(ctx context.Context, sessionID string) (*models.Session, error) {
	session, exists, err := r.cache.Get(r.getCacheKey(sessionID))
	if err != nil {
		logging.Logger.Error("fail GetByID", "error", err, "session", sessionID)
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if !exists {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.cache.Delete(r.getCacheKey(sessionID))
}

func (r *sessionRepository) getCacheKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}
