package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/platform/events"
	"github.com/kirill778/flowchart/repository"
)

// SessionService owns the session lifecycle and serializes mutations per
// session: the repository is a plain cache, so read-modify-write cycles
// need a lock to not lose updates.
type SessionService struct {
	repo      repository.SessionRepository
	publisher events.Publisher

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionService(repo repository.SessionRepository, publisher events.Publisher) *SessionService {
	return &SessionService{
		repo:      repo,
		publisher: publisher,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *SessionService) Create(ctx context.Context) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.New().String(),
		Messages:  []models.ChatMessage{},
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.repo.GetByID(ctx, sessionID)
}

func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.locks, sessionID)
	s.mu.Unlock()
	return nil
}

// Reset clears the diagram and transcript but keeps the session ID.
func (s *SessionService) Reset(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.Update(ctx, sessionID, func(session *models.Session) error {
		session.Diagram = nil
		session.Messages = []models.ChatMessage{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = s.publisher.PublishDiagramEvent(&models.DiagramEvent{
		Type:      models.EventSessionReset,
		SessionID: sessionID,
	})
	return session, nil
}

// Update applies fn to the session under its lock and saves the result.
func (s *SessionService) Update(ctx context.Context, sessionID string, fn func(*models.Session) error) (*models.Session, error) {
	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) lockFor(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}
