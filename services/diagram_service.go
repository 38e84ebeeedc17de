package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/platform/events"
)

var (
	ErrInvalidDirection = errors.New("unknown layout direction")
	ErrNoDiagram        = errors.New("session has no diagram yet")
	ErrNodeNotFound     = errors.New("node not found")
	ErrEdgeNotFound     = errors.New("edge not found")
	ErrEdgeExists       = errors.New("edge already exists")
	ErrSelfLoop         = errors.New("edge endpoints must differ")
)

// DiagramService implements the editing operations on a session's diagram.
// Mutations run under the session lock on a copy of the diagram, so readers
// holding the previous cached pointer keep a consistent snapshot.
type DiagramService struct {
	sessions  *SessionService
	publisher events.Publisher
}

func NewDiagramService(sessions *SessionService, publisher events.Publisher) *DiagramService {
	return &DiagramService{sessions: sessions, publisher: publisher}
}

// AddNode appends a node after the current last one and, when the diagram
// is not empty, connects last node to the new one. On a session without a
// diagram it starts a fresh manual one.
func (s *DiagramService) AddNode(ctx context.Context, sessionID, label string) (*models.Diagram, error) {
	return s.mutate(ctx, sessionID, true, func(d *models.Diagram) error {
		x, y := PositionFor(len(d.Nodes), d.Direction)
		node := models.Node{
			ID:     uuid.New().String(),
			Label:  label,
			X:      x,
			Y:      y,
			Width:  NodeWidth,
			Height: NodeHeight,
		}
		if n := len(d.Nodes); n > 0 {
			d.Edges = append(d.Edges, models.Edge{Source: d.Nodes[n-1].ID, Target: node.ID})
		}
		d.Nodes = append(d.Nodes, node)
		return nil
	})
}

// UpdateNode renames a node, position untouched.
func (s *DiagramService) UpdateNode(ctx context.Context, sessionID, nodeID, label string) (*models.Diagram, error) {
	return s.mutate(ctx, sessionID, false, func(d *models.Diagram) error {
		for i := range d.Nodes {
			if d.Nodes[i].ID == nodeID {
				d.Nodes[i].Label = label
				return nil
			}
		}
		return ErrNodeNotFound
	})
}

// DeleteNode removes exactly that node and every edge touching it.
func (s *DiagramService) DeleteNode(ctx context.Context, sessionID, nodeID string) (*models.Diagram, error) {
	return s.mutate(ctx, sessionID, false, func(d *models.Diagram) error {
		idx := -1
		for i := range d.Nodes {
			if d.Nodes[i].ID == nodeID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNodeNotFound
		}
		d.Nodes = append(d.Nodes[:idx], d.Nodes[idx+1:]...)

		edges := make([]models.Edge, 0, len(d.Edges))
		for _, e := range d.Edges {
			if e.Source != nodeID && e.Target != nodeID {
				edges = append(edges, e)
			}
		}
		d.Edges = edges
		return nil
	})
}

func (s *DiagramService) Connect(ctx context.Context, sessionID, source, target string) (*models.Diagram, error) {
	return s.mutate(ctx, sessionID, false, func(d *models.Diagram) error {
		if source == target {
			return ErrSelfLoop
		}
		if !hasNode(d, source) || !hasNode(d, target) {
			return ErrNodeNotFound
		}
		for _, e := range d.Edges {
			if e.Source == source && e.Target == target {
				return ErrEdgeExists
			}
		}
		d.Edges = append(d.Edges, models.Edge{Source: source, Target: target})
		return nil
	})
}

func (s *DiagramService) Disconnect(ctx context.Context, sessionID, source, target string) (*models.Diagram, error) {
	return s.mutate(ctx, sessionID, false, func(d *models.Diagram) error {
		for i, e := range d.Edges {
			if e.Source == source && e.Target == target {
				d.Edges = append(d.Edges[:i], d.Edges[i+1:]...)
				return nil
			}
		}
		return ErrEdgeNotFound
	})
}

// Relayout recomputes every position for the new direction, node order and
// labels preserved.
func (s *DiagramService) Relayout(ctx context.Context, sessionID string, direction models.Direction) (*models.Diagram, error) {
	if !direction.Valid() {
		return nil, ErrInvalidDirection
	}
	return s.mutate(ctx, sessionID, false, func(d *models.Diagram) error {
		RelayoutDiagram(d, direction)
		return nil
	})
}

func (s *DiagramService) mutate(ctx context.Context, sessionID string, allowCreate bool, fn func(*models.Diagram) error) (*models.Diagram, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(session *models.Session) error {
		if session.Diagram == nil {
			if !allowCreate {
				return ErrNoDiagram
			}
			session.Diagram = &models.Diagram{
				Direction: models.DirectionVertical,
				Source:    models.SourceManual,
				Nodes:     []models.Node{},
				Edges:     []models.Edge{},
			}
		}
		diagram := cloneDiagram(session.Diagram)
		if err := fn(diagram); err != nil {
			return err
		}
		diagram.UpdatedAt = time.Now()
		session.Diagram = diagram
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = s.publisher.PublishDiagramEvent(&models.DiagramEvent{
		Type:      models.EventDiagramUpdated,
		SessionID: sessionID,
		NodeCount: len(session.Diagram.Nodes),
	})
	return session.Diagram, nil
}

func cloneDiagram(d *models.Diagram) *models.Diagram {
	clone := *d
	clone.Nodes = make([]models.Node, len(d.Nodes))
	copy(clone.Nodes, d.Nodes)
	clone.Edges = make([]models.Edge, len(d.Edges))
	copy(clone.Edges, d.Edges)
	return &clone
}

func hasNode(d *models.Diagram, nodeID string) bool {
	for i := range d.Nodes {
		if d.Nodes[i].ID == nodeID {
			return true
		}
	}
	return false
}
