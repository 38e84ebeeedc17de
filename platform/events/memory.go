package events

import (
	"context"
	"sync"
	"time"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/pkg/logging"
)

// MemoryPublisher is the single-process fallback used when Redis is not
// configured. Subscribers that stop draining their channel miss events
// instead of blocking publishers.
type MemoryPublisher struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan *models.DiagramEvent
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{subs: make(map[int]chan *models.DiagramEvent)}
}

func (p *MemoryPublisher) PublishDiagramEvent(event *models.DiagramEvent) error {
	event.Timestamp = time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()
	for id, sub := range p.subs {
		select {
		case sub <- event:
		default:
			logging.Logger.Warn("diagram event dropped, slow subscriber", "subscriber", id, "type", event.Type)
		}
	}
	return nil
}

func (p *MemoryPublisher) SubscribeDiagramEvents(ctx context.Context) (<-chan *models.DiagramEvent, error) {
	ch := make(chan *models.DiagramEvent, 100)

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = ch
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}
