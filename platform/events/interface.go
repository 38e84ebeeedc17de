package events

import (
	"context"

	"github.com/kirill778/flowchart/models"
)

// Publisher fans diagram lifecycle events out to subscribers. The redis
// implementation crosses process boundaries, the memory one does not.
type Publisher interface {
	PublishDiagramEvent(event *models.DiagramEvent) error
	SubscribeDiagramEvents(ctx context.Context) (<-chan *models.DiagramEvent, error)
}
