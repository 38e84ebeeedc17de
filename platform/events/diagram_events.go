package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/pkg/logging"
)

const (
	DiagramEventChannel = "diagram:events"
)

type EventPublisher struct {
	redisClient *redis.Client
}

func NewEventPublisher(redisClient *redis.Client) *EventPublisher {
	return &EventPublisher{redisClient: redisClient}
}

func (p *EventPublisher) PublishDiagramEvent(event *models.DiagramEvent) error {
	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		logging.Logger.Error("fail PublishDiagramEvent", "error", err)
		return err
	}
	ctx := context.Background()
	if err := p.redisClient.Publish(ctx, DiagramEventChannel, string(data)).Err(); err != nil {
		logging.Logger.Error("fail PublishDiagramEvent", "error", err)
		return err
	}
	logging.Logger.Info("PublishDiagramEvent", "type", event.Type, "session", event.SessionID)
	return nil
}

func (p *EventPublisher) SubscribeDiagramEvents(ctx context.Context) (<-chan *models.DiagramEvent, error) {
	pubsub := p.redisClient.Subscribe(ctx, DiagramEventChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		logging.Logger.Error("fail SubscribeDiagramEvents", "error", err)
		return nil, err
	}
	ch := make(chan *models.DiagramEvent, 100)

	// goroutine to listen
	go func() {
		defer close(ch)
		defer func(pubsub *redis.PubSub) {
			err := pubsub.Close()
			if err != nil {
				logging.Logger.Error("fail SubscribeDiagramEvents", "error", err)
			}
		}(pubsub)

		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-pubsub.Channel():
				var event models.DiagramEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logging.Logger.Error("failed to unmarshal diagram event", "error", err)
					continue
				}

				select {
				case ch <- &event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
