package nats

import (
	"context"
	"encoding/json"

	"taskboard/domain/ports"
)

// SubjectPrefix is the root of the task event subject space, e.g.
// tasks.created, tasks.due.
const SubjectPrefix = "tasks."

// EventPublisher publishes task events as JSON on tasks.<type> subjects.
type EventPublisher struct {
	client *Client
}

func NewEventPublisher(client *Client) *EventPublisher {
	return &EventPublisher{client: client}
}

func (p *EventPublisher) PublishTaskEvent(ctx context.Context, event ports.TaskEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.conn.Publish(SubjectPrefix+event.Type, data)
}
