package messaging

import (
	"context"

	"taskboard/domain/ports"
	"taskboard/pkg/logger"
)

// FanOut forwards each task event to every configured publisher. Individual
// publish failures are logged and do not stop the others; the caller's
// mutation has already committed by the time events go out.
type FanOut struct {
	publishers []ports.TaskEventPublisher
}

func NewFanOut(publishers ...ports.TaskEventPublisher) *FanOut {
	return &FanOut{publishers: publishers}
}

func (f *FanOut) PublishTaskEvent(ctx context.Context, event ports.TaskEvent) error {
	for _, p := range f.publishers {
		if err := p.PublishTaskEvent(ctx, event); err != nil {
			logger.WarnContext(ctx, "Task event publish failed",
				"event", event.Type,
				"task_id", event.ID,
				"error", err,
			)
		}
	}
	return nil
}
