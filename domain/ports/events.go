package ports

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/models"
)

// Task event types published on mutations and by the due-soon sweep.
const (
	EventTaskCreated   = "created"
	EventTaskCompleted = "completed"
	EventTaskReplaced  = "replaced"
	EventTaskDeleted   = "deleted"
	EventTaskDue       = "due"
)

type TaskEvent struct {
	Type string       `json:"type"`
	ID   uuid.UUID    `json:"id"`
	Task *models.Task `json:"task,omitempty"`
}

// TaskEventPublisher fans task lifecycle events out to interested parties
// (NATS subjects, connected WebSocket clients). Publishing is best-effort:
// a failed publish never fails the mutation that triggered it.
type TaskEventPublisher interface {
	PublishTaskEvent(ctx context.Context, event TaskEvent) error
}
