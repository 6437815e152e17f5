package services

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/query"
)

// ValidationError reports a request that is missing a required field or
// carries a value the schema rejects. Handlers surface it as 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error)
	List(ctx context.Context, params query.Params) ([]*models.Task, error)
	// Complete sets the completed flag. It is idempotent: completing an
	// already-completed task succeeds without another write.
	Complete(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// Replace overwrites title, dueDate, priority and tags. The completed
	// flag and id are untouched.
	Replace(ctx context.Context, id uuid.UUID, req *dto.ReplaceTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
