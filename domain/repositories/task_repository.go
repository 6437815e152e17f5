package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"taskboard/domain/models"
	"taskboard/domain/query"
)

// ErrNotFound is returned by every adapter when no task has the given id.
var ErrNotFound = errors.New("task not found")

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// Find applies the query's selection and ordering and returns the result.
	Find(ctx context.Context, params query.Params) ([]*models.Task, error)
	// Update persists the full field set of an existing task as one atomic
	// row write. Returns ErrNotFound if the id is unknown.
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListDueBefore returns incomplete tasks whose due date is at or before
	// the given instant, for the due-soon sweep.
	ListDueBefore(ctx context.Context, before time.Time) ([]*models.Task, error)
}
