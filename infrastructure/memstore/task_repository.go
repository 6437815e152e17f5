// Package memstore is the in-memory task store adapter. It backs tests and
// STORE_TYPE=memory deployments, and applies the query interpreter directly
// instead of compiling it to SQL.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/domain/models"
	"taskboard/domain/query"
	"taskboard/domain/repositories"
)

type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*models.Task
	order []uuid.UUID // insertion order, the store's natural order
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[uuid.UUID]*models.Task),
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	r.tasks[task.ID] = task.Clone()
	r.order = append(r.order, task.ID)
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return task.Clone(), nil
}

func (r *TaskRepository) Find(ctx context.Context, params query.Params) ([]*models.Task, error) {
	r.mu.RLock()
	matched := make([]*models.Task, 0)
	for _, id := range r.order {
		if task, ok := r.tasks[id]; ok && params.Matches(task) {
			matched = append(matched, task.Clone())
		}
	}
	r.mu.RUnlock()

	params.Sort(matched)
	return matched, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[task.ID]
	if !ok {
		return repositories.ErrNotFound
	}

	clone := task.Clone()
	clone.CreatedAt = stored.CreatedAt
	r.tasks[task.ID] = clone
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *TaskRepository) ListDueBefore(ctx context.Context, before time.Time) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	due := make([]*models.Task, 0)
	for _, id := range r.order {
		task := r.tasks[id]
		if !task.Completed && !task.DueDate.After(before) {
			due = append(due, task.Clone())
		}
	}
	return due, nil
}

// Len reports the number of stored tasks. Tests use it for row-count
// invariants.
func (r *TaskRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}
