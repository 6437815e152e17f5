package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"taskboard/domain/models"
	"taskboard/domain/query"
	"taskboard/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Find compiles the query params to SQL. Tag containment uses the Postgres
// array operator, so it matches the interpreter's set-containment semantics
// including literal empty-string tags. Natural order is insertion order
// (created_at, id as tiebreaker).
func (r *TaskRepositoryImpl) Find(ctx context.Context, params query.Params) ([]*models.Task, error) {
	q := r.db.WithContext(ctx).Model(&models.Task{})

	if params.Priority != nil {
		q = q.Where("priority = ?", *params.Priority)
	}
	if params.DueDate != nil {
		q = q.Where("due_date = ?", *params.DueDate)
	}
	if len(params.Tags) > 0 {
		q = q.Where("tags @> ?", pq.Array(params.Tags))
	}

	switch params.SortBy {
	case query.SortByPriority:
		q = q.Order("priority ASC")
	case query.SortByDueDate:
		q = q.Order("due_date ASC")
	default:
		q = q.Order("created_at ASC, id ASC")
	}

	var tasks []*models.Task
	err := q.Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	res := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", task.ID).
		Select("title", "due_date", "priority", "completed", "tags").
		Updates(task)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) ListDueBefore(ctx context.Context, before time.Time) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("completed = false AND due_date <= ?", before).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}
