package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/domain/query"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/pkg/logger"
)

const listCachePrefix = "tasks:list?"

type TaskServiceImpl struct {
	repo     repositories.TaskRepository
	cache    ports.ListCache // nil disables list caching
	cacheTTL time.Duration
	events   ports.TaskEventPublisher // nil disables event publishing
}

func NewTaskService(repo repositories.TaskRepository, cache ports.ListCache, cacheTTL time.Duration, events ports.TaskEventPublisher) services.TaskService {
	return &TaskServiceImpl{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		events:   events,
	}
}

func (s *TaskServiceImpl) Create(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error) {
	if req.Title == "" {
		return nil, &services.ValidationError{Message: "title is required"}
	}
	if req.Priority == nil {
		return nil, &services.ValidationError{Message: "priority is required"}
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:        uuid.New(),
		Title:     req.Title,
		DueDate:   due,
		Priority:  *req.Priority,
		Completed: false,
		Tags:      normalizeTags(req.Tags),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "error", err)
		return nil, fmt.Errorf("create task: %w", err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "title", task.Title)
	s.invalidateLists(ctx)
	s.publish(ctx, ports.EventTaskCreated, task)

	return task, nil
}

func (s *TaskServiceImpl) List(ctx context.Context, params query.Params) ([]*models.Task, error) {
	if s.cache == nil {
		return s.find(ctx, params)
	}

	key := listCachePrefix + params.CacheKey()

	var tasks []*models.Task
	err := s.cache.GetOrSet(ctx, key, &tasks, s.cacheTTL, func() (any, error) {
		return s.find(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) find(ctx context.Context, params query.Params) ([]*models.Task, error) {
	tasks, err := s.repo.Find(ctx, params)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "error", err)
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskServiceImpl) Complete(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.WarnContext(ctx, "Task not found for completion", "task_id", id)
		return nil, fmt.Errorf("complete task: %w", err)
	}

	// Already completed: a repeat PATCH is a no-op success, not an error.
	if task.Completed {
		logger.DebugContext(ctx, "Task already completed", "task_id", id)
		return task, nil
	}

	task.Completed = true
	if err := s.repo.Update(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to complete task", "task_id", id, "error", err)
		return nil, fmt.Errorf("complete task: %w", err)
	}

	logger.InfoContext(ctx, "Task completed", "task_id", id)
	s.invalidateLists(ctx)
	s.publish(ctx, ports.EventTaskCompleted, task)

	return task, nil
}

func (s *TaskServiceImpl) Replace(ctx context.Context, id uuid.UUID, req *dto.ReplaceTaskRequest) (*models.Task, error) {
	if req.Title == "" {
		return nil, &services.ValidationError{Message: "title is required"}
	}
	if req.Priority == nil {
		return nil, &services.ValidationError{Message: "priority is required"}
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.WarnContext(ctx, "Task not found for replace", "task_id", id)
		return nil, fmt.Errorf("replace task: %w", err)
	}

	// Overwrite the four editable fields; id and completed stay as stored.
	task.Title = req.Title
	task.DueDate = due
	task.Priority = *req.Priority
	task.Tags = normalizeTags(req.Tags)

	if err := s.repo.Update(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to replace task", "task_id", id, "error", err)
		return nil, fmt.Errorf("replace task: %w", err)
	}

	logger.InfoContext(ctx, "Task replaced", "task_id", id)
	s.invalidateLists(ctx)
	s.publish(ctx, ports.EventTaskReplaced, task)

	return task, nil
}

func (s *TaskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.WarnContext(ctx, "Task deletion failed", "task_id", id, "error", err)
		return fmt.Errorf("delete task: %w", err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", id)
	s.invalidateLists(ctx)
	s.publishDeleted(ctx, id)

	return nil
}

// normalizeTags keeps tags exactly as given (no trim, no dedup) but turns an
// absent list into an empty one so responses always carry a JSON array.
func normalizeTags(tags []string) pq.StringArray {
	if tags == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(tags)
}

func parseDueDate(raw string) (time.Time, error) {
	due, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &services.ValidationError{
			Message: fmt.Sprintf("dueDate %q is not an RFC 3339 timestamp", raw),
		}
	}
	return due, nil
}

func (s *TaskServiceImpl) invalidateLists(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.DeletePattern(ctx, listCachePrefix+"*"); err != nil {
		logger.WarnContext(ctx, "Task list cache invalidation failed", "error", err)
	}
}

func (s *TaskServiceImpl) publish(ctx context.Context, eventType string, task *models.Task) {
	if s.events == nil {
		return
	}
	err := s.events.PublishTaskEvent(ctx, ports.TaskEvent{
		Type: eventType,
		ID:   task.ID,
		Task: task,
	})
	if err != nil {
		logger.DebugContext(ctx, "Task event publish failed", "type", eventType, "task_id", task.ID, "error", err)
	}
}

func (s *TaskServiceImpl) publishDeleted(ctx context.Context, id uuid.UUID) {
	if s.events == nil {
		return
	}
	err := s.events.PublishTaskEvent(ctx, ports.TaskEvent{
		Type: ports.EventTaskDeleted,
		ID:   id,
	})
	if err != nil {
		logger.DebugContext(ctx, "Task event publish failed", "type", ports.EventTaskDeleted, "task_id", id, "error", err)
	}
}
