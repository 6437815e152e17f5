package dto

import (
	"time"

	"github.com/google/uuid"

	"taskboard/domain/models"
)

// CreateTaskRequest is the POST /tasks body. DueDate stays a string so the
// service can coerce it explicitly and answer with a field-level message
// instead of a generic body-parse failure. Priority is a pointer because 0 is
// a legal priority and must be distinguishable from "absent".
type CreateTaskRequest struct {
	Title    string   `json:"title" validate:"required"`
	DueDate  string   `json:"dueDate" validate:"required"`
	Priority *int     `json:"priority" validate:"required"`
	Tags     []string `json:"tags"`
}

// ReplaceTaskRequest is the PUT /tasks/:id body. All four fields are
// required; the completed flag is deliberately not part of it.
type ReplaceTaskRequest struct {
	Title    string   `json:"title" validate:"required"`
	DueDate  string   `json:"dueDate" validate:"required"`
	Priority *int     `json:"priority" validate:"required"`
	Tags     []string `json:"tags"`
}

// TaskResponse is the wire shape of a task record.
type TaskResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	DueDate   time.Time `json:"dueDate"`
	Priority  int       `json:"priority"`
	Completed bool      `json:"completed"`
	Tags      []string  `json:"tags"`
}

func TaskToTaskResponse(t *models.Task) *TaskResponse {
	tags := make([]string, len(t.Tags))
	copy(tags, t.Tags)
	return &TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		DueDate:   t.DueDate,
		Priority:  t.Priority,
		Completed: t.Completed,
		Tags:      tags,
	}
}

func TasksToTaskResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = *TaskToTaskResponse(t)
	}
	return out
}
