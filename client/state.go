// Package client holds the pieces a task list UI needs: a pure state reducer
// mirroring the server's list, an edit buffer for the task being modified,
// and an HTTP client for the task API. The reducer is only ever fed confirmed
// server responses, so a failed request leaves local state untouched.
package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/domain/dto"
)

// State is the client's view of the world: the cached task list plus the
// optional edit buffer. It is never the source of truth.
type State struct {
	Tasks   []dto.TaskResponse
	Editing *EditBuffer
}

// EditBuffer snapshots the editable fields of one task in form-friendly
// shapes: a date-only due date and comma-joined tags.
type EditBuffer struct {
	ID       uuid.UUID
	Title    string
	DueDate  string // yyyy-mm-dd
	Priority int
	Tags     string // comma-joined
}

// Events applied to the state. Each corresponds to a confirmed server
// response or a purely local UI transition.
type (
	// ListFetched replaces the whole list with the server's answer.
	ListFetched struct{ Tasks []dto.TaskResponse }
	// TaskCreated appends the stored record the server returned.
	TaskCreated struct{ Task dto.TaskResponse }
	// TaskUpserted swaps the matching entry for the server's updated record
	// (complete and replace responses). List order is not recomputed; only a
	// re-fetch reorders.
	TaskUpserted struct{ Task dto.TaskResponse }
	// TaskDeleted drops the matching entry.
	TaskDeleted struct{ ID uuid.UUID }
	// EditStarted loads a task snapshot into the edit buffer.
	EditStarted struct{ Task dto.TaskResponse }
	// EditCanceled discards the edit buffer without contacting the server.
	EditCanceled struct{}
)

// Apply is the state reducer: a pure function from (state, event) to the next
// state. Unknown events leave the state unchanged.
func Apply(s State, event any) State {
	switch e := event.(type) {
	case ListFetched:
		s.Tasks = append([]dto.TaskResponse(nil), e.Tasks...)

	case TaskCreated:
		s.Tasks = append(append([]dto.TaskResponse(nil), s.Tasks...), e.Task)

	case TaskUpserted:
		tasks := append([]dto.TaskResponse(nil), s.Tasks...)
		for i := range tasks {
			if tasks[i].ID == e.Task.ID {
				tasks[i] = e.Task
				break
			}
		}
		s.Tasks = tasks
		if s.Editing != nil && s.Editing.ID == e.Task.ID {
			s.Editing = nil
		}

	case TaskDeleted:
		tasks := make([]dto.TaskResponse, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			if t.ID != e.ID {
				tasks = append(tasks, t)
			}
		}
		s.Tasks = tasks
		if s.Editing != nil && s.Editing.ID == e.ID {
			s.Editing = nil
		}

	case EditStarted:
		s.Editing = NewEditBuffer(e.Task)

	case EditCanceled:
		s.Editing = nil
	}

	return s
}

// NewEditBuffer snapshots a task into the edit form shape: the due date is
// truncated to its calendar day and tags are joined back into comma text.
func NewEditBuffer(t dto.TaskResponse) *EditBuffer {
	return &EditBuffer{
		ID:       t.ID,
		Title:    t.Title,
		DueDate:  t.DueDate.Format("2006-01-02"),
		Priority: t.Priority,
		Tags:     strings.Join(t.Tags, ","),
	}
}

// ParseDueDate validates form input locally, before any network call. It
// accepts a calendar date (interpreted as UTC midnight) or a full RFC 3339
// timestamp.
func ParseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid due date %q", raw)
}

// SplitTags turns comma text back into a tag list. No trimming, matching the
// server's untrimmed filter semantics; empty input means no tags.
func SplitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}

// ToReplaceRequest validates the buffer and builds the PUT body. A bad due
// date is rejected here and never reaches the server.
func (b *EditBuffer) ToReplaceRequest() (*dto.ReplaceTaskRequest, error) {
	due, err := ParseDueDate(b.DueDate)
	if err != nil {
		return nil, err
	}
	priority := b.Priority
	return &dto.ReplaceTaskRequest{
		Title:    b.Title,
		DueDate:  due.Format(time.RFC3339),
		Priority: &priority,
		Tags:     SplitTags(b.Tags),
	}, nil
}
