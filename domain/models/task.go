package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Task struct {
	ID        uuid.UUID      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	DueDate   time.Time      `gorm:"not null" json:"dueDate"`
	Priority  int            `gorm:"not null" json:"priority"`
	Completed bool           `gorm:"not null;default:false" json:"completed"`
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`
	CreatedAt time.Time      `json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}

// Clone returns a deep copy. Store adapters hand out clones so callers can
// never mutate a stored record in place.
func (t *Task) Clone() *Task {
	c := *t
	c.Tags = append(pq.StringArray{}, t.Tags...)
	return &c
}
