// Package query interprets the list endpoint's filter and sort parameters
// into a selection predicate and an ordering over task records. Both store
// adapters consume the same Params: the in-memory store applies Matches and
// Sort directly, the Postgres store compiles them to WHERE/ORDER clauses.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"taskboard/domain/models"
)

const (
	SortByPriority = "priority"
	SortByDueDate  = "dueDate"
)

// Params is the parsed query. The zero value selects every task in the
// store's natural (insertion) order.
type Params struct {
	// SortBy orders ascending by priority or dueDate. Any other value,
	// including empty, keeps natural order.
	SortBy string

	// Priority, when set, selects tasks with exactly this priority.
	Priority *int

	// DueDate, when set, selects tasks whose due date equals this instant.
	// Matching is full-timestamp equality: callers wanting day-level matches
	// must pass a day-aligned timestamp.
	DueDate *time.Time

	// Tags is a set-containment requirement: a task matches when every entry
	// is present in its tag list. Entries come from an untrimmed comma split,
	// so an empty segment is a literal empty-tag requirement.
	Tags []string
}

// ParseError reports a filter value that could not be coerced.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s value %q", e.Field, e.Value)
}

// Parse interprets raw query string values. Empty strings mean "absent".
func Parse(sortBy, priority, dueDate, tags string) (Params, error) {
	p := Params{SortBy: sortBy}

	if priority != "" {
		n, err := strconv.Atoi(priority)
		if err != nil {
			return Params{}, &ParseError{Field: "filterByPriority", Value: priority}
		}
		p.Priority = &n
	}

	if dueDate != "" {
		t, err := time.Parse(time.RFC3339, dueDate)
		if err != nil {
			return Params{}, &ParseError{Field: "filterByDate", Value: dueDate}
		}
		p.DueDate = &t
	}

	if tags != "" {
		p.Tags = strings.Split(tags, ",")
	}

	return p, nil
}

// Matches reports whether the task satisfies every present filter.
func (p Params) Matches(t *models.Task) bool {
	if p.Priority != nil && t.Priority != *p.Priority {
		return false
	}
	if p.DueDate != nil && !t.DueDate.Equal(*p.DueDate) {
		return false
	}
	for _, tag := range p.Tags {
		if !hasTag(t, tag) {
			return false
		}
	}
	return true
}

// Less is the ordering comparator for the requested sort. It reports false
// for every pair when no recognized sort is requested.
func (p Params) Less(a, b *models.Task) bool {
	switch p.SortBy {
	case SortByPriority:
		return a.Priority < b.Priority
	case SortByDueDate:
		return a.DueDate.Before(b.DueDate)
	default:
		return false
	}
}

// Sorts reports whether the params request a recognized ordering.
func (p Params) Sorts() bool {
	return p.SortBy == SortByPriority || p.SortBy == SortByDueDate
}

// Sort orders tasks in place. Equal elements keep their incoming order.
func (p Params) Sort(tasks []*models.Task) {
	if !p.Sorts() {
		return
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return p.Less(tasks[i], tasks[j])
	})
}

// CacheKey derives a deterministic cache key suffix for this query.
func (p Params) CacheKey() string {
	var b strings.Builder
	b.WriteString("sort=")
	b.WriteString(p.SortBy)
	if p.Priority != nil {
		fmt.Fprintf(&b, "&priority=%d", *p.Priority)
	}
	if p.DueDate != nil {
		b.WriteString("&due=")
		b.WriteString(p.DueDate.UTC().Format(time.RFC3339Nano))
	}
	if p.Tags != nil {
		b.WriteString("&tags=")
		b.WriteString(strings.Join(p.Tags, ","))
	}
	return b.String()
}

func hasTag(t *models.Task, tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}
