package client

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"taskboard/domain/dto"
)

func task(title string, priority int) dto.TaskResponse {
	return dto.TaskResponse{
		ID:       uuid.New(),
		Title:    title,
		DueDate:  time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		Priority: priority,
		Tags:     []string{"home", "urgent"},
	}
}

func TestApply_ListFetchedReplacesWholesale(t *testing.T) {
	s := Apply(State{}, ListFetched{Tasks: []dto.TaskResponse{task("stale", 1)}})
	fresh := []dto.TaskResponse{task("a", 1), task("b", 2)}

	s = Apply(s, ListFetched{Tasks: fresh})

	if len(s.Tasks) != 2 || s.Tasks[0].Title != "a" || s.Tasks[1].Title != "b" {
		t.Errorf("Tasks = %+v, want the fresh list", s.Tasks)
	}
}

func TestApply_TaskCreatedAppends(t *testing.T) {
	s := Apply(State{}, ListFetched{Tasks: []dto.TaskResponse{task("first", 1)}})

	s = Apply(s, TaskCreated{Task: task("second", 2)})

	if len(s.Tasks) != 2 || s.Tasks[1].Title != "second" {
		t.Errorf("Tasks = %+v, want second appended", s.Tasks)
	}
}

func TestApply_TaskUpsertedReplacesInPlace(t *testing.T) {
	a, b, c := task("a", 1), task("b", 2), task("c", 3)
	s := Apply(State{}, ListFetched{Tasks: []dto.TaskResponse{a, b, c}})

	updated := b
	updated.Completed = true
	updated.Title = "b done"
	s = Apply(s, TaskUpserted{Task: updated})

	if s.Tasks[1].Title != "b done" || !s.Tasks[1].Completed {
		t.Errorf("Tasks[1] = %+v, want the updated record", s.Tasks[1])
	}
	// Position is preserved; only a re-fetch reorders.
	if s.Tasks[0].ID != a.ID || s.Tasks[2].ID != c.ID {
		t.Error("upsert reordered the list")
	}
}

func TestApply_TaskDeletedRemoves(t *testing.T) {
	a, b := task("a", 1), task("b", 2)
	s := Apply(State{}, ListFetched{Tasks: []dto.TaskResponse{a, b}})

	s = Apply(s, TaskDeleted{ID: a.ID})

	if len(s.Tasks) != 1 || s.Tasks[0].ID != b.ID {
		t.Errorf("Tasks = %+v, want only b", s.Tasks)
	}
}

func TestApply_EditLifecycle(t *testing.T) {
	target := task("rewrite notes", 2)
	s := Apply(State{}, ListFetched{Tasks: []dto.TaskResponse{target}})

	s = Apply(s, EditStarted{Task: target})
	if s.Editing == nil {
		t.Fatal("EditStarted should populate the buffer")
	}
	if s.Editing.DueDate != "2024-03-15" {
		t.Errorf("buffer DueDate = %q, want the calendar day", s.Editing.DueDate)
	}
	if s.Editing.Tags != "home,urgent" {
		t.Errorf("buffer Tags = %q, want comma-joined", s.Editing.Tags)
	}

	s = Apply(s, EditCanceled{})
	if s.Editing != nil {
		t.Error("EditCanceled should discard the buffer")
	}
}

func TestApply_UpsertClearsMatchingEdit(t *testing.T) {
	target := task("in flight", 1)
	other := task("other", 2)
	s := Apply(State{}, ListFetched{Tasks: []dto.TaskResponse{target, other}})
	s = Apply(s, EditStarted{Task: target})

	// A confirmed update to a different task leaves the buffer alone.
	s = Apply(s, TaskUpserted{Task: other})
	if s.Editing == nil {
		t.Fatal("unrelated upsert should not clear the buffer")
	}

	s = Apply(s, TaskUpserted{Task: target})
	if s.Editing != nil {
		t.Error("upsert of the edited task should clear the buffer")
	}
}

func TestApply_DeleteClearsMatchingEdit(t *testing.T) {
	target := task("doomed", 1)
	s := Apply(State{}, ListFetched{Tasks: []dto.TaskResponse{target}})
	s = Apply(s, EditStarted{Task: target})

	s = Apply(s, TaskDeleted{ID: target.ID})

	if s.Editing != nil {
		t.Error("deleting the edited task should clear the buffer")
	}
}

func TestApply_IsPure(t *testing.T) {
	original := []dto.TaskResponse{task("a", 1), task("b", 2)}
	before := State{Tasks: original}

	next := Apply(before, TaskDeleted{ID: original[0].ID})
	_ = Apply(before, TaskCreated{Task: task("c", 3)})

	if len(before.Tasks) != 2 || before.Tasks[0].Title != "a" {
		t.Errorf("input state mutated: %+v", before.Tasks)
	}
	if len(next.Tasks) != 1 {
		t.Errorf("next state = %+v, want a without the deleted entry", next.Tasks)
	}
}

func TestApply_UnknownEventIsNoOp(t *testing.T) {
	s := Apply(State{}, ListFetched{Tasks: []dto.TaskResponse{task("a", 1)}})

	next := Apply(s, "unexpected")

	if len(next.Tasks) != 1 || next.Editing != nil {
		t.Errorf("unknown event changed state: %+v", next)
	}
}

func TestParseDueDate(t *testing.T) {
	day, err := ParseDueDate("2024-01-01")
	if err != nil {
		t.Fatalf("ParseDueDate rejected a calendar date: %v", err)
	}
	if !day.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("calendar date = %v, want UTC midnight", day)
	}

	ts, err := ParseDueDate("2024-01-01T15:04:05Z")
	if err != nil {
		t.Fatalf("ParseDueDate rejected an RFC 3339 timestamp: %v", err)
	}
	if ts.Hour() != 15 {
		t.Errorf("timestamp = %v, want the full instant kept", ts)
	}

	for _, bad := range []string{"", "tomorrow", "01/02/2024"} {
		if _, err := ParseDueDate(bad); err == nil {
			t.Errorf("ParseDueDate accepted %q", bad)
		}
	}
}

func TestSplitTags(t *testing.T) {
	if got := SplitTags(""); got == nil || len(got) != 0 {
		t.Errorf("SplitTags(\"\") = %#v, want empty non-nil", got)
	}
	got := SplitTags("a, b,")
	want := []string{"a", " b", ""}
	if len(got) != len(want) {
		t.Fatalf("SplitTags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitTags[%d] = %q, want %q (no trimming)", i, got[i], want[i])
		}
	}
}

func TestToReplaceRequest(t *testing.T) {
	buf := &EditBuffer{
		ID:       uuid.New(),
		Title:    "edited",
		DueDate:  "2024-05-06",
		Priority: 3,
		Tags:     "x,y",
	}

	req, err := buf.ToReplaceRequest()
	if err != nil {
		t.Fatalf("ToReplaceRequest failed: %v", err)
	}
	if req.Title != "edited" || req.DueDate != "2024-05-06T00:00:00Z" {
		t.Errorf("request = %+v", req)
	}
	if req.Priority == nil || *req.Priority != 3 {
		t.Error("priority not carried through")
	}
	if len(req.Tags) != 2 {
		t.Errorf("tags = %v, want [x y]", req.Tags)
	}

	buf.DueDate = "someday"
	if _, err := buf.ToReplaceRequest(); err == nil {
		t.Error("a bad due date should be rejected locally")
	}
}
