package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskboard/application/serviceimpl"
	"taskboard/domain/dto"
	"taskboard/infrastructure/memstore"
	"taskboard/interfaces/api/middleware"
)

// newTestApp wires the real service over the in-memory store, so these tests
// cover handler, service and store together.
func newTestApp() (*fiber.App, *memstore.TaskRepository) {
	repo := memstore.NewTaskRepository()
	svc := serviceimpl.NewTaskService(repo, nil, 0, nil)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewHandlers(&Services{TaskService: svc})

	tasks := app.Group("/tasks")
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Get("/", h.TaskHandler.ListTasks)
	tasks.Patch("/:id", h.TaskHandler.CompleteTask)
	tasks.Put("/:id", h.TaskHandler.ReplaceTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)

	return app, repo
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func createBody(title string) map[string]any {
	return map[string]any{
		"title":    title,
		"dueDate":  "2024-01-01T00:00:00Z",
		"priority": 2,
		"tags":     []string{"errand"},
	}
}

func TestCreateTask(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, http.MethodPost, "/tasks", createBody("Buy milk"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	task := decode[dto.TaskResponse](t, resp)
	if task.ID == uuid.Nil {
		t.Error("created task should carry an assigned id")
	}
	if task.Completed {
		t.Error("created task should not be completed")
	}
	if len(task.Tags) != 1 || task.Tags[0] != "errand" {
		t.Errorf("tags = %v, want [errand]", task.Tags)
	}
}

func TestCreateTaskMissingFields(t *testing.T) {
	app, repo := newTestApp()

	bodies := []map[string]any{
		{"dueDate": "2024-01-01T00:00:00Z", "priority": 1},
		{"title": "no due", "priority": 1},
		{"title": "no priority", "dueDate": "2024-01-01T00:00:00Z"},
		{"title": "bad due", "dueDate": "soon", "priority": 1},
	}

	for _, body := range bodies {
		resp := doJSON(t, app, http.MethodPost, "/tasks", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d for %v, want 400", resp.StatusCode, body)
		}
		payload := decode[map[string]string](t, resp)
		if payload["message"] == "" {
			t.Errorf("400 body should carry a message, got %v", payload)
		}
	}

	if repo.Len() != 0 {
		t.Errorf("store holds %d tasks after rejected creates, want 0", repo.Len())
	}
}

func TestListTasksFilterByPriority(t *testing.T) {
	app, _ := newTestApp()

	for i, title := range []string{"a", "b", "c"} {
		body := createBody(title)
		body["priority"] = i % 2 // a:0 b:1 c:0
		doJSON(t, app, http.MethodPost, "/tasks", body)
	}

	resp := doJSON(t, app, http.MethodGet, "/tasks?filterByPriority=0", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	tasks := decode[[]dto.TaskResponse](t, resp)
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.Priority != 0 {
			t.Errorf("task %q has priority %d, want 0", task.Title, task.Priority)
		}
	}
}

func TestListTasksSortByPriority(t *testing.T) {
	app, _ := newTestApp()

	for _, p := range []int{3, 1, 2} {
		body := createBody(fmt.Sprintf("p%d", p))
		body["priority"] = p
		doJSON(t, app, http.MethodPost, "/tasks", body)
	}

	resp := doJSON(t, app, http.MethodGet, "/tasks?sortBy=priority", nil)
	tasks := decode[[]dto.TaskResponse](t, resp)
	for i := 1; i < len(tasks); i++ {
		if tasks[i-1].Priority > tasks[i].Priority {
			t.Fatalf("priorities not non-decreasing: %+v", tasks)
		}
	}
}

func TestListTasksTagContainment(t *testing.T) {
	app, _ := newTestApp()

	withTags := func(title string, tags []string) {
		body := createBody(title)
		body["tags"] = tags
		doJSON(t, app, http.MethodPost, "/tasks", body)
	}
	withTags("both", []string{"a", "b", "c"})
	withTags("only-a", []string{"a"})
	withTags("none", []string{})

	resp := doJSON(t, app, http.MethodGet, "/tasks?tags=a,b", nil)
	tasks := decode[[]dto.TaskResponse](t, resp)
	if len(tasks) != 1 || tasks[0].Title != "both" {
		t.Errorf("tags=a,b returned %+v, want just the superset task", tasks)
	}
}

func TestListTasksBadFilter(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, http.MethodGet, "/tasks?filterByPriority=urgent", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCompleteTaskTwice(t *testing.T) {
	app, _ := newTestApp()

	created := decode[dto.TaskResponse](t, doJSON(t, app, http.MethodPost, "/tasks", createBody("finish me")))

	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, http.MethodPatch, "/tasks/"+created.ID.String(), nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("PATCH %d status = %d, want 200", i+1, resp.StatusCode)
		}
		task := decode[dto.TaskResponse](t, resp)
		if !task.Completed {
			t.Fatalf("PATCH %d returned completed=false", i+1)
		}
	}
}

func TestMutationsOnUnknownID(t *testing.T) {
	app, repo := newTestApp()

	doJSON(t, app, http.MethodPost, "/tasks", createBody("survivor"))
	before := repo.Len()

	unknown := uuid.New().String()
	replaceBody := createBody("ignored")

	cases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPatch, "/tasks/" + unknown, nil},
		{http.MethodPut, "/tasks/" + unknown, replaceBody},
		{http.MethodDelete, "/tasks/" + unknown, nil},
		{http.MethodPatch, "/tasks/not-a-uuid", nil},
	}

	for _, tc := range cases {
		resp := doJSON(t, app, tc.method, tc.path, tc.body)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s %s status = %d, want 404", tc.method, tc.path, resp.StatusCode)
		}
	}

	if repo.Len() != before {
		t.Errorf("store size changed from %d to %d on failed mutations", before, repo.Len())
	}
}

func TestReplaceTask(t *testing.T) {
	app, _ := newTestApp()

	created := decode[dto.TaskResponse](t, doJSON(t, app, http.MethodPost, "/tasks", createBody("before")))
	doJSON(t, app, http.MethodPatch, "/tasks/"+created.ID.String(), nil)

	resp := doJSON(t, app, http.MethodPut, "/tasks/"+created.ID.String(), map[string]any{
		"title":    "after",
		"dueDate":  "2024-06-01T08:00:00Z",
		"priority": 9,
		"tags":     []string{"x", "y"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	task := decode[dto.TaskResponse](t, resp)
	if task.ID != created.ID {
		t.Error("replace must not change the id")
	}
	if !task.Completed {
		t.Error("replace must not reset the completed flag")
	}
	if task.Title != "after" || task.Priority != 9 || len(task.Tags) != 2 {
		t.Errorf("replaced task = %+v", task)
	}
}

func TestEndToEndScenario(t *testing.T) {
	app, _ := newTestApp()

	// Create.
	resp := doJSON(t, app, http.MethodPost, "/tasks", map[string]any{
		"title":    "Buy milk",
		"dueDate":  "2024-01-01T00:00:00.000Z",
		"priority": 2,
		"tags":     []string{"errand"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	created := decode[dto.TaskResponse](t, resp)
	if created.Completed {
		t.Fatal("created task should not be completed")
	}

	// Complete.
	resp = doJSON(t, app, http.MethodPatch, "/tasks/"+created.ID.String(), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status = %d, want 200", resp.StatusCode)
	}
	if task := decode[dto.TaskResponse](t, resp); !task.Completed {
		t.Fatal("PATCH should return completed=true")
	}

	// Delete.
	resp = doJSON(t, app, http.MethodDelete, "/tasks/"+created.ID.String(), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	// The list no longer contains the id.
	tasks := decode[[]dto.TaskResponse](t, doJSON(t, app, http.MethodGet, "/tasks", nil))
	for _, task := range tasks {
		if task.ID == created.ID {
			t.Fatal("deleted task still present in list")
		}
	}
}
