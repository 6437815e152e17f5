package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskboard/domain/dto"
)

// API talks to the task service over HTTP.
type API struct {
	baseURL string
}

func NewAPI(baseURL string) *API {
	return &API{baseURL: baseURL}
}

// APIError is a non-2xx answer, carrying the server's {message} payload.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// ListQuery mirrors the GET /tasks parameters. Empty fields are omitted.
type ListQuery struct {
	SortBy           string
	FilterByPriority string
	FilterByDate     string
	Tags             string
}

func (q ListQuery) encode() string {
	values := url.Values{}
	if q.SortBy != "" {
		values.Set("sortBy", q.SortBy)
	}
	if q.FilterByPriority != "" {
		values.Set("filterByPriority", q.FilterByPriority)
	}
	if q.FilterByDate != "" {
		values.Set("filterByDate", q.FilterByDate)
	}
	if q.Tags != "" {
		values.Set("tags", q.Tags)
	}
	return values.Encode()
}

func (a *API) ListTasks(q ListQuery) ([]dto.TaskResponse, error) {
	agent := fiber.Get(a.baseURL + "/tasks")
	if qs := q.encode(); qs != "" {
		agent.QueryString(qs)
	}

	// Fetch raw bytes first: on a non-200 the body is a {message} payload,
	// not a task array, and must reach responseError intact.
	code, body, errs := agent.Bytes()
	if err := responseError(code, body, errs, fiber.StatusOK); err != nil {
		return nil, err
	}

	var tasks []dto.TaskResponse
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (a *API) CreateTask(req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	agent := fiber.Post(a.baseURL + "/tasks").JSON(req)

	var task dto.TaskResponse
	code, body, errs := agent.Struct(&task)
	if err := responseError(code, body, errs, fiber.StatusCreated); err != nil {
		return nil, err
	}
	return &task, nil
}

func (a *API) CompleteTask(id uuid.UUID) (*dto.TaskResponse, error) {
	agent := fiber.Patch(a.baseURL + "/tasks/" + id.String())

	var task dto.TaskResponse
	code, body, errs := agent.Struct(&task)
	if err := responseError(code, body, errs, fiber.StatusOK); err != nil {
		return nil, err
	}
	return &task, nil
}

func (a *API) ReplaceTask(id uuid.UUID, req *dto.ReplaceTaskRequest) (*dto.TaskResponse, error) {
	agent := fiber.Put(a.baseURL + "/tasks/" + id.String()).JSON(req)

	var task dto.TaskResponse
	code, body, errs := agent.Struct(&task)
	if err := responseError(code, body, errs, fiber.StatusOK); err != nil {
		return nil, err
	}
	return &task, nil
}

func (a *API) DeleteTask(id uuid.UUID) error {
	code, body, errs := fiber.Delete(a.baseURL + "/tasks/" + id.String()).Bytes()
	return responseError(code, body, errs, fiber.StatusNoContent)
}

func responseError(code int, body []byte, errs []error, want int) error {
	if len(errs) > 0 {
		return errs[0]
	}
	if code == want {
		return nil
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		payload.Message = "request failed"
	}
	return &APIError{Status: code, Message: payload.Message}
}
