package handlers

import (
	"taskboard/domain/services"
)

// Services bundles everything handlers depend on.
type Services struct {
	TaskService services.TaskService
}

// Handlers holds every HTTP handler group.
type Handlers struct {
	TaskHandler *TaskHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		TaskHandler: NewTaskHandler(services.TaskService),
	}
}
