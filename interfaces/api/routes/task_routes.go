package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/interfaces/api/handlers"
)

func SetupTaskRoutes(app *fiber.App, h *handlers.Handlers) {
	tasks := app.Group("/tasks")
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Get("/", h.TaskHandler.ListTasks)
	tasks.Patch("/:id", h.TaskHandler.CompleteTask)
	tasks.Put("/:id", h.TaskHandler.ReplaceTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
}
