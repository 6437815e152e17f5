package routes

import (
	"github.com/gofiber/fiber/v2"

	wshub "taskboard/infrastructure/websocket"
	"taskboard/interfaces/api/handlers"
)

// SetupRoutes registers every route group. The task API lives at the root
// (not under a version prefix) to match the published contract. The hub may
// be nil when event broadcasting is disabled.
func SetupRoutes(app *fiber.App, h *handlers.Handlers, hub *wshub.Hub) {
	SetupHealthRoutes(app)
	SetupTaskRoutes(app, h)
	if hub != nil {
		SetupWebSocketRoutes(app, hub)
	}
}
