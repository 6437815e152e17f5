package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	wshub "taskboard/infrastructure/websocket"
)

// SetupWebSocketRoutes exposes the task event stream at /ws.
func SetupWebSocketRoutes(app *fiber.App, hub *wshub.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws", websocket.New(hub.Handler()))
}
