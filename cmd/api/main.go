package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"taskboard/interfaces/api/handlers"
	"taskboard/interfaces/api/middleware"
	"taskboard/interfaces/api/routes"
	"taskboard/pkg/di"
	"taskboard/pkg/logger"
)

func main() {
	container := di.NewContainer()
	if err := container.Initialize(); err != nil {
		panic("failed to initialize container: " + err.Error())
	}

	setupGracefulShutdown(container)

	app := fiber.New(fiber.Config{
		AppName:      container.Config.App.Name,
		ErrorHandler: middleware.ErrorHandler(),
	})

	// Order matters: request id first so the logger can pick it up.
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware())

	h := handlers.NewHandlers(&handlers.Services{
		TaskService: container.TaskService,
	})
	routes.SetupRoutes(app, h, container.Hub)

	port := container.Config.App.Port
	logger.Info("Server starting", "port", port, "env", container.Config.App.Env)

	if err := app.Listen(":" + port); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Shutting down")
		if err := container.Cleanup(); err != nil {
			logger.Error("Cleanup failed", "error", err)
		}
		os.Exit(0)
	}()
}
