package di

import (
	"fmt"

	"gorm.io/gorm"

	"taskboard/application/serviceimpl"
	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/infrastructure/memstore"
	"taskboard/infrastructure/messaging"
	natspkg "taskboard/infrastructure/nats"
	"taskboard/infrastructure/postgres"
	redispkg "taskboard/infrastructure/redis"
	wshub "taskboard/infrastructure/websocket"
	"taskboard/pkg/config"
	"taskboard/pkg/logger"
	"taskboard/pkg/scheduler"
)

// Container wires configuration, infrastructure and services together.
// Redis and NATS degrade gracefully: when unconfigured or unreachable the
// service runs without cache or external events.
type Container struct {
	Config *config.Config

	DB          *gorm.DB // nil when the memory store is selected
	RedisClient *redispkg.Client
	NATSClient  *natspkg.Client
	Hub         *wshub.Hub

	TaskRepository repositories.TaskRepository
	EventPublisher ports.TaskEventPublisher
	TaskService    services.TaskService
	DueSweeper     *scheduler.DueSweeper
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}
	if err := c.initLogger(); err != nil {
		return err
	}
	if err := c.initStore(); err != nil {
		return err
	}
	c.initCache()
	c.initEvents()
	c.initServices()
	return c.initScheduler()
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	if err := logger.Init(logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}); err != nil {
		return err
	}
	logger.Info("Logger initialized", "level", c.Config.Log.Level, "format", c.Config.Log.Format)
	return nil
}

func (c *Container) initStore() error {
	switch c.Config.Store.Type {
	case "memory":
		c.TaskRepository = memstore.NewTaskRepository()
		logger.Info("Task store initialized", "type", "memory")
		return nil

	case "postgres", "":
		db, err := postgres.NewDatabase(postgres.DatabaseConfig{
			Host:     c.Config.Database.Host,
			Port:     c.Config.Database.Port,
			User:     c.Config.Database.User,
			Password: c.Config.Database.Password,
			DBName:   c.Config.Database.DBName,
			SSLMode:  c.Config.Database.SSLMode,
		})
		if err != nil {
			return err
		}
		if err := postgres.Migrate(db); err != nil {
			return err
		}
		c.DB = db
		c.TaskRepository = postgres.NewTaskRepository(db)
		logger.Info("Task store initialized", "type", "postgres",
			"host", c.Config.Database.Host, "db", c.Config.Database.DBName)
		return nil

	default:
		return fmt.Errorf("unknown store type %q", c.Config.Store.Type)
	}
}

func (c *Container) initCache() {
	if c.Config.Redis.URL == "" {
		return
	}
	client, err := redispkg.NewClient(redispkg.Config{
		URL:      c.Config.Redis.URL,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, list cache disabled", "error", err)
		return
	}
	c.RedisClient = client
	logger.Info("Redis list cache initialized", "ttl", c.Config.Redis.ListTTL.String())
}

func (c *Container) initEvents() {
	var publishers []ports.TaskEventPublisher

	c.Hub = wshub.NewHub()
	publishers = append(publishers, c.Hub)

	if c.Config.NATS.URL != "" {
		client, err := natspkg.NewClient(natspkg.ClientConfig{
			URL:  c.Config.NATS.URL,
			Name: c.Config.App.Name,
		})
		if err != nil {
			logger.Warn("NATS unavailable, external events disabled", "error", err)
		} else {
			c.NATSClient = client
			publishers = append(publishers, natspkg.NewEventPublisher(client))
			logger.Info("NATS event publisher initialized", "url", c.Config.NATS.URL)
		}
	}

	c.EventPublisher = messaging.NewFanOut(publishers...)
}

func (c *Container) initServices() {
	// A typed nil *Client must not become a non-nil ListCache.
	var cache ports.ListCache
	if c.RedisClient != nil {
		cache = c.RedisClient
	}

	c.TaskService = serviceimpl.NewTaskService(
		c.TaskRepository,
		cache,
		c.Config.Redis.ListTTL,
		c.EventPublisher,
	)
	logger.Info("Task service initialized")
}

func (c *Container) initScheduler() error {
	if !c.Config.Scheduler.Enabled {
		return nil
	}
	c.DueSweeper = scheduler.NewDueSweeper(c.TaskRepository, c.EventPublisher, c.Config.Scheduler.Window)
	return c.DueSweeper.Start(c.Config.Scheduler.Interval)
}

// Cleanup releases external connections in reverse construction order.
func (c *Container) Cleanup() error {
	if c.DueSweeper != nil {
		c.DueSweeper.Stop()
	}
	if c.NATSClient != nil {
		c.NATSClient.Close()
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Redis close failed", "error", err)
		}
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
