// Package scheduler runs the periodic due-soon sweep: incomplete tasks whose
// due date falls inside the configured window are announced as tasks.due
// events so downstream consumers can remind whoever cares.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/pkg/logger"
)

type DueSweeper struct {
	repo      repositories.TaskRepository
	publisher ports.TaskEventPublisher
	window    time.Duration
	scheduler *gocron.Scheduler
}

func NewDueSweeper(repo repositories.TaskRepository, publisher ports.TaskEventPublisher, window time.Duration) *DueSweeper {
	return &DueSweeper{
		repo:      repo,
		publisher: publisher,
		window:    window,
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

// Start schedules the sweep at the given interval and runs the scheduler in
// the background.
func (s *DueSweeper) Start(interval time.Duration) error {
	if _, err := s.scheduler.Every(interval).Do(s.Sweep); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	logger.Info("Due-task sweep scheduled", "interval", interval.String(), "window", s.window.String())
	return nil
}

func (s *DueSweeper) Stop() {
	s.scheduler.Stop()
}

// Sweep publishes a tasks.due event for every incomplete task due within the
// window. Errors are logged; the next run retries naturally.
func (s *DueSweeper) Sweep() {
	ctx := context.Background()

	tasks, err := s.repo.ListDueBefore(ctx, time.Now().Add(s.window))
	if err != nil {
		logger.Error("Due-task sweep failed", "error", err)
		return
	}
	if len(tasks) == 0 {
		return
	}

	for _, task := range tasks {
		_ = s.publisher.PublishTaskEvent(ctx, ports.TaskEvent{
			Type: ports.EventTaskDue,
			ID:   task.ID,
			Task: task,
		})
	}
	logger.Info("Due-task sweep published events", "count", len(tasks))
}
