// Package scheduler runs the periodic housekeeping jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

type roomSweeper interface {
	SweepIdle(ctx context.Context, before time.Time) (int, error)
}

// RoomSweeper removes rooms nobody touched for the idle timeout.
type RoomSweeper struct {
	logger      *slog.Logger
	rooms       roomSweeper
	idleTimeout time.Duration
	interval    time.Duration
	now         func() time.Time

	scheduler gocron.Scheduler
}

func NewRoomSweeper(logger *slog.Logger, rooms roomSweeper, idleTimeout, interval time.Duration) *RoomSweeper {
	return &RoomSweeper{
		logger:      logger.With("component", "room_sweeper"),
		rooms:       rooms,
		idleTimeout: idleTimeout,
		interval:    interval,
		now:         time.Now,
	}
}

// Start schedules the sweep every interval until ctx is done or Stop is called.
func (that *RoomSweeper) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(that.interval),
		gocron.NewTask(func() {
			that.Sweep(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule room sweep: %w", err)
	}

	that.scheduler = sched
	sched.Start()

	that.logger.Info("room sweeper started", "interval", that.interval, "idle_timeout", that.idleTimeout)

	return nil
}

func (that *RoomSweeper) Stop() error {
	if that.scheduler == nil {
		return nil
	}

	if err := that.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}

	return nil
}

// Sweep runs one pass and returns the number of removed rooms.
func (that *RoomSweeper) Sweep(ctx context.Context) int {
	log := that.logger.With("method", "Sweep")

	removed, err := that.rooms.SweepIdle(ctx, that.now().Add(-that.idleTimeout))
	if err != nil {
		log.Error("failed to sweep idle rooms", "error", err)
		return 0
	}

	if removed > 0 {
		log.Info("idle rooms removed", "count", removed)
	}

	return removed
}
