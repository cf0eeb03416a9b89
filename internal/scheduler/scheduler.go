package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/atomic"

	"github.com/MrCamelHub/Trade-in/internal/business"
	"github.com/MrCamelHub/Trade-in/internal/entity"
	"github.com/MrCamelHub/Trade-in/pkg/config"
	"github.com/MrCamelHub/Trade-in/pkg/logger"
)

// JobEnqueuer queue surface the scheduler publishes to
type JobEnqueuer interface {
	Publish(queue string, data []byte, ttl, delay uint32) (string, error)
}

// Scheduler enqueues a non-dry-run sync job on every business-window tick.
// Execution itself happens in the worker; overlapping ticks collapse there.
type Scheduler struct {
	window   Window
	queue    string
	enqueuer JobEnqueuer
	closing  *atomic.Bool
	doneCh   chan struct{}
	logger   logger.Logger

	// now is swappable for tests
	now func() time.Time
}

// New creates a scheduler from config
func New(cfg config.SchedulerConfig, queue string, enqueuer JobEnqueuer, log logger.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load scheduler timezone failed: %w", err)
	}

	return &Scheduler{
		window: Window{
			Location:        loc,
			StartHour:       cfg.StartHour,
			EndHour:         cfg.EndHour,
			IntervalMinutes: cfg.IntervalMinutes,
		},
		queue:    queue,
		enqueuer: enqueuer,
		closing:  atomic.NewBool(false),
		doneCh:   make(chan struct{}),
		logger:   log,
		now:      time.Now,
	}, nil
}

// Start runs the minute ticker until Shutdown
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Infof(ctx, "[Scheduler] started: weekdays %02d:00-%02d:00 every %d min",
		s.window.StartHour, s.window.EndHour, s.window.IntervalMinutes)
	defer close(s.doneCh)

	var lastFired time.Time

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		if s.closing.Load() {
			s.logger.Infof(ctx, "[Scheduler] tick loop exited")
			return
		}

		now := s.now()
		tick := now.In(s.window.Location).Truncate(time.Minute)

		// fire at most once per tick
		if s.window.ShouldFire(now) && !tick.Equal(lastFired) {
			lastFired = tick
			s.fire(ctx, now)
		}

		<-ticker.C
	}
}

// Shutdown stops the ticker loop
func (s *Scheduler) Shutdown() {
	if s.closing.CAS(false, true) {
		<-s.doneCh
		s.logger.Infof(context.Background(), "[Scheduler] shutdown complete")
	}
}

// fire enqueues one scheduled sync job
func (s *Scheduler) fire(ctx context.Context, now time.Time) {
	job := &business.SyncJob{
		DryRun:      false,
		Trigger:     entity.TriggerScheduler,
		RequestedAt: now,
	}

	data, err := job.Encode()
	if err != nil {
		s.logger.Errorf(ctx, "[Scheduler] encode job failed: %v", err)
		return
	}

	// ttl 25 min: a stale tick must not fire long after its window
	jobID, err := s.enqueuer.Publish(s.queue, data, 1500, 0)
	if err != nil {
		s.logger.Errorf(ctx, "[Scheduler] enqueue failed: %v", err)
		return
	}

	s.logger.Infof(ctx, "[Scheduler] sync job enqueued: %s at %s", jobID,
		now.In(s.window.Location).Format("15:04"))
}
