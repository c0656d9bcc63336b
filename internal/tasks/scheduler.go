package tasks

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler enqueues a task on a fixed interval.
type Scheduler struct {
	queue    Enqueuer
	name     string
	interval time.Duration
	log      *zap.Logger
	stopCh   chan struct{}
}

func NewScheduler(queue Enqueuer, name string, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		queue:    queue,
		name:     name,
		interval: interval,
		log:      log.Named("scheduler").With(zap.String("task", name)),
		stopCh:   make(chan struct{}),
	}
}

// Run fires once immediately, then on every tick, until ctx is done or Stop is called.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("schedule started", zap.Duration("interval", s.interval))
	s.fire(ctx)
	for {
		select {
		case <-ticker.C:
			s.fire(ctx)
		case <-s.stopCh:
			s.log.Info("schedule stopped")
			return nil
		case <-ctx.Done():
			s.log.Info("schedule stopped (context done)")
			return nil
		}
	}
}

func (s *Scheduler) Stop() {
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
}

func (s *Scheduler) fire(ctx context.Context) {
	t, err := NewTask(s.name, nil)
	if err != nil {
		s.log.Error("build task", zap.Error(err))
		return
	}
	if err := s.queue.Enqueue(ctx, t); err != nil {
		s.log.Error("enqueue scheduled task", zap.Error(err))
	}
}
