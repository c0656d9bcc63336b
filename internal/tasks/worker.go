package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler processes one task payload. Errors are logged, never returned to the producer.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Pool runs a fixed number of workers that pull from a Queue.
type Pool struct {
	queue    Queue
	workers  int
	log      *zap.Logger
	mu       sync.RWMutex
	handlers map[string]Handler

	retryDelay time.Duration
}

func NewPool(queue Queue, workers int, log *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		queue:      queue,
		workers:    workers,
		log:        log.Named("worker"),
		handlers:   make(map[string]Handler),
		retryDelay: time.Second,
	}
}

func (p *Pool) Register(name string, h Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[name] = h
}

// Run blocks until ctx is cancelled or the queue is closed.
func (p *Pool) Run(ctx context.Context) error {
	p.log.Info("worker pool started", zap.Int("workers", p.workers))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.workers; i++ {
		id := i
		g.Go(func() error {
			p.loop(gctx, id)
			return nil
		})
	}
	err := g.Wait()

	p.log.Info("worker pool stopped")
	return err
}

func (p *Pool) loop(ctx context.Context, id int) {
	log := p.log.With(zap.Int("worker_id", id))
	for {
		t, err := p.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) || ctx.Err() != nil {
				return
			}
			log.Warn("dequeue failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.retryDelay):
			}
			continue
		}
		p.Process(ctx, t)
	}
}

// Process runs the handler registered for t, recovering from panics.
func (p *Pool) Process(ctx context.Context, t Task) {
	p.mu.RLock()
	h, ok := p.handlers[t.Name]
	p.mu.RUnlock()
	if !ok {
		p.log.Warn("no handler for task", zap.String("task", t.Name))
		return
	}

	start := time.Now()
	err := safeCall(ctx, h, t.Payload)
	fields := []zap.Field{
		zap.String("task", t.Name),
		zap.Duration("took", time.Since(start)),
		zap.Duration("waited", start.Sub(t.EnqueuedAt)),
	}
	if err != nil {
		p.log.Error("task failed", append(fields, zap.Error(err))...)
		return
	}
	p.log.Debug("task done", fields...)
}

func safeCall(ctx context.Context, h Handler, payload json.RawMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return h(ctx, payload)
}
