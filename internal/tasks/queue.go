package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	TaskResizeImage         = "resize_image"
	TaskBookingTodayCheckin = "booking_today_checkin"
)

var ErrQueueClosed = errors.New("task queue closed")

// Task is the unit sent through a Queue. Payload is handler-specific JSON.
type Task struct {
	Name       string          `json:"name"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

func NewTask(name string, payload any) (Task, error) {
	t := Task{Name: name, EnqueuedAt: time.Now().UTC()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Task{}, fmt.Errorf("encode %s payload: %w", name, err)
		}
		t.Payload = raw
	}
	return t, nil
}

// Enqueuer is the producer side used by request handlers.
type Enqueuer interface {
	Enqueue(ctx context.Context, t Task) error
}

// Queue is a FIFO transport between producers and the worker pool.
type Queue interface {
	Enqueuer
	// Dequeue blocks until a task is available or ctx is done.
	Dequeue(ctx context.Context) (Task, error)
	Close() error
}
