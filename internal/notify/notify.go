// Package notify schedules one-shot local notifications. Notifications are
// keyed by id: scheduling an id that is already pending replaces it, and
// cancelling an unknown id does nothing.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/logging"
)

var ErrPastTrigger = errors.New("notification trigger is not in the future")

type Notification struct {
	ID    string
	Title string
	Body  string
	Data  map[string]string
	At    time.Time
}

// Sink receives notifications when they fire.
type Sink interface {
	Deliver(ctx context.Context, n Notification) error
}

type SinkFunc func(ctx context.Context, n Notification) error

func (f SinkFunc) Deliver(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// LogSink delivers notifications to a logger.
type LogSink struct {
	Log logging.Logger
}

func (s LogSink) Deliver(ctx context.Context, n Notification) error {
	s.Log.Info(ctx, n.Title, "id", n.ID, "body", n.Body, "at", n.At)
	return nil
}
