package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/logging"
	"github.com/robfig/cron/v3"
)

// once fires a single time at the given instant.
type once time.Time

func (o once) Next(t time.Time) time.Time {
	at := time.Time(o)
	if t.Before(at) {
		return at
	}
	return time.Time{}
}

type pending struct {
	entry cron.EntryID
	seq   uint64
	n     Notification
}

// CronScheduler runs each notification as a robfig/cron entry with a
// one-shot schedule. A fired entry removes itself.
type CronScheduler struct {
	cron *cron.Cron
	sink Sink
	log  logging.Logger
	now  func() time.Time

	mu      sync.Mutex
	seq     uint64
	entries map[string]pending
}

func NewCronScheduler(sink Sink, logger logging.Logger) *CronScheduler {
	return &CronScheduler{
		cron:    cron.New(),
		sink:    sink,
		log:     logger.With("component", "notify"),
		now:     time.Now,
		entries: make(map[string]pending),
	}
}

func (s *CronScheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running deliveries to finish.
// Pending notifications stay registered and fire after a later Start.
func (s *CronScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Schedule registers n to fire at n.At, replacing any pending notification
// with the same id.
func (s *CronScheduler) Schedule(_ context.Context, n Notification) error {
	if n.ID == "" {
		return fmt.Errorf("schedule notification: empty id")
	}
	if !n.At.After(s.now()) {
		return fmt.Errorf("schedule notification %s: %w", n.ID, ErrPastTrigger)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.entries[n.ID]; ok {
		s.cron.Remove(prev.entry)
	}

	s.seq++
	seq := s.seq
	entry := s.cron.Schedule(once(n.At), cron.FuncJob(func() { s.fire(n.ID, seq) }))
	s.entries[n.ID] = pending{entry: entry, seq: seq, n: n}

	s.log.Debug(context.Background(), "notification scheduled", "id", n.ID, "at", n.At)
	return nil
}

// Cancel removes the pending notification with id, if any.
func (s *CronScheduler) Cancel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.entries[id]; ok {
		s.cron.Remove(prev.entry)
		delete(s.entries, id)
		s.log.Debug(context.Background(), "notification cancelled", "id", id)
	}
	return nil
}

// Pending returns the notification registered under id.
func (s *CronScheduler) Pending(id string) (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.entries[id]
	return p.n, ok
}

// Len returns the number of pending notifications.
func (s *CronScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *CronScheduler) fire(id string, seq uint64) {
	s.mu.Lock()
	p, ok := s.entries[id]
	if !ok || p.seq != seq {
		s.mu.Unlock()
		return
	}
	delete(s.entries, id)
	s.cron.Remove(p.entry)
	s.mu.Unlock()

	ctx := context.Background()
	if err := s.sink.Deliver(ctx, p.n); err != nil {
		s.log.Error(ctx, "failed to deliver notification", "id", id, "error", err)
	}
}
