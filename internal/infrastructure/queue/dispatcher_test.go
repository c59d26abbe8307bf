package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadvault/crm-api/internal/core/domain"
)

type recordingSink struct {
	mu       sync.Mutex
	sessions []*domain.Session
	err      error
	block    chan struct{}
}

func (s *recordingSink) Record(_ context.Context, session *domain.Session) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sessions = append(s.sessions, session)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func TestAuditDispatcher_WritesToSink(t *testing.T) {
	sink := &recordingSink{}
	d := NewAuditDispatcher(2, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		if err := d.Record(context.Background(), &domain.Session{UserID: "u1"}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	cancel()
	d.Wait()

	if got := sink.count(); got != 10 {
		t.Fatalf("expected 10 sessions written, got %d", got)
	}
}

func TestAuditDispatcher_PreservesPerUserOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewAuditDispatcher(4, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_ = d.Record(context.Background(), &domain.Session{UserID: "same-user", CreatedAt: base.Add(time.Duration(i) * time.Second)})
	}
	cancel()
	d.Wait()

	for i := 1; i < len(sink.sessions); i++ {
		if sink.sessions[i].CreatedAt.Before(sink.sessions[i-1].CreatedAt) {
			t.Fatalf("sessions out of order at %d", i)
		}
	}
}

func TestAuditDispatcher_QueueFullIsReported(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewAuditDispatcher(1, sink, zerolog.Nop())
	// Workers not started: the buffer fills up.
	for i := 0; i < channelBuffer; i++ {
		if err := d.Record(context.Background(), &domain.Session{UserID: "u"}); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}

	if err := d.Record(context.Background(), &domain.Session{UserID: "u"}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	close(sink.block)
}

func TestAuditDispatcher_SinkErrorDoesNotStopWorker(t *testing.T) {
	sink := &recordingSink{err: errors.New("sink down")}
	d := NewAuditDispatcher(1, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	_ = d.Record(context.Background(), &domain.Session{UserID: "u"})
	_ = d.Record(context.Background(), &domain.Session{UserID: "u"})

	sink.mu.Lock()
	sink.err = nil
	sink.mu.Unlock()
	_ = d.Record(context.Background(), &domain.Session{UserID: "u"})

	cancel()
	d.Wait()

	if got := sink.count(); got < 1 {
		t.Fatalf("worker should keep writing after a failure, got %d sessions", got)
	}
}
