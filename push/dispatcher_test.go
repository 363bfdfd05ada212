package push

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/giygas/medreminder/board"
	"github.com/giygas/medreminder/clock"
	"github.com/giygas/medreminder/config"
	"github.com/giygas/medreminder/entities"
	"github.com/giygas/medreminder/interfaces"
)

type mockPusher struct {
	mu       sync.Mutex
	requests []interfaces.PushRequest
	err      error
	block    chan struct{}
}

func (m *mockPusher) Name() string { return "mock" }

func (m *mockPusher) Push(ctx context.Context, req interfaces.PushRequest) error {
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	return m.err
}

func (m *mockPusher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func TestDispatchAddsToBoardAndPushes(t *testing.T) {
	b := board.New(clock.NewFake(time.Now()), board.DefaultTTL)
	pusher := &mockPusher{}
	d := NewDispatcher(b, pusher, 10, time.Second)

	d.Dispatch(entities.Notification{ID: "1", Title: "Good Morning", Message: "Take:\n• Metformin"})
	d.Wait()

	if len(b.List()) != 1 {
		t.Errorf("Expected 1 notification on the board, got %d", len(b.List()))
	}
	if pusher.count() != 1 {
		t.Fatalf("Expected 1 push, got %d", pusher.count())
	}
	if pusher.requests[0].Title != "Good Morning" || pusher.requests[0].URL != "" || pusher.requests[0].Icon != "" {
		t.Errorf("Unexpected push request %+v", pusher.requests[0])
	}
}

func TestDispatchPushFailureStillShowsOnBoard(t *testing.T) {
	b := board.New(clock.NewFake(time.Now()), board.DefaultTTL)
	pusher := &mockPusher{err: errors.New("network down")}
	d := NewDispatcher(b, pusher, 10, time.Second)

	d.Dispatch(entities.Notification{ID: "1", Title: entities.AlertTitle})
	d.Wait()

	got := b.List()
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("Expected the notification on the board despite push failure, got %v", got)
	}
}

func TestDispatchDoesNotWaitForPush(t *testing.T) {
	b := board.New(clock.NewFake(time.Now()), board.DefaultTTL)
	pusher := &mockPusher{block: make(chan struct{})}
	d := NewDispatcher(b, pusher, 10, 5*time.Second)

	done := make(chan struct{})
	go func() {
		d.Dispatch(entities.Notification{ID: "1"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on the push")
	}
	if len(b.List()) != 1 {
		t.Error("Expected notification on the board before the push completes")
	}

	close(pusher.block)
	d.Wait()
	if pusher.count() != 1 {
		t.Errorf("Expected push to complete, got %d", pusher.count())
	}
}

func TestDispatchTimeout(t *testing.T) {
	b := board.New(clock.NewFake(time.Now()), board.DefaultTTL)
	pusher := &mockPusher{block: make(chan struct{})}
	d := NewDispatcher(b, pusher, 10, 50*time.Millisecond)

	d.Dispatch(entities.Notification{ID: "1"})

	finished := make(chan struct{})
	go func() {
		d.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Push was not bounded by the timeout")
	}
	if pusher.count() != 0 {
		t.Errorf("Expected timed out push not to be recorded, got %d", pusher.count())
	}
}

func TestNewSelectsProvider(t *testing.T) {
	p, err := New(config.PushConfig{Provider: config.PushProviderLog})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Name() != "log" {
		t.Errorf("Expected log pusher, got %s", p.Name())
	}
	if err := p.Push(context.Background(), interfaces.PushRequest{Title: "t"}); err != nil {
		t.Errorf("Expected log pusher to succeed, got %v", err)
	}

	if _, err := New(config.PushConfig{Provider: config.PushProviderOneSignal}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured for empty onesignal config, got %v", err)
	}

	if _, err := New(config.PushConfig{Provider: "pigeon"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
