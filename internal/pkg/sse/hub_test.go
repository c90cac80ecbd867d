package sse

import (
	"testing"
	"time"
)

func TestHubPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-1", Event{UserID: "user-1", Event: "clock.started", Data: "x"})

	select {
	case ev := <-ch:
		if ev.Event != "clock.started" {
			t.Errorf("got event %q, want %q", ev.Event, "clock.started")
		}
	case <-time.After(time.Second):
		t.Fatal("expected event, got none")
	}
}

func TestHubPublishIgnoresOtherUsers(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-2", Event{UserID: "user-2", Event: "clock.started"})

	select {
	case ev := <-ch:
		t.Errorf("unexpected event %q for other user", ev.Event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("user-1")

	if got := hub.SubscriberCount("user-1"); got != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", got)
	}

	cleanup()

	if got := hub.SubscriberCount("user-1"); got != 0 {
		t.Errorf("SubscriberCount after cleanup = %d, want 0", got)
	}
}

func TestHubMultipleSubscribersSameUser(t *testing.T) {
	hub := NewHub()
	ch1, cleanup1 := hub.Subscribe("user-1")
	ch2, cleanup2 := hub.Subscribe("user-1")
	defer cleanup1()
	defer cleanup2()

	hub.Publish("user-1", Event{UserID: "user-1", Event: "clock.cleared"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Event != "clock.cleared" {
				t.Errorf("got event %q, want %q", ev.Event, "clock.cleared")
			}
		case <-time.After(time.Second):
			t.Fatal("expected event on every subscriber channel")
		}
	}
}
