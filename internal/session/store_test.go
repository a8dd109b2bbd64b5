package session

import (
	"errors"
	"testing"
	"time"

	readings "powerplan/internal/readings/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(time.Hour, nil)
	set := []readings.Reading{{Type: readings.TypeAnytime, Value: 100}}

	sess := store.Create(set)
	if sess.ID == "" {
		t.Fatalf("empty session id")
	}

	loaded, err := store.Get(sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(loaded.Readings) != 1 || loaded.Readings[0].Value != 100 {
		t.Fatalf("readings not preserved: %+v", loaded.Readings)
	}
}

func TestStore_UnknownID(t *testing.T) {
	store := NewStore(time.Hour, nil)
	if _, err := store.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStore_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)}
	store := NewStore(time.Hour, clock)

	sess := store.Create(nil)
	clock.now = clock.now.Add(2 * time.Hour)

	if _, err := store.Get(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
	if remaining := store.Sweep(); remaining != 0 {
		t.Fatalf("expected sweep to evict, %d remaining", remaining)
	}
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	store := NewStore(0, nil)
	first := store.Create([]readings.Reading{{Value: 1}})
	second := store.Create([]readings.Reading{{Value: 2}})

	if first.ID == second.ID {
		t.Fatalf("session ids collide")
	}
	loaded, err := store.Get(second.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Readings[0].Value != 2 {
		t.Fatalf("sessions share readings: %+v", loaded.Readings)
	}
}
