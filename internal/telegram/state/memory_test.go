package state

import (
	"sync"
	"sync/atomic"
	"testing"
)

const stateAwaiting State = "awaiting_test"

func TestDefaultIsIdle(t *testing.T) {
	m := NewMemoryManager()
	if st := m.Get(42); st != StateIdle {
		t.Fatalf("state = %q, expected idle", st)
	}
	if m.InProgress(42) {
		t.Fatal("fresh user must not be in progress")
	}
}

func TestSetAndConsume(t *testing.T) {
	m := NewMemoryManager()
	m.Set(42, stateAwaiting)
	if !m.InProgress(42) {
		t.Fatal("expected pending state")
	}
	if st := m.Consume(42); st != stateAwaiting {
		t.Fatalf("consumed = %q, expected %q", st, stateAwaiting)
	}
	if st := m.Consume(42); st != StateIdle {
		t.Fatalf("second consume = %q, expected idle", st)
	}
	if m.InProgress(42) {
		t.Fatal("state must be cleared after consume")
	}
}

func TestSetIdleClears(t *testing.T) {
	m := NewMemoryManager()
	m.Set(42, stateAwaiting)
	m.Set(42, StateIdle)
	if m.InProgress(42) {
		t.Fatal("setting idle must clear the pending state")
	}
}

func TestSetOverwritesPending(t *testing.T) {
	m := NewMemoryManager()
	m.Set(42, stateAwaiting)
	m.Set(42, State("awaiting_other"))
	if st := m.Consume(42); st != State("awaiting_other") {
		t.Fatalf("consumed = %q, expected the later state", st)
	}
}

func TestStatesAreIsolatedPerUser(t *testing.T) {
	m := NewMemoryManager()
	m.Set(1, stateAwaiting)
	if m.InProgress(2) {
		t.Fatal("state of user 1 leaked to user 2")
	}
	if st := m.Consume(2); st != StateIdle {
		t.Fatalf("user 2 consume = %q, expected idle", st)
	}
	if st := m.Consume(1); st != stateAwaiting {
		t.Fatalf("user 1 consume = %q, expected pending state", st)
	}
}

func TestConsumeIsAtomic(t *testing.T) {
	m := NewMemoryManager()
	m.Set(42, stateAwaiting)

	const workers = 16
	var wg sync.WaitGroup
	var winners int64
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if st := m.Consume(42); st != StateIdle {
				atomic.AddInt64(&winners, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if winners != 1 {
		t.Fatalf("winners = %d, expected exactly one consumer to observe the state", winners)
	}
}
