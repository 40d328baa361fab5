package utils

import "testing"

func TestLoadingStateEdges(t *testing.T) {
	l := NewLoadingState()
	var events []bool
	id := l.Subscribe(func(busy bool) { events = append(events, busy) })

	if len(events) != 1 || events[0] != false {
		t.Fatalf("subscribe must fire immediately with the current state, got %v", events)
	}

	// Two overlapping requests fire only one busy and one idle notification.
	l.Begin()
	l.Begin()
	l.End()
	l.End()
	want := []bool{false, true, false}
	if len(events) != len(want) {
		t.Fatalf("got %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("got %v, want %v", events, want)
		}
	}

	l.Unsubscribe(id)
	l.Begin()
	if len(events) != len(want) {
		t.Errorf("listener fired after unsubscribe: %v", events)
	}
	if !l.Busy() {
		t.Error("state should be busy")
	}
	l.End()
}

func TestLoadingStateEndNeverGoesNegative(t *testing.T) {
	l := NewLoadingState()
	l.End()
	l.Begin()
	if !l.Busy() {
		t.Error("a stray End must not mask a following Begin")
	}
}

func TestLoadingStateUnsubscribeUnknownID(t *testing.T) {
	l := NewLoadingState()
	l.Unsubscribe(999) // no panic
}
