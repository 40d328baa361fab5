package utils

import "sync"

// LoadingState tracks how many remote requests are in flight and notifies
// subscribers when the console transitions between idle and busy. It replaces
// an implicit global flag: the application root owns one instance and injects
// it into the components that report or display progress.
type LoadingState struct {
	mu        sync.Mutex
	inFlight  int
	nextID    int
	listeners map[int]func(bool)
}

func NewLoadingState() *LoadingState {
	return &LoadingState{listeners: make(map[int]func(bool))}
}

// Begin marks one request as in flight. Listeners fire only on the idle->busy edge.
func (l *LoadingState) Begin() {
	l.mu.Lock()
	l.inFlight++
	notify := l.inFlight == 1
	listeners := l.snapshot()
	l.mu.Unlock()
	if notify {
		for _, cb := range listeners {
			cb(true)
		}
	}
}

// End marks one request as finished. Listeners fire only on the busy->idle edge.
func (l *LoadingState) End() {
	l.mu.Lock()
	if l.inFlight > 0 {
		l.inFlight--
	}
	notify := l.inFlight == 0
	listeners := l.snapshot()
	l.mu.Unlock()
	if notify {
		for _, cb := range listeners {
			cb(false)
		}
	}
}

// Busy reports whether any request is currently in flight.
func (l *LoadingState) Busy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight > 0
}

// Subscribe registers a listener, invokes it immediately with the current
// state, and returns an id for Unsubscribe.
func (l *LoadingState) Subscribe(cb func(busy bool)) int {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = cb
	busy := l.inFlight > 0
	l.mu.Unlock()
	cb(busy)
	return id
}

// Unsubscribe removes a listener. Unknown ids are ignored.
func (l *LoadingState) Unsubscribe(id int) {
	l.mu.Lock()
	delete(l.listeners, id)
	l.mu.Unlock()
}

// snapshot copies the listener set so callbacks run outside the lock.
func (l *LoadingState) snapshot() []func(bool) {
	out := make([]func(bool), 0, len(l.listeners))
	for _, cb := range l.listeners {
		out = append(out, cb)
	}
	return out
}
