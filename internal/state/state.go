// Package state holds client-side view state: the signed-in session and one
// holder per resource. Holders are safe for concurrent use and notify
// subscribers after every transition.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/target/admin-panel/internal/client"
)

// ErrSuperseded is returned by a call whose result was discarded because a
// newer call of the same operation started.
var ErrSuperseded = errors.New("state: superseded by a newer request")

// errorMessage reduces err to display text: the server message when present,
// otherwise fallback.
func errorMessage(err error, fallback string) string {
	if msg := client.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}

func ptr(s string) *string { return &s }

// latest implements take-latest per operation key. Starting an operation
// cancels the in-flight call with the same key.
type latest struct {
	mu      sync.Mutex
	gen     map[string]uint64
	cancels map[string]context.CancelFunc
}

func newLatest() *latest {
	return &latest{gen: map[string]uint64{}, cancels: map[string]context.CancelFunc{}}
}

// start registers a new call for key and returns its context and ticket.
func (l *latest) start(ctx context.Context, key string) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cancel, ok := l.cancels[key]; ok {
		cancel()
	}
	cctx, cancel := context.WithCancel(ctx)
	l.gen[key]++
	l.cancels[key] = cancel
	return cctx, l.gen[key]
}

// finish reports whether ticket is still the newest call for key and, if so,
// releases it.
func (l *latest) finish(key string, ticket uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen[key] != ticket {
		return false
	}
	if cancel, ok := l.cancels[key]; ok {
		cancel()
		delete(l.cancels, key)
	}
	return true
}

// inFlight reports whether any call is still registered.
func (l *latest) inFlight() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cancels) > 0
}

// subscribers fans snapshots out to registered callbacks.
type subscribers[S any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(S)
}

func (s *subscribers[S]) add(fn func(S)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = map[int]func(S){}
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}
}

func (s *subscribers[S]) notify(snap S) {
	s.mu.Lock()
	fns := make([]func(S), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}
