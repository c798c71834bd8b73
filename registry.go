package logtap

import (
	"sync"
	"sync/atomic"
)

// resetThreshold is the size above which clear reallocates instead of reusing the map.
const resetThreshold = 64

// listenerSet is a set of listeners keyed by registration token.
// Go funcs are not comparable, so every registration gets its own token and
// removal goes through the handle returned by add.
//
// Reads are lock-free: dispatch loads an immutable snapshot, while add and
// remove rebuild the snapshot under mu. A listener added or removed during a
// dispatch therefore takes effect from the next call.
type listenerSet struct {
	mu       sync.Mutex
	next     uint64
	entries  map[uint64]Listener
	snapshot atomic.Pointer[[]Listener]
}

func newListenerSet() *listenerSet {
	return &listenerSet{entries: make(map[uint64]Listener)}
}

// add registers fn and returns a func that removes exactly this registration.
// The returned func may be called any number of times.
func (s *listenerSet) add(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	token := s.next
	s.entries[token] = fn
	s.rebuild()

	return func() {
		s.remove(token)
	}
}

func (s *listenerSet) remove(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[token]; !ok {
		return
	}

	delete(s.entries, token)
	s.rebuild()
}

// clear drops every registration. Outstanding handles become no-ops.
func (s *listenerSet) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clearOrResetMap(&s.entries, resetThreshold)
	s.snapshot.Store(nil)
}

// rebuild publishes a fresh snapshot. Callers must hold mu.
func (s *listenerSet) rebuild() {
	if len(s.entries) == 0 {
		s.snapshot.Store(nil)

		return
	}

	snap := make([]Listener, 0, len(s.entries))
	for _, fn := range s.entries {
		snap = append(snap, fn)
	}

	s.snapshot.Store(&snap)
}

// listeners returns the current snapshot. It must be treated as read-only.
func (s *listenerSet) listeners() []Listener {
	p := s.snapshot.Load()
	if p == nil {
		return nil
	}

	return *p
}

// len returns the number of registrations.
func (s *listenerSet) len() int {
	return len(s.listeners())
}
