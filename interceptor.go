// Package logtap observes the calls made through an existing logger.
// It wraps the output methods of a Console in place and notifies registered
// listeners with a structured Event before each original method runs, so code
// that already logs through the Console does not need to change.
package logtap

import (
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
)

// Listener receives one Event per intercepted call.
type Listener func(e Event)

// Interceptor wraps the output methods of one Console and fans every call out
// to its listeners.
//
// An Interceptor is Active from New until Dispose, and Disposed afterwards.
// Wrapping the same Console with two Interceptors is not supported: the second
// one captures the first one's wrappers as its originals.
type Interceptor struct {
	console *Console

	// originals holds the slots captured at construction. Absent optional
	// slots stay nil.
	originals Console

	all    *listenerSet
	levels map[Level]*listenerSet

	clock     xclock.Clock
	layout    string
	location  *time.Location
	infoAsLog bool

	disposed atomic.Bool
}

// New wraps c's output methods and returns the Interceptor observing them.
// c is modified in place; it must not be nil and must have Log, Warn and
// Error set. Debug and Info are wrapped only when present.
func New(c *Console, opts ...Option) *Interceptor {
	if c == nil {
		panic("logtap: New called with a nil Console")
	}

	if c.Log == nil || c.Warn == nil || c.Error == nil {
		panic("logtap: Console must provide Log, Warn and Error")
	}

	i := &Interceptor{
		console:   c,
		originals: *c,
		all:       newListenerSet(),
		levels:    make(map[Level]*listenerSet, len(levelSet)),
		layout:    defaultTimestampLayout,
		location:  time.Local,
	}

	for _, level := range Levels() {
		i.levels[level] = newListenerSet()
	}

	for _, opt := range opts {
		opt(i)
	}

	for _, level := range Levels() {
		original := *i.originals.slot(level)
		if original == nil {
			continue
		}

		*c.slot(level) = i.wrap(level, original, i.setFor(level))
	}

	return i
}

// setFor returns the listener set that calls at level dispatch through.
func (i *Interceptor) setFor(level Level) *listenerSet {
	if level == LevelInfo && i.infoAsLog {
		return i.levels[LevelLog]
	}

	return i.levels[level]
}

// wrap builds the function stored in the Console slot for level.
func (i *Interceptor) wrap(level Level, original LogFunc, listeners *listenerSet) LogFunc {
	return func(args ...any) {
		// A wrapper saved before Dispose keeps calling through but never dispatches.
		if i.disposed.Load() {
			original(args...)

			return
		}

		all := i.all.listeners()
		own := listeners.listeners()

		if len(all) > 0 || len(own) > 0 {
			e := i.newEvent(level, args)

			for _, fn := range all {
				fn(e)
			}

			for _, fn := range own {
				fn(e)
			}
		}

		original(args...)
	}
}

func (i *Interceptor) newEvent(level Level, args []any) Event {
	date := i.now()

	return Event{
		Type:      level,
		Date:      date,
		Timestamp: date.In(i.location).Format(i.layout),
		Messages:  args,
		Logger:    i.originals,
	}
}

func (i *Interceptor) now() time.Time {
	if i.clock != nil {
		return i.clock.Now()
	}

	return xclock.Now()
}

// On registers listener for calls at every level and returns a function that
// unregisters it. The returned function may be called more than once.
// A nil listener is ignored and On returns nil.
//
// After Dispose, registration still succeeds but nothing dispatches, not even
// through wrapper functions saved from the Console before disposal.
//
// Listeners run synchronously inside the wrapped call, before the original
// method. A panicking listener is not recovered: the panic propagates to the
// caller, later listeners are skipped and the original method is not called.
func (i *Interceptor) On(listener Listener) func() {
	if listener == nil {
		return nil
	}

	return i.all.add(listener)
}

// OnLevel registers listener for calls at level only and returns a function
// that unregisters it. An unknown level or a nil listener is ignored and
// OnLevel returns nil.
//
// With WithInfoAsLog, LevelLog and LevelInfo share one set: a listener
// registered for either level receives both Log and Info calls.
func (i *Interceptor) OnLevel(level Level, listener Listener) func() {
	if listener == nil || !level.Valid() {
		return nil
	}

	return i.setFor(level).add(listener)
}

// Dispose restores every Console slot to the function captured by New and
// removes all listeners. Dispose is idempotent. It overwrites the slots
// unconditionally, so instrumentation installed on the Console after New is
// discarded.
func (i *Interceptor) Dispose() {
	for _, level := range Levels() {
		*i.console.slot(level) = *i.originals.slot(level)
	}

	i.all.clear()

	for _, set := range i.levels {
		set.clear()
	}

	i.disposed.Store(true)
}

// Disposed reports whether Dispose has been called.
func (i *Interceptor) Disposed() bool {
	return i.disposed.Load()
}
