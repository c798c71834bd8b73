package logtap

import "log"

// Hook is an interface that allows you to process intercepted calls.
// Hooks can be used to send logs to external services like Sentry or Slack.
//
// Fire is called synchronously inside the wrapped call, before the original
// method runs, so slow hooks slow down logging.
type Hook interface {
	// Levels returns the levels that this hook should be fired for.
	// If an empty slice is returned, the hook will be fired for all levels.
	Levels() []Level

	// Fire is called for every intercepted call at one of the hook's levels.
	// A returned error is reported through the standard log package and
	// does not stop the original method.
	Fire(e Event) error
}

// AddHook registers h and returns a function that removes every
// registration made for it. Unknown levels returned by h.Levels are skipped.
// A nil hook is ignored and AddHook returns nil.
func (i *Interceptor) AddHook(h Hook) func() {
	if h == nil {
		return nil
	}

	fire := func(e Event) {
		if err := h.Fire(e); err != nil {
			log.Printf("logtap: hook failed: %v", err)
		}
	}

	levels := h.Levels()
	if len(levels) == 0 {
		return i.On(fire)
	}

	seen := make(map[Level]struct{}, len(levels))
	removers := make([]func(), 0, len(levels))

	for _, level := range levels {
		if _, dup := seen[level]; dup {
			continue
		}

		seen[level] = struct{}{}

		if off := i.OnLevel(level, fire); off != nil {
			removers = append(removers, off)
		}
	}

	return func() {
		for _, off := range removers {
			off()
		}
	}
}
