package logtap

import (
	"io"
	"log"
	"sync"
)

// NewWriterListener returns a Listener that writes every event to w as one
// line rendered by f. Writes are serialized, so the listener may be shared.
// Format failures are reported through the standard log package and the
// event is skipped.
func NewWriterListener(w io.Writer, f Formatter) Listener {
	var mu sync.Mutex

	return func(e Event) {
		out, err := f.Format(e)
		if err != nil {
			log.Printf("logtap: failed to format event: %v", err)

			return
		}

		mu.Lock()
		defer mu.Unlock()

		if _, err := w.Write(append(out, '\n')); err != nil {
			log.Printf("logtap: failed to write event: %v", err)
		}
	}
}

// Mirror returns a Listener that repeats each call on target at the same
// level. Info falls back to target.Log when target has no Info; debug calls
// are dropped when target has no Debug.
//
// Mirroring a Console onto itself recurses forever unless target is the
// event's own unwrapped Logger.
func Mirror(target *Console) Listener {
	return func(e Event) {
		slot := target.slot(e.Type)
		if slot == nil {
			return
		}

		fn := *slot
		if fn == nil && e.Type == LevelInfo {
			fn = target.Log
		}

		if fn == nil {
			return
		}

		fn(e.Messages...)
	}
}
