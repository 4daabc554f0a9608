// install.go — process-wide fallback rendering for uncaught errors.
//
// At most one subsystem may own the top-level handler slot. Ownership is an
// explicit initialization call, never a module-load side effect: hosts that
// want their own reporting call SetHandler, and Install claims the slot for
// the errtree renderer only if nobody else has. When the slot is already
// foreign-owned, Install declines and warns exactly once, so a host
// environment's error reporting keeps working.
package errtree

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// warnLog emits the one-time decline warning. Package-level so tests (and
// embedding hosts) can redirect it.
var warnLog = zerolog.New(os.Stderr).With().Timestamp().Logger()

var topLevel struct {
	mu      sync.Mutex
	handler func(error)
	ours    bool
	warned  bool
}

// Install claims the top-level handler slot with the full errtree renderer
// (writing to stderr) and reports whether the renderer now owns the slot.
// A second Install is a no-op returning true. If a different handler already
// owns the slot, Install declines, logs a one-time warning, and returns
// false.
func Install() bool {
	topLevel.mu.Lock()
	defer topLevel.mu.Unlock()

	if topLevel.handler != nil {
		if topLevel.ours {
			return true
		}
		if !topLevel.warned {
			topLevel.warned = true
			warnLog.Warn().Msg("a top-level error handler is already installed; " +
				"skipping the errtree renderer, multi-error reports will not show full traces")
		}
		return false
	}

	topLevel.handler = func(err error) { Fprint(os.Stderr, err) }
	topLevel.ours = true
	return true
}

// SetHandler claims the top-level handler slot for h and reports whether the
// claim succeeded. It fails once any handler, including the errtree renderer,
// owns the slot. A nil h is ignored.
func SetHandler(h func(error)) bool {
	if h == nil {
		return false
	}
	topLevel.mu.Lock()
	defer topLevel.mu.Unlock()

	if topLevel.handler != nil {
		return false
	}
	topLevel.handler = h
	topLevel.ours = false
	return true
}

// Report passes err to the current top-level handler. With no handler
// installed it falls back to the compact one-line form on stderr; full detail
// requires Install (or a host handler that renders it).
func Report(err error) {
	if err == nil {
		return
	}
	topLevel.mu.Lock()
	h := topLevel.handler
	topLevel.mu.Unlock()

	if h != nil {
		h(err)
		return
	}
	_, _ = os.Stderr.WriteString(err.Error() + "\n")
}

// resetTopLevel clears the slot. Test hook.
func resetTopLevel() {
	topLevel.mu.Lock()
	defer topLevel.mu.Unlock()
	topLevel.handler = nil
	topLevel.ours = false
	topLevel.warned = false
}
