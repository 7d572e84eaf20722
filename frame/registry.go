// File: registry.go
// Role: Registry — an explicit, caller-constructed table of protocol
// mode ids/aliases to Frame, rather than process-wide global state.
package frame

import (
	"sync"

	"golang.org/x/xerrors"
)

// ErrDuplicateMode is returned by Register when mode (or one of its
// aliases) is already registered.
var ErrDuplicateMode = xerrors.New("frame: mode already registered")

// ErrUnknownMode is returned by Lookup when no Frame is registered
// under the given mode id or alias.
var ErrUnknownMode = xerrors.New("frame: unknown mode")

// Registry maps protocol mode ids and aliases to a Frame. It is an
// explicit value the caller constructs and owns (typically once, at
// process startup), not a package-level global: nothing in this
// module registers into a shared table implicitly.
type Registry struct {
	mu      sync.RWMutex
	byAlias map[string]Frame
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byAlias: make(map[string]Frame)}
}

// Register adds f under mode and every alias in aliases. It is safe
// for concurrent use, but is meant to run during a single-threaded
// init phase before any Lookup call from a concurrent reader; a
// duplicate mode id or alias is a hard error, not a panic, since a
// caller assembling a registry from configuration needs to report it
// to whoever is wrong, not crash.
func (r *Registry) Register(mode string, f Frame, aliases ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := append([]string{mode}, aliases...)
	for _, id := range ids {
		if _, exists := r.byAlias[id]; exists {
			return xerrors.Errorf("frame: id %q: %w", id, ErrDuplicateMode)
		}
	}
	for _, id := range ids {
		r.byAlias[id] = f
	}
	return nil
}

// Lookup returns the Frame registered under mode or alias id.
func (r *Registry) Lookup(id string) (Frame, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byAlias[id]
	if !ok {
		return nil, xerrors.Errorf("frame: id %q: %w", id, ErrUnknownMode)
	}
	return f, nil
}
