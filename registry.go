package authz

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps operation identifiers to their declared permission
// requirements. It replaces annotation-style declaration: hosts register
// each operation's requirements once at startup and look them up at
// dispatch time. Safe for concurrent use.
type Registry struct {
	mu  sync.RWMutex
	ops map[string][]Permission
}

func NewRegistry() *Registry {
	return &Registry{ops: make(map[string][]Permission)}
}

// Register declares the ordered requirements for an operation. Registering
// the same operation twice is a programming error and is rejected.
func (r *Registry) Register(operation string, perms ...Permission) error {
	if operation == "" {
		return fmt.Errorf("registry: empty operation identifier")
	}
	for _, p := range perms {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("registry: %s: %w", operation, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ops[operation]; dup {
		return fmt.Errorf("registry: operation %q already registered", operation)
	}
	r.ops[operation] = append([]Permission(nil), perms...)
	return nil
}

// MustRegister is Register for startup wiring, panicking on error.
func (r *Registry) MustRegister(operation string, perms ...Permission) {
	if err := r.Register(operation, perms...); err != nil {
		panic(err)
	}
}

// Lookup returns a copy of the operation's requirements, nil when the
// operation was never registered (such an operation is unguarded).
func (r *Registry) Lookup(operation string) []Permission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	perms, ok := r.ops[operation]
	if !ok {
		return nil
	}
	return append([]Permission(nil), perms...)
}

// Operations lists every registered operation identifier, sorted.
func (r *Registry) Operations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ops))
	for op := range r.ops {
		out = append(out, op)
	}
	sort.Strings(out)
	return out
}
