package authz

import "fmt"

// EngineError wraps a failure inside the policy engine itself (store
// unavailable, malformed rule, broken adapter). It is never folded into a
// deny: callers must surface it as a server-side failure so that "denied"
// and "broken" stay distinguishable.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("policy engine: %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// OwnershipError wraps a failure of an ownership predicate. Like
// EngineError it propagates instead of degrading into a deny.
type OwnershipError struct {
	Resource string
	Err      error
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("ownership check for %s: %v", e.Resource, e.Err)
}

func (e *OwnershipError) Unwrap() error { return e.Err }
