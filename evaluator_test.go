package authz

import (
	"context"
	"errors"
	"testing"
)

type fakeEnforcer struct {
	rules map[string]bool
	err   error
	calls []string
}

func (f *fakeEnforcer) Enforce(ctx context.Context, subject, resource, action string) (bool, error) {
	f.calls = append(f.calls, subject+"|"+resource+"|"+action)
	if f.err != nil {
		return false, f.err
	}
	return f.rules[subject+"|"+resource+"|"+action], nil
}

func allow(rules ...string) *fakeEnforcer {
	f := &fakeEnforcer{rules: map[string]bool{}}
	for _, r := range rules {
		f.rules[r] = true
	}
	return f
}

func TestDecideEmptyRequirementsIsVacuouslyTrue(t *testing.T) {
	t.Parallel()

	f := allow()
	ev := NewEvaluator(f)

	got, err := ev.Decide(context.Background(), "alice", nil, RequestContext{})
	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if !got {
		t.Fatalf("Decide = false, want true for zero requirements")
	}
	if len(f.calls) != 0 {
		t.Fatalf("engine called %d times, want 0", len(f.calls))
	}

	// vacuous truth holds even without a subject
	got, err = ev.Decide(context.Background(), "", nil, RequestContext{})
	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if !got {
		t.Fatalf("Decide = false for zero requirements and empty subject, want true")
	}
}

func TestDecideEmptySubjectFailsClosed(t *testing.T) {
	t.Parallel()

	f := allow("alice|USER|read")
	ev := NewEvaluator(f)

	perms := []Permission{{Action: ActionRead, Resource: "USER", Possession: PossessionAny}}
	got, err := ev.Decide(context.Background(), "", perms, RequestContext{})
	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if got {
		t.Fatalf("Decide = true for empty subject, want false")
	}
	if len(f.calls) != 0 {
		t.Fatalf("engine called %d times for empty subject, want 0", len(f.calls))
	}
}

func TestDecideAnyPossessionMirrorsEngine(t *testing.T) {
	t.Parallel()

	perms := []Permission{{Action: ActionRead, Resource: "USER", Possession: PossessionAny}}

	granted := allow("alice|USER|read")
	ev := NewEvaluator(granted)
	got, err := ev.Decide(context.Background(), "alice", perms, RequestContext{})
	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if !got {
		t.Fatalf("Decide = false, want true when the engine grants")
	}
	if want := "alice|USER|read"; granted.calls[0] != want {
		t.Fatalf("engine call = %q, want %q", granted.calls[0], want)
	}

	denied := allow()
	ev = NewEvaluator(denied)
	got, err = ev.Decide(context.Background(), "alice", perms, RequestContext{})
	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if got {
		t.Fatalf("Decide = true, want false when the engine denies")
	}
}

func TestDecideConjunctionDeniesOnAnyMiss(t *testing.T) {
	t.Parallel()

	// policy grants only the first of two requirements
	f := allow("alice|USER|read")
	ev := NewEvaluator(f)

	perms := []Permission{
		{Action: ActionRead, Resource: "USER", Possession: PossessionAny},
		{Action: ActionRead, Resource: "USER_ROLES", Possession: PossessionAny},
	}
	got, err := ev.Decide(context.Background(), "alice", perms, RequestContext{})
	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if got {
		t.Fatalf("Decide = true, want false when one requirement misses")
	}

	wantCalls := []string{"alice|USER|read", "alice|USER_ROLES|read"}
	if len(f.calls) != len(wantCalls) {
		t.Fatalf("got %d engine calls, want %d", len(f.calls), len(wantCalls))
	}
	for i, want := range wantCalls {
		if f.calls[i] != want {
			t.Fatalf("call %d = %q, want %q (declared order)", i, f.calls[i], want)
		}
	}
}

func TestDecideShortCircuitsAfterDeny(t *testing.T) {
	t.Parallel()

	f := allow("alice|USER_ROLES|read") // first requirement denied
	ev := NewEvaluator(f)

	perms := []Permission{
		{Action: ActionRead, Resource: "USER", Possession: PossessionAny},
		{Action: ActionRead, Resource: "USER_ROLES", Possession: PossessionAny},
	}
	got, err := ev.Decide(context.Background(), "alice", perms, RequestContext{})
	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if got {
		t.Fatalf("Decide = true, want false")
	}
	if len(f.calls) != 1 {
		t.Fatalf("got %d engine calls after a deny, want 1", len(f.calls))
	}
}

func TestDecideOwnWithoutPredicateAlwaysDenies(t *testing.T) {
	t.Parallel()

	// even an engine that grants everything cannot satisfy an unprovable
	// ownership requirement
	f := &fakeEnforcer{rules: map[string]bool{"bob|DOC:own|update": true}}
	ev := NewEvaluator(f)

	perms := []Permission{{Action: ActionUpdate, Resource: "DOC", Possession: PossessionOwn}}
	got, err := ev.Decide(context.Background(), "bob", perms, RequestContext{})
	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if got {
		t.Fatalf("Decide = true with nil IsOwn, want false")
	}
	if len(f.calls) != 0 {
		t.Fatalf("engine called %d times, want 0", len(f.calls))
	}
}

func TestDecideOwnershipProvenUsesOwnNamespace(t *testing.T) {
	t.Parallel()

	f := allow("bob|DOC:own|update")
	ev := NewEvaluator(f)

	perms := []Permission{{
		Action:     ActionUpdate,
		Resource:   "DOC",
		Possession: PossessionOwn,
		IsOwn: func(rc RequestContext) (bool, error) {
			owner, _ := rc.Params["docOwnerId"].(string)
			return owner == rc.Subject, nil
		},
	}}

	rc := RequestContext{Subject: "bob", Params: map[string]any{"docOwnerId": "bob"}}
	got, err := ev.Decide(context.Background(), "bob", perms, rc)
	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if !got {
		t.Fatalf("Decide = false, want true for owned resource")
	}
	if want := "bob|DOC:own|update"; f.calls[0] != want {
		t.Fatalf("engine call = %q, want %q", f.calls[0], want)
	}
}

func TestDecideOwnershipUnprovenSkipsEngine(t *testing.T) {
	t.Parallel()

	f := allow("bob|DOC:own|update")
	ev := NewEvaluator(f)

	perms := []Permission{{
		Action:     ActionUpdate,
		Resource:   "DOC",
		Possession: PossessionOwn,
		IsOwn: func(rc RequestContext) (bool, error) {
			owner, _ := rc.Params["docOwnerId"].(string)
			return owner == rc.Subject, nil
		},
	}}

	rc := RequestContext{Subject: "bob", Params: map[string]any{"docOwnerId": "carol"}}
	got, err := ev.Decide(context.Background(), "bob", perms, rc)
	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if got {
		t.Fatalf("Decide = true, want false when ownership is not proven")
	}
	if len(f.calls) != 0 {
		t.Fatalf("engine called %d times, want 0 (unproven ownership skips the call)", len(f.calls))
	}
}

func TestDecidePropagatesOwnershipError(t *testing.T) {
	t.Parallel()

	boom := errors.New("owner lookup broke")
	ev := NewEvaluator(allow())

	perms := []Permission{{
		Action:     ActionUpdate,
		Resource:   "DOC",
		Possession: PossessionOwn,
		IsOwn:      func(RequestContext) (bool, error) { return false, boom },
	}}

	got, err := ev.Decide(context.Background(), "bob", perms, RequestContext{})
	if got {
		t.Fatalf("Decide = true alongside an error")
	}
	var oe *OwnershipError
	if !errors.As(err, &oe) {
		t.Fatalf("err = %v, want *OwnershipError", err)
	}
	if oe.Resource != "DOC" {
		t.Fatalf("OwnershipError.Resource = %q, want %q", oe.Resource, "DOC")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err does not wrap the predicate failure")
	}
}

func TestDecidePropagatesEngineError(t *testing.T) {
	t.Parallel()

	boom := errors.New("store unavailable")
	f := &fakeEnforcer{err: boom}
	ev := NewEvaluator(f)

	perms := []Permission{{Action: ActionRead, Resource: "USER", Possession: PossessionAny}}
	got, err := ev.Decide(context.Background(), "alice", perms, RequestContext{})
	if got {
		t.Fatalf("Decide = true alongside an error")
	}
	var ee *EngineError
	if !errors.As(err, &ee) {
		t.Fatalf("err = %v, want *EngineError", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err does not wrap the engine failure")
	}
}

func TestDecideKeepsTypedEngineError(t *testing.T) {
	t.Parallel()

	inner := errors.New("bad rule")
	f := &fakeEnforcer{err: &EngineError{Op: "enforce", Err: inner}}
	ev := NewEvaluator(f)

	perms := []Permission{{Action: ActionRead, Resource: "USER", Possession: PossessionAny}}
	_, err := ev.Decide(context.Background(), "alice", perms, RequestContext{})

	var ee *EngineError
	if !errors.As(err, &ee) {
		t.Fatalf("err = %v, want *EngineError", err)
	}
	// no double wrapping
	if ee.Err != inner {
		t.Fatalf("EngineError was re-wrapped: %v", ee.Err)
	}
}

func TestDecideCancelledContextNeverAllows(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := allow("alice|USER|read")
	ev := NewEvaluator(f)

	perms := []Permission{{Action: ActionRead, Resource: "USER", Possession: PossessionAny}}
	got, err := ev.Decide(ctx, "alice", perms, RequestContext{})
	if got {
		t.Fatalf("Decide = true on a cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
