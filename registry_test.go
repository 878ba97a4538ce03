package authz

import (
	"testing"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	perms := []Permission{
		{Action: ActionRead, Resource: "USER", Possession: PossessionAny},
		{Action: ActionRead, Resource: "USER_ROLES", Possession: PossessionAny},
	}
	if err := r.Register("users.read", perms...); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	got := r.Lookup("users.read")
	if len(got) != 2 {
		t.Fatalf("Lookup returned %d permissions, want 2", len(got))
	}
	if got[0].Resource != "USER" || got[1].Resource != "USER_ROLES" {
		t.Fatalf("Lookup lost declared order: %v", got)
	}

	// mutating the returned slice must not affect the registry
	got[0].Resource = "TAMPERED"
	if again := r.Lookup("users.read"); again[0].Resource != "USER" {
		t.Fatalf("Lookup returned a shared slice")
	}
}

func TestRegistryUnknownOperationIsUnguarded(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if got := r.Lookup("nope"); got != nil {
		t.Fatalf("Lookup(unknown) = %v, want nil", got)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	p := Permission{Action: ActionRead, Resource: "USER", Possession: PossessionAny}
	if err := r.Register("op", p); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	if err := r.Register("op", p); err == nil {
		t.Fatalf("duplicate Register succeeded, want error")
	}
}

func TestRegistryValidatesPermissions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		perm Permission
	}{
		{"empty resource", Permission{Action: ActionRead, Possession: PossessionAny}},
		{"bad action", Permission{Action: "fly", Resource: "USER", Possession: PossessionAny}},
		{"bad possession", Permission{Action: ActionRead, Resource: "USER", Possession: "shared"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := NewRegistry()
			if err := r.Register("op", tc.perm); err == nil {
				t.Fatalf("Register accepted %v", tc.perm)
			}
		})
	}
}

func TestRegistryOperationsSorted(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	p := Permission{Action: ActionRead, Resource: "USER", Possession: PossessionAny}
	for _, op := range []string{"b.op", "a.op", "c.op"} {
		if err := r.Register(op, p); err != nil {
			t.Fatalf("Register(%q) error: %v", op, err)
		}
	}
	got := r.Operations()
	want := []string{"a.op", "b.op", "c.op"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Operations() = %v, want %v", got, want)
		}
	}
}

func TestEffectiveResource(t *testing.T) {
	t.Parallel()

	anyP := Permission{Action: ActionRead, Resource: "DOC", Possession: PossessionAny}
	if got := anyP.EffectiveResource(); got != "DOC" {
		t.Fatalf("EffectiveResource(any) = %q, want DOC", got)
	}
	ownP := Permission{Action: ActionUpdate, Resource: "DOC", Possession: PossessionOwn}
	if got := ownP.EffectiveResource(); got != "DOC:own" {
		t.Fatalf("EffectiveResource(own) = %q, want DOC:own", got)
	}
}
