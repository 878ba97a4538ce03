package notes

import (
	"testing"

	authz "github.com/TwigBush/authz-go"
)

func TestStoreCRUD(t *testing.T) {
	t.Parallel()

	s := NewStore()
	n := s.Create("alice", "title", "body")
	if n.ID == "" {
		t.Fatalf("Create returned empty ID")
	}
	if n.Owner != "alice" {
		t.Fatalf("Owner = %q, want alice", n.Owner)
	}

	got, ok := s.Get(n.ID)
	if !ok {
		t.Fatalf("Get(%q) missing", n.ID)
	}
	if got.Title != "title" {
		t.Fatalf("Title = %q, want title", got.Title)
	}

	upd, ok := s.Update(n.ID, "new", "text")
	if !ok {
		t.Fatalf("Update(%q) missing", n.ID)
	}
	if upd.Title != "new" {
		t.Fatalf("Title after update = %q, want new", upd.Title)
	}

	if len(s.List()) != 1 {
		t.Fatalf("List len = %d, want 1", len(s.List()))
	}

	if !s.Delete(n.ID) {
		t.Fatalf("Delete(%q) = false", n.ID)
	}
	if _, ok := s.Get(n.ID); ok {
		t.Fatalf("Get after delete still returns the note")
	}
}

func TestIsOwner(t *testing.T) {
	t.Parallel()

	s := NewStore()
	n := s.Create("bob", "t", "b")

	cases := []struct {
		name string
		rc   authz.RequestContext
		want bool
	}{
		{"owner", authz.RequestContext{Subject: "bob", Params: map[string]any{"id": n.ID}}, true},
		{"other subject", authz.RequestContext{Subject: "carol", Params: map[string]any{"id": n.ID}}, false},
		{"unknown note", authz.RequestContext{Subject: "bob", Params: map[string]any{"id": "nope"}}, false},
		{"missing param", authz.RequestContext{Subject: "bob", Params: map[string]any{}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := s.IsOwner(tc.rc)
			if err != nil {
				t.Fatalf("IsOwner error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("IsOwner = %v, want %v", got, tc.want)
			}
		})
	}
}
