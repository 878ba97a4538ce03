// Package notes is the demo resource the example server guards: notes with
// owners, enough surface to exercise ownership-qualified permissions.
package notes

import (
	"sync"
	"time"

	"github.com/google/uuid"

	authz "github.com/TwigBush/authz-go"
)

type Note struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Store struct {
	mu    sync.RWMutex
	notes map[string]*Note
}

func NewStore() *Store {
	return &Store{notes: make(map[string]*Note)}
}

func (s *Store) Create(owner, title, body string) *Note {
	now := time.Now().UTC()
	n := &Note{
		ID:        uuid.NewString(),
		Owner:     owner,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.notes[n.ID] = n
	s.mu.Unlock()

	return n
}

func (s *Store) Get(id string) (*Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[id]
	if !ok {
		return nil, false
	}
	cp := *n
	return &cp, true
}

func (s *Store) Update(id, title, body string) (*Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return nil, false
	}
	n.Title = title
	n.Body = body
	n.UpdatedAt = time.Now().UTC()
	cp := *n
	return &cp, true
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return false
	}
	delete(s.notes, id)
	return true
}

func (s *Store) List() []*Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Note, 0, len(s.notes))
	for _, n := range s.notes {
		cp := *n
		out = append(out, &cp)
	}
	return out
}

// IsOwner is the ownership predicate wired into "own" requirements: the
// targeted note (Params["id"]) must belong to the requesting subject. An
// unknown note is simply not owned.
func (s *Store) IsOwner(rc authz.RequestContext) (bool, error) {
	id, _ := rc.Params["id"].(string)
	if id == "" {
		return false, nil
	}
	n, ok := s.Get(id)
	if !ok {
		return false, nil
	}
	return n.Owner == rc.Subject, nil
}
