package intakemock

import (
	"context"
	"encoding/json"
	"sync"

	"rental-intake/internal/domain/intake"
)

var _ intake.Store = (*Store)(nil)

// Store is an in-memory intake.Store. Wizards are copied through JSON so
// tests see the same isolation a real store gives. SaveFn, when set,
// replaces Save.
type Store struct {
	mu     sync.Mutex
	data   map[string][]byte
	SaveFn func(ctx context.Context, w *intake.Wizard) error
}

func New() *Store { return &Store{data: map[string][]byte{}} }

func (s *Store) Save(ctx context.Context, w *intake.Wizard) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, w)
	}
	b, err := json.Marshal(w)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = map[string][]byte{}
	}
	s.data[w.ID] = b
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*intake.Wizard, error) {
	s.mu.Lock()
	b, ok := s.data[id]
	s.mu.Unlock()
	if !ok {
		return nil, intake.ErrSessionNotFound
	}
	var w intake.Wizard
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}
