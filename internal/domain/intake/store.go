package intake

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("wizard session not found or expired")

// Store keeps wizards between requests. Get returns ErrSessionNotFound
// for unknown or expired ids.
type Store interface {
	Save(ctx context.Context, w *Wizard) error
	Get(ctx context.Context, id string) (*Wizard, error)
	Delete(ctx context.Context, id string) error
}
