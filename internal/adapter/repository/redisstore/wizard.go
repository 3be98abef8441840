// Package redisstore keeps intake wizards in Redis as JSON with a sliding
// TTL.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rental-intake/internal/domain/intake"
)

const keyPrefix = "wizard:"

type WizardStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ intake.Store = (*WizardStore)(nil)

func NewWizardStore(rdb *redis.Client, ttl time.Duration) *WizardStore {
	return &WizardStore{rdb: rdb, ttl: ttl}
}

func key(id string) string { return keyPrefix + id }

// Save overwrites the session and restarts its TTL. Last write wins.
func (s *WizardStore) Save(ctx context.Context, w *intake.Wizard) error {
	b, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode wizard: %w", err)
	}
	return s.rdb.Set(ctx, key(w.ID), b, s.ttl).Err()
}

func (s *WizardStore) Get(ctx context.Context, id string) (*intake.Wizard, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, intake.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var w intake.Wizard
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("decode wizard %s: %w", id, err)
	}
	if len(w.Steps) == 0 || w.Index < 0 || w.Index >= len(w.Steps) {
		return nil, fmt.Errorf("decode wizard %s: step index %d out of range", id, w.Index)
	}
	return &w, nil
}

func (s *WizardStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, key(id)).Err()
}
