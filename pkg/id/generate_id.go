package id

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 lowercase hex characters (a random UUID without dashes).
func NewID32() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
