package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_SelectsDB(t *testing.T) {
	s := miniredis.RunT(t)

	c, err := OpenRedis(s.Addr(), 2)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 2 {
		t.Fatalf("client DB = %d, want 2", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.Set(ctx, "wizard:probe", "1", time.Minute).Err(); err != nil {
		t.Fatalf("SET err: %v", err)
	}
	s.Select(2)
	if !s.Exists("wizard:probe") {
		t.Fatal("key not written to db 2")
	}
}

func TestOpenRedis_Unreachable(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	if _, err := OpenRedis(addr, 0); err == nil {
		t.Fatal("expected error, got nil")
	}
}
