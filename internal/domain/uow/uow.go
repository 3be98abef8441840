package uow

import (
	"context"

	"rental-intake/internal/domain/agent"
	"rental-intake/internal/domain/application"
)

type Repos struct {
	Applications application.Repository
	Agents       agent.Repository
}

type UnitOfWork interface {
	// plain tx; fn's repos are bound to it
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
