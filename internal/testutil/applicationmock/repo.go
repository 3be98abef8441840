package applicationmock

import (
	"context"

	domain "rental-intake/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Nil query funcs report not found; nil writes succeed.
type Repo struct {
	CreateFn             func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	ListFn               func(ctx context.Context, f domain.Filter) ([]domain.Application, error)
	CountByStatusFn      func(ctx context.Context, agentID string) (map[domain.Status]int64, error)
	UpdateFn             func(ctx context.Context, applicationID string, fields map[string]any) error
	DeleteFn             func(ctx context.Context, applicationID string) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Application, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) CountByStatus(ctx context.Context, agentID string) (map[domain.Status]int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, agentID)
	}
	return map[domain.Status]int64{}, nil
}

func (m *Repo) Update(ctx context.Context, applicationID string, fields map[string]any) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, applicationID, fields)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, applicationID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, applicationID)
	}
	return nil
}
