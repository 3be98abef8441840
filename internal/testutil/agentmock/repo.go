package agentmock

import (
	"context"

	domain "rental-intake/internal/domain/agent"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Nil lookups report not found; nil writes succeed.
type Repo struct {
	CreateFn         func(ctx context.Context, a *domain.Agent) error
	GetByAgentIDFn   func(ctx context.Context, agentID string) (*domain.Agent, error)
	GetBySlugFn      func(ctx context.Context, slug string) (*domain.Agent, error)
	UpdateFn         func(ctx context.Context, agentID string, fields map[string]any) error
	CreateQuestionFn func(ctx context.Context, q *domain.CustomQuestion) error
	SaveQuestionFn   func(ctx context.Context, q *domain.CustomQuestion) error
	DeleteQuestionFn func(ctx context.Context, agentNumericID uint64, questionID string) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Agent) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAgentID(ctx context.Context, agentID string) (*domain.Agent, error) {
	if m.GetByAgentIDFn != nil {
		return m.GetByAgentIDFn(ctx, agentID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Agent, error) {
	if m.GetBySlugFn != nil {
		return m.GetBySlugFn(ctx, slug)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Update(ctx context.Context, agentID string, fields map[string]any) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, agentID, fields)
	}
	return nil
}

func (m *Repo) CreateQuestion(ctx context.Context, q *domain.CustomQuestion) error {
	if m.CreateQuestionFn != nil {
		return m.CreateQuestionFn(ctx, q)
	}
	return nil
}

func (m *Repo) SaveQuestion(ctx context.Context, q *domain.CustomQuestion) error {
	if m.SaveQuestionFn != nil {
		return m.SaveQuestionFn(ctx, q)
	}
	return nil
}

func (m *Repo) DeleteQuestion(ctx context.Context, agentNumericID uint64, questionID string) error {
	if m.DeleteQuestionFn != nil {
		return m.DeleteQuestionFn(ctx, agentNumericID, questionID)
	}
	return nil
}
