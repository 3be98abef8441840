package agent

import "context"

type Repository interface {
	Create(ctx context.Context, a *Agent) error

	// Lookups preload questions ordered by position; ErrNotFound when missing
	GetByAgentID(ctx context.Context, agentID string) (*Agent, error)
	GetBySlug(ctx context.Context, slug string) (*Agent, error)

	// Update writes only the given profile columns
	Update(ctx context.Context, agentID string, fields map[string]any) error

	CreateQuestion(ctx context.Context, q *CustomQuestion) error
	SaveQuestion(ctx context.Context, q *CustomQuestion) error
	// DeleteQuestion is scoped to the owning agent's numeric id
	DeleteQuestion(ctx context.Context, agentNumericID uint64, questionID string) error
}
