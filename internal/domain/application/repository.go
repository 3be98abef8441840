package application

import "context"

// Filter narrows listings. Zero values mean "any".
type Filter struct {
	AgentID string
	Status  Status
}

type Repository interface {
	Create(ctx context.Context, a *Application) error

	// Get by public application_id; ErrNotFound when missing or deleted
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)

	// Newest first
	List(ctx context.Context, f Filter) ([]Application, error)

	CountByStatus(ctx context.Context, agentID string) (map[Status]int64, error)

	// Update writes only the given columns; ErrNotFound when no row matched
	Update(ctx context.Context, applicationID string, fields map[string]any) error

	// Soft delete
	Delete(ctx context.Context, applicationID string) error
}
