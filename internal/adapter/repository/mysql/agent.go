package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "rental-intake/internal/domain/agent"
)

type AgentRepository struct{ db *gorm.DB }

func NewAgentRepository(db *gorm.DB) *AgentRepository { return &AgentRepository{db: db} }

func orderedQuestions(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }

// translate maps a unique-index violation to ErrSlugTaken; agent_id and
// question_id are generated, so url_slug is the only one callers can hit.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrSlugTaken
	}
	return err
}

func (r *AgentRepository) Create(ctx context.Context, a *domain.Agent) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *AgentRepository) getBy(ctx context.Context, col, val string) (*domain.Agent, error) {
	var out domain.Agent
	err := r.db.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		Where(col+" = ?", val).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AgentRepository) GetByAgentID(ctx context.Context, agentID string) (*domain.Agent, error) {
	return r.getBy(ctx, "agent_id", agentID)
}

func (r *AgentRepository) GetBySlug(ctx context.Context, slug string) (*domain.Agent, error) {
	return r.getBy(ctx, "url_slug", slug)
}

func (r *AgentRepository) Update(ctx context.Context, agentID string, fields map[string]any) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&domain.Agent{}).Where("agent_id = ?", agentID).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := db.Model(&domain.Agent{}).Where("agent_id = ?", agentID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (r *AgentRepository) CreateQuestion(ctx context.Context, q *domain.CustomQuestion) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *AgentRepository) SaveQuestion(ctx context.Context, q *domain.CustomQuestion) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *AgentRepository) DeleteQuestion(ctx context.Context, agentNumericID uint64, questionID string) error {
	res := r.db.WithContext(ctx).
		Where("agent_id = ? AND question_id = ?", agentNumericID, questionID).
		Delete(&domain.CustomQuestion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}
