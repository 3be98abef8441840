package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "rental-intake/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	var out domain.Application
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ApplicationRepository) List(ctx context.Context, f domain.Filter) ([]domain.Application, error) {
	q := r.db.WithContext(ctx).Model(&domain.Application{})
	if f.AgentID != "" {
		q = q.Where("agent_id = ?", f.AgentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []domain.Application
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, agentID string) (map[domain.Status]int64, error) {
	var rows []struct {
		Status domain.Status
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Select("status, COUNT(*) AS n").
		Where("agent_id = ?", agentID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, applicationID string, fields map[string]any) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&domain.Application{}).Where("application_id = ?", applicationID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL reports 0 when values are unchanged; tell that apart from a miss
		return r.exists(db, applicationID)
	}
	return nil
}

func (r *ApplicationRepository) exists(db *gorm.DB, applicationID string) error {
	var n int64
	if err := db.Model(&domain.Application{}).Where("application_id = ?", applicationID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, applicationID string) error {
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).Delete(&domain.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
