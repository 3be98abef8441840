package question

import domain "rental-intake/internal/domain/agent"

type Input struct {
	QuestionText string   `json:"questionText" validate:"required,max=500"`
	Required     bool     `json:"required"`
	Type         string   `json:"type" validate:"required,questiontype"`
	Options      []string `json:"options" validate:"omitempty,dive,max=200"`
}

type DTO struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"questionText"`
	Required     bool     `json:"required"`
	Type         string   `json:"type"`
	Options      []string `json:"options"`
}

func ToDTO(q *domain.CustomQuestion) DTO {
	opts := []string(q.Options)
	if opts == nil {
		opts = []string{}
	}
	return DTO{ID: q.QuestionID, QuestionText: q.QuestionText, Required: q.Required, Type: string(q.Type), Options: opts}
}

func ToDTOs(qs []domain.CustomQuestion) []DTO {
	out := make([]DTO, 0, len(qs))
	for i := range qs {
		out = append(out, ToDTO(&qs[i]))
	}
	return out
}
