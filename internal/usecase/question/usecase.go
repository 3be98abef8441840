package question

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	domain "rental-intake/internal/domain/agent"
	"rental-intake/pkg/id"
)

// Usecase manages an agent's custom questions. Every write is validated
// first; nothing invalid reaches the repository.
type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) List(ctx context.Context, agentID string) ([]DTO, error) {
	a, err := u.repo.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return ToDTOs(a.Questions), nil
}

func prepare(in Input) (text string, typ domain.QuestionType, opts []string, err error) {
	text = strings.TrimSpace(in.QuestionText)
	typ = domain.QuestionType(strings.ToLower(strings.TrimSpace(in.Type)))
	opts = domain.CleanOptions(typ, in.Options)
	err = domain.ValidateQuestion(text, typ, opts)
	return
}

func (u *Usecase) Add(ctx context.Context, agentID string, in Input) (*DTO, error) {
	text, typ, opts, err := prepare(in)
	if err != nil {
		return nil, err
	}
	a, err := u.repo.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	pos := 0
	for _, q := range a.Questions {
		if q.Position >= pos {
			pos = q.Position + 1
		}
	}
	q := &domain.CustomQuestion{
		QuestionID:   id.NewID32(),
		AgentID:      a.ID,
		Position:     pos,
		QuestionText: text,
		Required:     in.Required,
		Type:         typ,
		Options:      datatypes.JSONSlice[string](opts),
	}
	if err := u.repo.CreateQuestion(ctx, q); err != nil {
		return nil, err
	}
	out := ToDTO(q)
	return &out, nil
}

func (u *Usecase) Update(ctx context.Context, agentID, questionID string, in Input) (*DTO, error) {
	text, typ, opts, err := prepare(in)
	if err != nil {
		return nil, err
	}
	a, err := u.repo.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	q, ok := a.Question(questionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
	}

	q.QuestionText = text
	q.Required = in.Required
	q.Type = typ
	q.Options = datatypes.JSONSlice[string](opts)
	if err := u.repo.SaveQuestion(ctx, q); err != nil {
		return nil, err
	}
	out := ToDTO(q)
	return &out, nil
}

// Delete does not look at existing applications; their answers carry a
// copy of the question text.
func (u *Usecase) Delete(ctx context.Context, agentID, questionID string) error {
	a, err := u.repo.GetByAgentID(ctx, agentID)
	if err != nil {
		return err
	}
	if _, ok := a.Question(questionID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
	}
	return u.repo.DeleteQuestion(ctx, a.ID, questionID)
}
