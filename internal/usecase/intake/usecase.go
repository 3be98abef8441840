package intake

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"rental-intake/internal/domain/document"
	domain "rental-intake/internal/domain/intake"
	"rental-intake/internal/infrastructure/metrics"
	agentuc "rental-intake/internal/usecase/agent"
	appuc "rental-intake/internal/usecase/application"
	"rental-intake/pkg/id"
)

// ErrAgentUnavailable: the wizard was started against a placeholder and
// the agent still cannot be resolved, so there is nobody to submit to.
var ErrAgentUnavailable = errors.New("agent profile unavailable, try again later")

type AgentResolver interface {
	ResolveForIntake(ctx context.Context, slug string) (*agentuc.Resolved, error)
}

type Submitter interface {
	Create(ctx context.Context, in appuc.CreateInput) (*appuc.ApplicationDTO, error)
}

type Usecase struct {
	agents      AgentResolver
	apps        Submitter
	store       domain.Store
	constraints document.Constraints
	log         *zap.Logger
	now         func() time.Time
}

func NewUsecase(agents AgentResolver, apps Submitter, store domain.Store, c document.Constraints, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{
		agents:      agents,
		apps:        apps,
		store:       store,
		constraints: c,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Start opens a wizard for the agent behind slug. The question set and
// therefore the step list are frozen here.
func (u *Usecase) Start(ctx context.Context, slug string) (*WizardDTO, error) {
	r, err := u.agents.ResolveForIntake(ctx, slug)
	if err != nil {
		return nil, err
	}
	w := domain.New(id.NewID32(), r.Agent.AgentID, r.Agent.URLSlug, domain.QuestionsFrom(r.Agent.Questions), u.now())
	w.Placeholder = r.Placeholder
	if err := u.store.Save(ctx, w); err != nil {
		return nil, err
	}
	return toDTO(w), nil
}

func (u *Usecase) Get(ctx context.Context, wizardID string) (*WizardDTO, error) {
	w, err := u.store.Get(ctx, wizardID)
	if err != nil {
		return nil, err
	}
	return toDTO(w), nil
}

// mutate loads, applies fn and saves. Nothing is saved when fn fails.
func (u *Usecase) mutate(ctx context.Context, wizardID string, fn func(w *domain.Wizard) error) (*WizardDTO, error) {
	w, err := u.store.Get(ctx, wizardID)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	w.UpdatedAt = u.now()
	if err := u.store.Save(ctx, w); err != nil {
		return nil, err
	}
	return toDTO(w), nil
}

func (u *Usecase) PatchDraft(ctx context.Context, wizardID string, p domain.DraftPatch) (*WizardDTO, error) {
	return u.mutate(ctx, wizardID, func(w *domain.Wizard) error { return w.MergeDraft(p) })
}

func (u *Usecase) AddReference(ctx context.Context, wizardID string) (*WizardDTO, error) {
	return u.mutate(ctx, wizardID, func(w *domain.Wizard) error { return w.AddReference() })
}

func (u *Usecase) RemoveReference(ctx context.Context, wizardID string, index int) (*WizardDTO, error) {
	return u.mutate(ctx, wizardID, func(w *domain.Wizard) error {
		_, err := w.RemoveReference(index)
		return err
	})
}

func (u *Usecase) SetAnswer(ctx context.Context, wizardID, questionID, value string) (*WizardDTO, error) {
	return u.mutate(ctx, wizardID, func(w *domain.Wizard) error { return w.SetAnswer(questionID, value) })
}

func (u *Usecase) ToggleOption(ctx context.Context, wizardID, questionID, option string, checked bool) (*WizardDTO, error) {
	return u.mutate(ctx, wizardID, func(w *domain.Wizard) error { return w.ToggleOption(questionID, option, checked) })
}

func (u *Usecase) SetDocuments(ctx context.Context, wizardID string, docs []document.Document) (*WizardDTO, error) {
	return u.mutate(ctx, wizardID, func(w *domain.Wizard) error { return w.SetDocuments(docs, u.constraints) })
}

func (u *Usecase) Retreat(ctx context.Context, wizardID string) (*WizardDTO, error) {
	return u.mutate(ctx, wizardID, func(w *domain.Wizard) error {
		w.Retreat()
		return nil
	})
}

// Advance validates the current step and moves on. On the last step it
// commits the draft; if that fails the wizard is left unchanged on the
// last step and the error is returned.
func (u *Usecase) Advance(ctx context.Context, wizardID string) (*WizardDTO, error) {
	w, err := u.store.Get(ctx, wizardID)
	if err != nil {
		return nil, err
	}
	step := w.CurrentStep()
	submit, err := w.Advance()
	if err != nil {
		metrics.WizardAdvance.WithLabelValues(string(step), "blocked").Inc()
		return nil, err
	}
	if !submit {
		metrics.WizardAdvance.WithLabelValues(string(step), "advanced").Inc()
		w.UpdatedAt = u.now()
		if err := u.store.Save(ctx, w); err != nil {
			return nil, err
		}
		return toDTO(w), nil
	}

	app, err := u.submitWizard(ctx, w)
	if err != nil {
		metrics.WizardAdvance.WithLabelValues(string(step), "failed").Inc()
		return nil, err
	}
	metrics.WizardAdvance.WithLabelValues(string(step), "submitted").Inc()

	w.MarkSubmitted(app.ApplicationID)
	w.UpdatedAt = u.now()
	if err := u.store.Save(ctx, w); err != nil {
		// the application exists; only the session is stale
		u.log.Warn("wizard session not updated after submit",
			zap.String("wizard_id", w.ID), zap.String("application_id", app.ApplicationID), zap.Error(err))
	}
	out := toDTO(w)
	out.Application = app
	return out, nil
}

func (u *Usecase) submitWizard(ctx context.Context, w *domain.Wizard) (*appuc.ApplicationDTO, error) {
	if w.Placeholder {
		r, err := u.agents.ResolveForIntake(ctx, w.AgentSlug)
		if err != nil {
			return nil, err
		}
		if r.Placeholder {
			return nil, ErrAgentUnavailable
		}
		w.Adopt(r.Agent.AgentID, domain.QuestionsFrom(r.Agent.Questions))
		if err := domain.Validate(w.CurrentStep(), w.Draft, w.Questions); err != nil {
			// keep the newly added questions so the tenant can answer them
			w.UpdatedAt = u.now()
			if saveErr := u.store.Save(ctx, w); saveErr != nil {
				return nil, saveErr
			}
			return nil, err
		}
	}
	return u.commit(ctx, w.AgentID, w.Steps, w.Draft, w.Questions)
}

func (u *Usecase) commit(ctx context.Context, agentID string, steps []domain.Step, d domain.Draft, qs []domain.Question) (*appuc.ApplicationDTO, error) {
	if err := domain.ValidateAll(steps, d, qs); err != nil {
		return nil, err
	}
	d.AlignAnswers(qs)
	return u.apps.Create(ctx, appuc.CreateInput{
		AgentID:        agentID,
		PersonalInfo:   d.PersonalInfo,
		EmploymentInfo: d.EmploymentInfo,
		RentalHistory:  d.RentalHistory,
		References:     d.References,
		Documents:      d.Documents,
		CustomAnswers:  d.CustomAnswers,
		Status:         d.Status,
	})
}

// SubmitDraft is the one-shot path: a whole draft in one request, every
// step validated in order.
func (u *Usecase) SubmitDraft(ctx context.Context, slug string, d domain.Draft) (*appuc.ApplicationDTO, error) {
	r, err := u.agents.ResolveForIntake(ctx, slug)
	if err != nil {
		return nil, err
	}
	if r.Placeholder {
		return nil, ErrAgentUnavailable
	}
	qs := domain.QuestionsFrom(r.Agent.Questions)

	// replay the draft through a wizard so option rules apply
	w := domain.New("", r.Agent.AgentID, r.Agent.URLSlug, qs, u.now())
	if err := w.MergeDraft(domain.DraftPatch{
		PersonalInfo:   &d.PersonalInfo,
		EmploymentInfo: &d.EmploymentInfo,
		RentalHistory:  &d.RentalHistory,
		References:     d.References,
	}); err != nil {
		return nil, err
	}
	for _, a := range d.CustomAnswers {
		if err := w.ApplyAnswer(a.QuestionID, a.Answer); err != nil {
			return nil, err
		}
	}
	if len(d.Documents) > 0 {
		if err := w.SetDocuments(d.Documents, u.constraints); err != nil {
			return nil, err
		}
	}
	w.Draft.Status = d.Status
	return u.commit(ctx, w.AgentID, w.Steps, w.Draft, w.Questions)
}

// Discard drops a wizard session.
func (u *Usecase) Discard(ctx context.Context, wizardID string) error {
	return u.store.Delete(ctx, wizardID)
}
