package intake

import (
	"time"

	domain "rental-intake/internal/domain/intake"
	appuc "rental-intake/internal/usecase/application"
)

type WizardDTO struct {
	ID            string                `json:"id"`
	AgentSlug     string                `json:"agentSlug"`
	Placeholder   bool                  `json:"placeholder,omitempty"`
	Steps         []domain.Step         `json:"steps"`
	Index         int                   `json:"index"`
	CurrentStep   domain.Step           `json:"currentStep"`
	IsLastStep    bool                  `json:"isLastStep"`
	CanAdvance    bool                  `json:"canAdvance"`
	Questions     []domain.Question     `json:"questions"`
	Draft         domain.Draft          `json:"draft"`
	Complete      bool                  `json:"complete"`
	ApplicationID string                `json:"applicationId,omitempty"`
	Application   *appuc.ApplicationDTO `json:"application,omitempty"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func toDTO(w *domain.Wizard) *WizardDTO {
	qs := w.Questions
	if qs == nil {
		qs = []domain.Question{}
	}
	return &WizardDTO{
		ID:            w.ID,
		AgentSlug:     w.AgentSlug,
		Placeholder:   w.Placeholder,
		Steps:         w.Steps,
		Index:         w.Index,
		CurrentStep:   w.CurrentStep(),
		IsLastStep:    w.IsLastStep(),
		CanAdvance:    !w.Complete && w.IsCurrentStepValid(),
		Questions:     qs,
		Draft:         w.Draft,
		Complete:      w.Complete,
		ApplicationID: w.ApplicationID,
		UpdatedAt:     w.UpdatedAt,
	}
}
