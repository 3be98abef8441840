// Package intake holds the tenant application wizard: the step sequence,
// the per-step validators and the draft it accumulates.
package intake

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-intake/internal/domain/agent"
	"rental-intake/internal/domain/application"
	"rental-intake/internal/domain/document"
)

var (
	ErrComplete        = errors.New("application already submitted")
	ErrUnknownQuestion = errors.New("unknown custom question")
	ErrInvalidOption   = errors.New("option not offered by question")
	ErrWrongAnswerKind = errors.New("answer kind does not match question type")
)

// Wizard is one tenant's pass through the form. It is stored between
// requests; all methods are pure state changes.
type Wizard struct {
	ID          string `json:"id"`
	AgentID     string `json:"agentId"`
	AgentSlug   string `json:"agentSlug"`
	Placeholder bool   `json:"placeholder,omitempty"`

	Questions []Question `json:"questions"`
	Steps     []Step     `json:"steps"`
	Index     int        `json:"index"`
	Draft     Draft      `json:"draft"`

	Complete      bool   `json:"complete"`
	ApplicationID string `json:"applicationId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New builds a wizard on the first step. The step list is fixed here from
// the question snapshot.
func New(id, agentID, slug string, questions []Question, now time.Time) *Wizard {
	return &Wizard{
		ID:        id,
		AgentID:   agentID,
		AgentSlug: slug,
		Questions: questions,
		Steps:     Steps(len(questions) > 0),
		Draft:     NewDraft(questions),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (w *Wizard) CurrentStep() Step { return w.Steps[w.Index] }

func (w *Wizard) IsLastStep() bool { return w.Index == len(w.Steps)-1 }

func (w *Wizard) IsCurrentStepValid() bool {
	return len(StepProblems(w.CurrentStep(), w.Draft, w.Questions)) == 0
}

// Advance moves to the next step when the current one validates. On the
// last step it reports submit=true and stays put; the caller then commits
// the draft and calls MarkSubmitted.
func (w *Wizard) Advance() (submit bool, err error) {
	if w.Complete {
		return false, ErrComplete
	}
	if err := Validate(w.CurrentStep(), w.Draft, w.Questions); err != nil {
		return false, err
	}
	if w.IsLastStep() {
		return true, nil
	}
	w.Index++
	return false, nil
}

// Retreat goes back one step without validating.
func (w *Wizard) Retreat() bool {
	if w.Complete || w.Index == 0 {
		return false
	}
	w.Index--
	return true
}

// Adopt rebinds a placeholder wizard to the real agent once it resolves.
// If that agent has questions the custom-questions step is appended and
// becomes the current step.
func (w *Wizard) Adopt(agentID string, questions []Question) {
	w.AgentID = agentID
	w.Placeholder = false
	if len(questions) == 0 {
		return
	}
	w.Questions = questions
	w.Steps = Steps(true)
	w.Index = len(w.Steps) - 1
	w.Draft.AlignAnswers(questions)
}

func (w *Wizard) MarkSubmitted(applicationID string) {
	w.Complete = true
	w.ApplicationID = applicationID
}

func (w *Wizard) AddReference() error {
	if w.Complete {
		return ErrComplete
	}
	w.Draft.References = append(w.Draft.References, application.Reference{})
	return nil
}

// RemoveReference deletes entry i. The list never drops below one entry.
func (w *Wizard) RemoveReference(i int) (bool, error) {
	if w.Complete {
		return false, ErrComplete
	}
	refs := w.Draft.References
	if len(refs) <= 1 || i < 0 || i >= len(refs) {
		return false, nil
	}
	out := make([]application.Reference, 0, len(refs)-1)
	out = append(out, refs[:i]...)
	w.Draft.References = append(out, refs[i+1:]...)
	return true, nil
}

func (w *Wizard) question(id string) (Question, error) {
	for _, q := range w.Questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
}

// SetAnswer records a single-valued answer. Radio and select answers must
// be one of the offered options; an empty value clears the answer.
func (w *Wizard) SetAnswer(questionID, value string) error {
	if w.Complete {
		return ErrComplete
	}
	q, err := w.question(questionID)
	if err != nil {
		return err
	}
	switch q.Type {
	case agent.QuestionCheckbox:
		return fmt.Errorf("%w: %s takes options", ErrWrongAnswerKind, questionID)
	case agent.QuestionRadio, agent.QuestionSelect:
		if value != "" && !q.hasOption(value) {
			return fmt.Errorf("%w: %q", ErrInvalidOption, value)
		}
	}
	w.Draft.setAnswer(questionID, application.TextAnswer(value))
	return nil
}

// ToggleOption checks or unchecks one option of a checkbox question.
func (w *Wizard) ToggleOption(questionID, option string, checked bool) error {
	if w.Complete {
		return ErrComplete
	}
	q, err := w.question(questionID)
	if err != nil {
		return err
	}
	if q.Type != agent.QuestionCheckbox {
		return fmt.Errorf("%w: %s takes a single value", ErrWrongAnswerKind, questionID)
	}
	if !q.hasOption(option) {
		return fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}
	cur, _ := w.Draft.answer(questionID)
	w.Draft.setAnswer(questionID, cur.Answer.Toggle(option, checked))
	return nil
}

// ApplyAnswer sets a whole answer at once. Checkbox questions also
// accept the comma-joined text form.
func (w *Wizard) ApplyAnswer(questionID string, a application.Answer) error {
	if w.Complete {
		return ErrComplete
	}
	q, err := w.question(questionID)
	if err != nil {
		return err
	}
	if q.Type != agent.QuestionCheckbox {
		if a.Multiple {
			return fmt.Errorf("%w: %s takes a single value", ErrWrongAnswerKind, questionID)
		}
		return w.SetAnswer(questionID, a.Text)
	}
	opts := a.Options
	if !a.Multiple {
		opts = splitJoined(a.Text)
	}
	ans := application.ListAnswer()
	for _, o := range opts {
		if !q.hasOption(o) {
			return fmt.Errorf("%w: %q", ErrInvalidOption, o)
		}
		ans = ans.Toggle(o, true)
	}
	w.Draft.setAnswer(questionID, ans)
	return nil
}

func splitJoined(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetDocuments replaces the attached documents after checking them
// against the upload constraints.
func (w *Wizard) SetDocuments(docs []document.Document, c document.Constraints) error {
	if w.Complete {
		return ErrComplete
	}
	if err := c.Check(docs); err != nil {
		return err
	}
	w.Draft.Documents = append([]document.Document{}, docs...)
	return nil
}

func (w *Wizard) MergeDraft(p DraftPatch) error {
	if w.Complete {
		return ErrComplete
	}
	w.Draft.merge(p)
	return nil
}
