package intake

import (
	"rental-intake/internal/domain/agent"
	"rental-intake/internal/domain/application"
	"rental-intake/internal/domain/document"
)

// Question is the snapshot of an agent question taken when the wizard
// starts. Later edits by the agent do not change an open wizard.
type Question struct {
	ID       string             `json:"id"`
	Text     string             `json:"questionText"`
	Required bool               `json:"required"`
	Type     agent.QuestionType `json:"type"`
	Options  []string           `json:"options,omitempty"`
}

func QuestionsFrom(qs []agent.CustomQuestion) []Question {
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		out = append(out, Question{
			ID:       q.QuestionID,
			Text:     q.QuestionText,
			Required: q.Required,
			Type:     q.Type,
			Options:  append([]string(nil), q.Options...),
		})
	}
	return out
}

func (q Question) hasOption(opt string) bool {
	for _, o := range q.Options {
		if o == opt {
			return true
		}
	}
	return false
}

func (q Question) blankAnswer() application.Answer {
	if q.Type == agent.QuestionCheckbox {
		return application.ListAnswer()
	}
	return application.TextAnswer("")
}

// Draft accumulates the tenant's input across steps.
type Draft struct {
	PersonalInfo   application.PersonalInfo   `json:"personalInfo"`
	EmploymentInfo application.EmploymentInfo `json:"employmentInfo"`
	RentalHistory  application.RentalHistory  `json:"rentalHistory"`
	References     []application.Reference    `json:"references"`
	Documents      []document.Document        `json:"documents"`
	CustomAnswers  []application.CustomAnswer `json:"customAnswers"`
	// Ignored on submission; new records are always pending
	Status application.Status `json:"status,omitempty"`
}

// NewDraft starts with one empty reference and a blank answer per question.
func NewDraft(questions []Question) Draft {
	d := Draft{
		References: []application.Reference{{}},
		Documents:  []document.Document{},
	}
	d.CustomAnswers = make([]application.CustomAnswer, 0, len(questions))
	for _, q := range questions {
		d.CustomAnswers = append(d.CustomAnswers, application.CustomAnswer{QuestionID: q.ID, Answer: q.blankAnswer()})
	}
	return d
}

func (d Draft) answer(questionID string) (application.CustomAnswer, bool) {
	for _, a := range d.CustomAnswers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return application.CustomAnswer{}, false
}

func (d *Draft) setAnswer(questionID string, ans application.Answer) {
	for i := range d.CustomAnswers {
		if d.CustomAnswers[i].QuestionID == questionID {
			d.CustomAnswers[i].Answer = ans
			return
		}
	}
	d.CustomAnswers = append(d.CustomAnswers, application.CustomAnswer{QuestionID: questionID, Answer: ans})
}

// AlignAnswers rewrites custom answers to follow the question list: one
// entry per question in order, question text and type copied in, answers to
// unknown questions dropped.
func (d *Draft) AlignAnswers(questions []Question) {
	out := make([]application.CustomAnswer, 0, len(questions))
	for _, q := range questions {
		a, ok := d.answer(q.ID)
		if !ok {
			a.Answer = q.blankAnswer()
		}
		out = append(out, application.CustomAnswer{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			QuestionType: string(q.Type),
			Answer:       a.Answer,
		})
	}
	d.CustomAnswers = out
}

// DraftPatch carries partial section updates. Nil fields are left alone.
type DraftPatch struct {
	PersonalInfo   *application.PersonalInfo   `json:"personalInfo"`
	EmploymentInfo *application.EmploymentInfo `json:"employmentInfo"`
	RentalHistory  *application.RentalHistory  `json:"rentalHistory"`
	References     []application.Reference     `json:"references"`
}

func (d *Draft) merge(p DraftPatch) {
	if p.PersonalInfo != nil {
		d.PersonalInfo = *p.PersonalInfo
	}
	if p.EmploymentInfo != nil {
		d.EmploymentInfo = *p.EmploymentInfo
	}
	if p.RentalHistory != nil {
		d.RentalHistory = *p.RentalHistory
	}
	if p.References != nil {
		d.References = append([]application.Reference(nil), p.References...)
		if len(d.References) == 0 {
			d.References = []application.Reference{{}}
		}
	}
}
