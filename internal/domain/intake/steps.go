package intake

import (
	"rental-intake/internal/domain/application"
	"rental-intake/internal/domain/validation"
)

type Step string

const (
	StepPersonal        Step = "personal"
	StepEmployment      Step = "employment"
	StepRentalHistory   Step = "rental-history"
	StepReferences      Step = "references"
	StepDocuments       Step = "documents"
	StepCustomQuestions Step = "custom-questions"
)

var baseSteps = []Step{StepPersonal, StepEmployment, StepRentalHistory, StepReferences, StepDocuments}

// Steps returns the wizard sequence. The custom-questions step exists only
// when the agent has configured at least one question.
func Steps(hasQuestions bool) []Step {
	out := make([]Step, 0, len(baseSteps)+1)
	out = append(out, baseSteps...)
	if hasQuestions {
		out = append(out, StepCustomQuestions)
	}
	return out
}

// StepError reports which step blocked advancement or submission.
type StepError struct {
	Step Step
	Err  *validation.Error
}

func (e *StepError) Error() string { return "step " + string(e.Step) + ": " + e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// StepProblems is the pure validator for one step.
func StepProblems(step Step, d Draft, questions []Question) []validation.FieldError {
	switch step {
	case StepPersonal:
		return d.PersonalInfo.Problems()
	case StepEmployment:
		return d.EmploymentInfo.Problems()
	case StepRentalHistory:
		return d.RentalHistory.Problems()
	case StepReferences:
		return application.ReferenceProblems(d.References)
	case StepDocuments:
		return nil
	case StepCustomQuestions:
		return answerProblems(d, questions)
	}
	return []validation.FieldError{{Field: "step", Message: "unknown step " + string(step)}}
}

func answerProblems(d Draft, questions []Question) []validation.FieldError {
	var out []validation.FieldError
	for _, q := range questions {
		if !q.Required {
			continue
		}
		if a, ok := d.answer(q.ID); !ok || a.Answer.Empty() {
			out = append(out, validation.FieldError{Field: "customAnswers." + q.ID, Message: "is required"})
		}
	}
	return out
}

// Validate returns a *StepError when the step's data is incomplete.
func Validate(step Step, d Draft, questions []Question) error {
	problems := StepProblems(step, d, questions)
	if len(problems) == 0 {
		return nil
	}
	return &StepError{Step: step, Err: &validation.Error{Scope: string(step), Fields: problems}}
}

// ValidateAll checks steps in order and reports the first failing one.
func ValidateAll(steps []Step, d Draft, questions []Question) error {
	for _, s := range steps {
		if err := Validate(s, d, questions); err != nil {
			return err
		}
	}
	return nil
}
