package agent

import (
	"strings"

	"rental-intake/internal/domain/validation"
)

type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionRadio    QuestionType = "radio"
	QuestionCheckbox QuestionType = "checkbox"
	QuestionSelect   QuestionType = "select"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionRadio, QuestionCheckbox, QuestionSelect:
		return true
	}
	return false
}

// NeedsOptions is true for the choice types.
func (t QuestionType) NeedsOptions() bool {
	return t == QuestionRadio || t == QuestionCheckbox || t == QuestionSelect
}

const minChoiceOptions = 2

// ValidateQuestion applies the authoring rules checked before any add or
// update is persisted.
func ValidateQuestion(text string, typ QuestionType, options []string) error {
	v := validation.New("question")
	if validation.Blank(text) {
		v.Add("questionText", "please enter a question")
	}
	if !typ.Valid() {
		v.Add("type", "must be one of text, radio, checkbox, select")
	} else if typ.NeedsOptions() && len(options) < minChoiceOptions {
		v.Add("options", string(typ)+" questions need at least 2 options")
	}
	return v.Err()
}

// AddOption appends a trimmed option; blank input leaves the list as is.
func AddOption(options []string, option string) []string {
	option = strings.TrimSpace(option)
	if option == "" {
		return options
	}
	out := make([]string, 0, len(options)+1)
	return append(append(out, options...), option)
}

// RemoveOption drops the option at index i; out of range is a no-op.
func RemoveOption(options []string, i int) []string {
	if i < 0 || i >= len(options) {
		return options
	}
	out := make([]string, 0, len(options)-1)
	out = append(out, options[:i]...)
	return append(out, options[i+1:]...)
}

// CleanOptions trims and drops blank options, and clears them entirely for
// free-text questions.
func CleanOptions(typ QuestionType, options []string) []string {
	if !typ.NeedsOptions() {
		return nil
	}
	var out []string
	for _, o := range options {
		out = AddOption(out, o)
	}
	return out
}
