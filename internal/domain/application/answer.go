package application

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CustomAnswer is the tenant's answer to one of the agent's custom
// questions. The question text and type are copied at submission so the
// record stays readable after the agent edits or deletes the question.
type CustomAnswer struct {
	QuestionID   string `json:"questionId"`
	QuestionText string `json:"questionText,omitempty"`
	QuestionType string `json:"questionType,omitempty"`
	Answer       Answer `json:"answer"`
}

// Answer holds either a single text value or, for multi-select questions,
// an ordered list of selected options. On the wire it is a JSON string or
// a JSON array respectively.
type Answer struct {
	Text     string
	Options  []string
	Multiple bool
}

func TextAnswer(s string) Answer { return Answer{Text: s} }

func ListAnswer(opts ...string) Answer {
	return Answer{Options: append([]string{}, opts...), Multiple: true}
}

// Empty reports whether nothing meaningful was answered.
func (a Answer) Empty() bool {
	if !a.Multiple {
		return strings.TrimSpace(a.Text) == ""
	}
	for _, o := range a.Options {
		if strings.TrimSpace(o) != "" {
			return false
		}
	}
	return true
}

func (a Answer) String() string {
	if a.Multiple {
		return strings.Join(a.Options, ", ")
	}
	return a.Text
}

// Toggle adds option when checked (if absent) or removes every occurrence
// when unchecked. The receiver is treated as a list answer.
func (a Answer) Toggle(option string, checked bool) Answer {
	out := Answer{Multiple: true, Options: make([]string, 0, len(a.Options)+1)}
	present := false
	for _, o := range a.Options {
		if o == option {
			present = true
			if !checked {
				continue
			}
		}
		out.Options = append(out.Options, o)
	}
	if checked && !present {
		out.Options = append(out.Options, option)
	}
	return out
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multiple {
		opts := a.Options
		if opts == nil {
			opts = []string{}
		}
		return json.Marshal(opts)
	}
	return json.Marshal(a.Text)
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*a = Answer{}
		return nil
	case b[0] == '[':
		var opts []string
		if err := json.Unmarshal(b, &opts); err != nil {
			return fmt.Errorf("answer list: %w", err)
		}
		*a = ListAnswer(opts...)
		return nil
	default:
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("answer text: %w", err)
		}
		*a = TextAnswer(s)
		return nil
	}
}
