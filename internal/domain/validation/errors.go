// Package validation carries field-level problems out of the domain so the
// transport layer can render them without knowing the rules.
package validation

import "strings"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned whenever input fails a local rule. It never reaches
// the persistence layer.
type Error struct {
	Scope  string
	Fields []FieldError
}

func New(scope string) *Error { return &Error{Scope: scope} }

func (e *Error) Add(field, message string) *Error {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

func (e *Error) Empty() bool { return len(e.Fields) == 0 }

// Err returns nil when nothing was added, so callers can `return v.Err()`.
func (e *Error) Err() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Scope != "" {
		b.WriteString(e.Scope)
		b.WriteString(": ")
	}
	for i, f := range e.Fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Field)
		b.WriteString(" ")
		b.WriteString(f.Message)
	}
	return b.String()
}

// Blank reports whether s is empty after trimming whitespace.
func Blank(s string) bool { return strings.TrimSpace(s) == "" }
