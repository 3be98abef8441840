package http

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"rental-intake/internal/domain/agent"
	"rental-intake/internal/domain/application"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report fields by their json name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("appstatus", func(fl validator.FieldLevel) bool {
		return application.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("questiontype", func(fl validator.FieldLevel) bool {
		return agent.QuestionType(fl.Field().String()).Valid()
	})
	// already normalized: lowercase, digits and single dashes
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && agent.NormalizeSlug(s) == s
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "appstatus":
			out = append(out, FieldError{Field: field, Message: "must be one of pending, forwarded, rejected, approved, info-requested"})
		case "questiontype":
			out = append(out, FieldError{Field: field, Message: "must be one of text, radio, checkbox, select"})
		case "slug":
			out = append(out, FieldError{Field: field, Message: "may only contain lowercase letters, digits and dashes"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "hexcolor":
			out = append(out, FieldError{Field: field, Message: "must be a hex color like #1a2b3c"})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " characters"})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param() + " characters"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
