package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-intake/internal/domain/agent"
	"rental-intake/internal/domain/application"
	"rental-intake/internal/domain/intake"
	"rental-intake/internal/domain/validation"
	intakeuc "rental-intake/internal/usecase/intake"
)

// statusFor maps domain errors to HTTP codes. Anything unknown is a 500.
func statusFor(err error) int {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity
	case errors.Is(err, application.ErrNotFound),
		errors.Is(err, agent.ErrNotFound),
		errors.Is(err, agent.ErrQuestionNotFound),
		errors.Is(err, intake.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, agent.ErrSlugTaken),
		errors.Is(err, intake.ErrComplete),
		errors.Is(err, application.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, intake.ErrUnknownQuestion),
		errors.Is(err, intake.ErrInvalidOption),
		errors.Is(err, intake.ErrWrongAnswerKind):
		return http.StatusUnprocessableEntity
	case errors.Is(err, intakeuc.ErrAgentUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError renders err. Collaborator failures are logged and hidden.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method), zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}

	resp := ErrorResponse{Error: err.Error()}
	var ve *validation.Error
	if errors.As(err, &ve) {
		resp.Error = "validation failed"
		for _, f := range ve.Fields {
			resp.Details = append(resp.Details, FieldError{Field: f.Field, Message: f.Message})
		}
		var se *intake.StepError
		if errors.As(err, &se) {
			resp.Error = "step " + string(se.Step) + " is incomplete"
		}
	}
	return c.JSON(code, resp)
}

// bindAndValidate decodes the body into req and runs the struct validator.
// The returned error response has already been written when ok is false.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}
