package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-intake/internal/adapter/middleware"
	"rental-intake/internal/usecase/question"
)

type QuestionHandler struct {
	uc  *question.Usecase
	log *zap.Logger
}

func NewQuestionHandler(uc *question.Usecase, log *zap.Logger) *QuestionHandler {
	return &QuestionHandler{uc: uc, log: log}
}

func (h *QuestionHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), middleware.AgentID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *QuestionHandler) Add(c echo.Context) error {
	var req question.Input
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Add(c.Request().Context(), middleware.AgentID(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *QuestionHandler) Update(c echo.Context) error {
	var req question.Input
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), middleware.AgentID(c), c.Param("questionId"), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *QuestionHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.AgentID(c), c.Param("questionId")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
