package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-intake/internal/domain/document"
	domain "rental-intake/internal/domain/intake"
	"rental-intake/internal/usecase/intake"
)

type IntakeHandler struct {
	uc  *intake.Usecase
	log *zap.Logger
}

func NewIntakeHandler(uc *intake.Usecase, log *zap.Logger) *IntakeHandler {
	return &IntakeHandler{uc: uc, log: log}
}

type answerReq struct {
	Value string `json:"value"`
}

type toggleReq struct {
	Option  string `json:"option" validate:"required"`
	Checked bool   `json:"checked"`
}

type documentsReq struct {
	Documents []document.Document `json:"documents"`
}

func (h *IntakeHandler) reply(c echo.Context, code int, dto *intake.WizardDTO, err error) error {
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(code, dto)
}

// Submit takes a whole draft in one request.
func (h *IntakeHandler) Submit(c echo.Context) error {
	var req domain.Draft
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.SubmitDraft(c.Request().Context(), c.Param("slug"), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *IntakeHandler) Start(c echo.Context) error {
	dto, err := h.uc.Start(c.Request().Context(), c.Param("slug"))
	return h.reply(c, http.StatusCreated, dto, err)
}

func (h *IntakeHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	return h.reply(c, http.StatusOK, dto, err)
}

func (h *IntakeHandler) PatchDraft(c echo.Context) error {
	var req domain.DraftPatch
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.PatchDraft(c.Request().Context(), c.Param("id"), req)
	return h.reply(c, http.StatusOK, dto, err)
}

func (h *IntakeHandler) AddReference(c echo.Context) error {
	dto, err := h.uc.AddReference(c.Request().Context(), c.Param("id"))
	return h.reply(c, http.StatusOK, dto, err)
}

func (h *IntakeHandler) RemoveReference(c echo.Context) error {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "index must be an integer"})
	}
	dto, err := h.uc.RemoveReference(c.Request().Context(), c.Param("id"), i)
	return h.reply(c, http.StatusOK, dto, err)
}

func (h *IntakeHandler) SetAnswer(c echo.Context) error {
	var req answerReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.SetAnswer(c.Request().Context(), c.Param("id"), c.Param("questionId"), req.Value)
	return h.reply(c, http.StatusOK, dto, err)
}

func (h *IntakeHandler) ToggleOption(c echo.Context) error {
	var req toggleReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.ToggleOption(c.Request().Context(), c.Param("id"), c.Param("questionId"), req.Option, req.Checked)
	return h.reply(c, http.StatusOK, dto, err)
}

func (h *IntakeHandler) SetDocuments(c echo.Context) error {
	var req documentsReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.SetDocuments(c.Request().Context(), c.Param("id"), req.Documents)
	return h.reply(c, http.StatusOK, dto, err)
}

// Advance answers 201 when the move submitted the application.
func (h *IntakeHandler) Advance(c echo.Context) error {
	dto, err := h.uc.Advance(c.Request().Context(), c.Param("id"))
	if err == nil && dto.Application != nil {
		return c.JSON(http.StatusCreated, dto)
	}
	return h.reply(c, http.StatusOK, dto, err)
}

func (h *IntakeHandler) Retreat(c echo.Context) error {
	dto, err := h.uc.Retreat(c.Request().Context(), c.Param("id"))
	return h.reply(c, http.StatusOK, dto, err)
}

func (h *IntakeHandler) Discard(c echo.Context) error {
	if err := h.uc.Discard(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
