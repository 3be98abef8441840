package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-intake/internal/adapter/middleware"
	"rental-intake/internal/usecase/agent"
)

type AgentHandler struct {
	uc  *agent.Usecase
	log *zap.Logger
}

func NewAgentHandler(uc *agent.Usecase, log *zap.Logger) *AgentHandler {
	return &AgentHandler{uc: uc, log: log}
}

func (h *AgentHandler) CreateProfile(c echo.Context) error {
	var req agent.CreateInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CreateProfile(c.Request().Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AgentHandler) GetProfile(c echo.Context) error {
	dto, err := h.uc.GetProfile(c.Request().Context(), middleware.AgentID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgentHandler) UpdateProfile(c echo.Context) error {
	var req agent.ProfilePatch
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.UpdateProfile(c.Request().Context(), middleware.AgentID(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// PublicProfile is the branding a tenant sees on /apply/:slug.
func (h *AgentHandler) PublicProfile(c echo.Context) error {
	dto, err := h.uc.GetPublicProfile(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
