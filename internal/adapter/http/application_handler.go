package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-intake/internal/adapter/middleware"
	"rental-intake/internal/usecase/application"
)

// ApplicationHandler serves the agent dashboard plus the public landlord
// and tenant links.
type ApplicationHandler struct {
	uc  *application.Usecase
	log *zap.Logger
}

func NewApplicationHandler(uc *application.Usecase, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, log: log}
}

type statusReq struct {
	Status string  `json:"status" validate:"required,appstatus"`
	Note   *string `json:"note" validate:"omitempty,max=2000"`
}

func (h *ApplicationHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), application.ListInput{
		AgentID: middleware.AgentID(c),
		Status:  c.QueryParam("status"),
		Search:  c.QueryParam("search"),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) Stats(c echo.Context) error {
	out, err := h.uc.Stats(c.Request().Context(), middleware.AgentID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	dto, err := h.uc.GetForAgent(c.Request().Context(), middleware.AgentID(c), c.Param("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Patch(c echo.Context) error {
	var req application.Patch
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), middleware.AgentID(c), c.Param("id"), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), application.UpdateStatusInput{
		AgentID:       middleware.AgentID(c),
		ApplicationID: c.Param("id"),
		Status:        req.Status,
		Note:          req.Note,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.AgentID(c), c.Param("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LandlordView is the read-only landlord link.
func (h *ApplicationHandler) LandlordView(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Decide(c echo.Context) error {
	var req statusReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Decide(c.Request().Context(), application.DecideInput{
		ApplicationID: c.Param("id"),
		Status:        req.Status,
		Note:          req.Note,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) TenantStatus(c echo.Context) error {
	dto, err := h.uc.TenantStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
