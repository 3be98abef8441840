package http

import (
	"github.com/labstack/echo/v4"

	"rental-intake/internal/adapter/middleware"
	"rental-intake/internal/infrastructure/metrics"
)

type Handlers struct {
	Health       *Handler
	Agents       *AgentHandler
	Questions    *QuestionHandler
	Applications *ApplicationHandler
	Intake       *IntakeHandler
}

// RegisterRoutes wires every endpoint. once guards the routes that create
// records or decide on them; it may be nil.
func RegisterRoutes(e *echo.Echo, h Handlers, once echo.MiddlewareFunc) {
	var guarded []echo.MiddlewareFunc
	if once != nil {
		guarded = append(guarded, once)
	}

	e.GET("/healthz", h.Health.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	e.POST("/agents", h.Agents.CreateProfile, guarded...)

	me := e.Group("/agents/me", middleware.RequireAgent())
	me.GET("", h.Agents.GetProfile)
	me.PATCH("", h.Agents.UpdateProfile)
	me.GET("/questions", h.Questions.List)
	me.POST("/questions", h.Questions.Add, guarded...)
	me.PUT("/questions/:questionId", h.Questions.Update)
	me.DELETE("/questions/:questionId", h.Questions.Delete)

	apps := e.Group("/applications", middleware.RequireAgent())
	apps.GET("", h.Applications.List)
	apps.GET("/stats", h.Applications.Stats)
	apps.GET("/:id", h.Applications.Get)
	apps.PATCH("/:id", h.Applications.Patch)
	apps.POST("/:id/status", h.Applications.UpdateStatus, guarded...)
	apps.DELETE("/:id", h.Applications.Delete)

	e.GET("/apply/:slug", h.Agents.PublicProfile)
	e.POST("/apply/:slug", h.Intake.Submit, guarded...)
	e.POST("/apply/:slug/wizard", h.Intake.Start)

	wz := e.Group("/wizards/:id")
	wz.GET("", h.Intake.Get)
	wz.DELETE("", h.Intake.Discard)
	wz.PATCH("/draft", h.Intake.PatchDraft)
	wz.POST("/references", h.Intake.AddReference)
	wz.DELETE("/references/:index", h.Intake.RemoveReference)
	wz.PUT("/answers/:questionId", h.Intake.SetAnswer)
	wz.POST("/answers/:questionId/toggle", h.Intake.ToggleOption)
	wz.PUT("/documents", h.Intake.SetDocuments)
	wz.POST("/advance", h.Intake.Advance, guarded...)
	wz.POST("/retreat", h.Intake.Retreat)

	e.GET("/landlord/:id", h.Applications.LandlordView)
	e.POST("/landlord/:id/decision", h.Applications.Decide, guarded...)
	e.GET("/status/:id", h.Applications.TenantStatus)
}
