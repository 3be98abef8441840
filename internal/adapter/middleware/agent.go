package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	HeaderAgentID = "Ax-Agent-Id"

	agentIDKey = "agent_id"
)

// RequireAgent trusts the Ax-Agent-Id header as the caller's identity and
// stores it on the context.
func RequireAgent() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(HeaderAgentID))
			if id == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing Ax-Agent-Id"})
			}
			if !reHex32.MatchString(id) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid Ax-Agent-Id"})
			}
			c.Set(agentIDKey, id)
			return next(c)
		}
	}
}

// AgentID returns the id stored by RequireAgent, or "".
func AgentID(c echo.Context) string {
	id, _ := c.Get(agentIDKey).(string)
	return id
}
