package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse lists per-setting presence plus the overall status.
type HealthResponse struct {
	Status   string          `json:"status"`
	Settings map[string]bool `json:"settings"`
}

// HealthHandler reports whether the required configuration is present. It
// has no side effects and makes no upstream calls. A missing setting turns
// the overall status unhealthy and the response code 500.
func (s *Server) HealthHandler(c echo.Context) error {
	settings := s.cfg.Presence()

	status := "healthy"
	code := http.StatusOK
	for _, present := range settings {
		if !present {
			status = "unhealthy"
			code = http.StatusInternalServerError
			break
		}
	}

	return c.JSON(code, HealthResponse{Status: status, Settings: settings})
}
