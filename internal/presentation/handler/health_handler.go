package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	engineProbe func() error
}

// NewHealthHandler reports liveness; engineProbe, when set, adds the state of
// the conversion engine without failing the check.
func NewHealthHandler(engineProbe func() error) *HealthHandler {
	return &HealthHandler{
		engineProbe: engineProbe,
	}
}

// HandleHealth handles GET /health requests.
func (h *HealthHandler) HandleHealth(c echo.Context) error {
	body := map[string]string{"status": "ok"}

	if h.engineProbe != nil {
		body["engine"] = "available"
		if err := h.engineProbe(); err != nil {
			body["engine"] = "unavailable"
		}
	}

	return c.JSON(http.StatusOK, body)
}
