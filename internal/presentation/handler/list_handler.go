package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"docgate/internal/application/usecase/abstraction"
	"docgate/internal/presentation"
)

type ListHandler struct {
	lister abstraction.Lister
}

func NewListHandler(lister abstraction.Lister) *ListHandler {
	return &ListHandler{
		lister: lister,
	}
}

// HandleList handles GET /historico requests.
func (h *ListHandler) HandleList(c echo.Context) error {
	since, err := parseTimeQueryParam(c, "since")
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	until, err := parseTimeQueryParam(c, "until")
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	limit, err := parseLimitQueryParam(c)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	records, status, err := h.lister.ListHistory(c.Request().Context(), c.QueryParam(presentation.OperationParam),
		since, until, limit)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(status)
	}

	return c.JSON(http.StatusOK, records)
}

// parseTimeQueryParam reads a unix seconds query parameter; absent is nil.
func parseTimeQueryParam(c echo.Context, paramName string) (*time.Time, error) {
	raw := c.QueryParam(paramName)
	if raw == "" {
		return nil, nil //nolint
	}

	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid '%s' timestamp", paramName)
	}

	at := time.Unix(seconds, 0).UTC()

	return &at, nil
}

func parseLimitQueryParam(c echo.Context) (int64, error) {
	raw := c.QueryParam(presentation.LimitParam)
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("invalid '%s'", presentation.LimitParam)
	}

	return limit, nil
}
