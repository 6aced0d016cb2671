package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"docgate/internal/application/usecase/abstraction"
	"docgate/internal/domain/dto"
	"docgate/internal/presentation"
	"docgate/pkg/logger"
)

type VerifyHandler struct {
	validator abstraction.Validator
}

func NewVerifyHandler(validator abstraction.Validator) *VerifyHandler {
	return &VerifyHandler{
		validator: validator,
	}
}

// HandleVerify handles POST /verificar-dpi requests.
func (h *VerifyHandler) HandleVerify(c echo.Context) error {
	blob, err := readUpload(c)
	if err != nil {
		if !errors.Is(err, errNoFile) {
			logger.Warn("unreadable upload", "err", err)
		}
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.JSON(http.StatusBadRequest, dto.VerdictResponse{Error: "Arquivo não enviado"})
	}

	verdict := h.validator.Validate(c.Request().Context(), blob)
	if verdict.Error != nil {
		c.Response().Header().Set(presentation.ReasonTag, string(verdict.Error.Kind))

		return c.JSON(verdict.Error.Kind.HTTPStatus(), dto.VerdictResponse{Error: verdict.Error.Message})
	}

	return c.JSON(http.StatusOK, dto.VerdictResponse{
		OK:     verdict.Accepted,
		DPIX:   verdict.DPIX,
		DPIY:   verdict.DPIY,
		Width:  verdict.WidthPx,
		Height: verdict.HeightPx,
	})
}
