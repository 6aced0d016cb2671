package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"docgate/internal/application/usecase/abstraction"
	"docgate/internal/domain/dto"
	"docgate/internal/domain/model"
	"docgate/internal/presentation"
)

type ExtractHandler struct {
	extractor abstraction.Extractor
}

func NewExtractHandler(extractor abstraction.Extractor) *ExtractHandler {
	return &ExtractHandler{
		extractor: extractor,
	}
}

// HandleExtract handles POST /extrair-dados requests.
func (h *ExtractHandler) HandleExtract(c echo.Context) error {
	blob, err := readUpload(c)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.JSON(http.StatusBadRequest, dto.FieldsResponse{Error: "Arquivo não enviado"})
	}

	fields, err := h.extractor.Extract(c.Request().Context(), blob)
	if err != nil {
		status, message := http.StatusInternalServerError, "internal error"

		var classified *model.Error
		if errors.As(err, &classified) {
			status, message = classified.Kind.HTTPStatus(), classified.Message
			c.Response().Header().Set(presentation.ReasonTag, string(classified.Kind))
		}

		return c.JSON(status, dto.FieldsResponse{Error: message})
	}

	return c.JSON(http.StatusOK, dto.FieldsResponse{
		OK:   true,
		Name: fields.Name,
		Type: fields.Type,
		Text: fields.Text,
	})
}
