package handler

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"docgate/internal/application/usecase/abstraction"
	"docgate/internal/domain/dto"
	"docgate/internal/domain/model"
	"docgate/internal/presentation"
	"docgate/pkg/logger"
)

type ConvertHandler struct {
	converter abstraction.Converter
}

func NewConvertHandler(converter abstraction.Converter) *ConvertHandler {
	return &ConvertHandler{
		converter: converter,
	}
}

// HandleConvert handles POST /converter-pdf requests. The token is checked
// before the body is read.
func (h *ConvertHandler) HandleConvert(c echo.Context) error {
	token, _ := c.Get(presentation.KeyToken).(string)

	if err := h.converter.Authorize(c.Request().Context(), token); err != nil {
		return conversionFailure(c, err)
	}

	blob, err := readUpload(c)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.JSON(http.StatusBadRequest, dto.ConversionError{Error: errNoFile.Error()})
	}

	artifact, err := h.converter.Convert(c.Request().Context(), blob, token)
	if err != nil {
		return conversionFailure(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, attachment(blob.Filename))
	c.Response().Header().Set(presentation.PageCountHeader, strconv.Itoa(artifact.Pages))

	return c.Blob(http.StatusOK, artifact.ContentType, artifact.Data)
}

func conversionFailure(c echo.Context, err error) error {
	var classified *model.Error
	if !errors.As(err, &classified) {
		logger.Error("unclassified conversion failure", "err", err)
		classified = model.NewError(model.KindInternal, "internal error", err)
	}

	reason := classified.Reason
	if reason == "" {
		reason = string(classified.Kind)
	}
	c.Response().Header().Set(presentation.ReasonTag, reason)

	return c.JSON(classified.Kind.HTTPStatus(), dto.ConversionError{
		Error:  classified.Message,
		Reason: classified.Reason,
	})
}

// attachment names the download after the upload, with a .pdf extension.
func attachment(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".pdf"

	return mime.FormatMediaType("attachment", map[string]string{"filename": name})
}
