package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"docgate/internal/domain/entity"
	"docgate/internal/presentation"
)

var errNoFile = errors.New("no file uploaded")

// readUpload loads the multipart field presentation.FileField. Only the
// base name of the client supplied file name is kept.
func readUpload(c echo.Context) (entity.UploadedBlob, error) {
	header, err := c.FormFile(presentation.FileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return entity.UploadedBlob{}, errNoFile
		}

		return entity.UploadedBlob{}, fmt.Errorf("read multipart form: %w", err)
	}

	file, err := header.Open()
	if err != nil {
		return entity.UploadedBlob{}, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return entity.UploadedBlob{}, fmt.Errorf("read upload: %w", err)
	}

	return entity.UploadedBlob{
		Filename: baseName(header.Filename),
		Data:     data,
	}, nil
}

func baseName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}

	return base
}
