package pdf

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	ErrUnreadable = errors.New("unreadable pdf")
	ErrNoPages    = errors.New("pdf has no pages")

	readOnlyConfig sync.Once
)

// Inspector validates engine output with pdfcpu.
type Inspector struct{}

func NewInspector() *Inspector {
	// keep pdfcpu from creating a config dir under the service user's home
	readOnlyConfig.Do(api.DisableConfigDir)

	return &Inspector{}
}

func (i *Inspector) PageCount(rs io.ReadSeeker) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pages, err := api.PageCount(rs, conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	if pages < 1 {
		return 0, ErrNoPages
	}

	return pages, nil
}
