package engine

import (
	"fmt"

	repository "docgate/internal/domain/repository/engine"
)

var (
	ErrEngineUnavailable = repository.ErrEngineUnavailable
	ErrEngineTimeout     = repository.ErrEngineTimeout
	ErrEngineCanceled    = repository.ErrEngineCanceled
	ErrEngineFailed      = repository.ErrEngineFailed
)

// ExitError reports a non-zero exit. Stderr is for diagnostics only.
type ExitError struct {
	Code   int
	Stderr string
	Stdout string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("conversion engine exited with code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return ErrEngineFailed
}
