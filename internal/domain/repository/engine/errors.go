package engine

import "errors"

var (
	ErrEngineUnavailable = errors.New("conversion engine unavailable")
	ErrEngineTimeout     = errors.New("conversion engine timed out")
	ErrEngineCanceled    = errors.New("conversion engine canceled")
	ErrEngineFailed      = errors.New("conversion engine failed")
)
