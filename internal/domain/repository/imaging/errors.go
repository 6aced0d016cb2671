package imaging

import "errors"

var (
	ErrUnrecognizedFormat = errors.New("unrecognized image format")
	ErrCorruptImage       = errors.New("corrupt image payload")
)
