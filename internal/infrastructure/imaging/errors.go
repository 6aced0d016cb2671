package imaging

import repository "docgate/internal/domain/repository/imaging"

var (
	ErrUnrecognizedFormat = repository.ErrUnrecognizedFormat
	ErrCorruptImage       = repository.ErrCorruptImage
)
