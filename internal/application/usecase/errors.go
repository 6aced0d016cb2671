package usecase

import (
	"errors"

	"docgate/internal/domain/model"
)

func asError(err error) (*model.Error, bool) {
	var classified *model.Error
	if errors.As(err, &classified) {
		return classified, true
	}

	return nil, false
}

func internalError(message string, cause error) *model.Error {
	return model.NewError(model.KindInternal, message, cause)
}
