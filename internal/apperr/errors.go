package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidKind   = errors.New("invalid annotation kind")
	ErrExtraction    = errors.New("extraction failed")
	ErrSaveFailed    = errors.New("save failed")
)
