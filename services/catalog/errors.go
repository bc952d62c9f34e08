package catalog

import "errors"

var (
	ErrInvalidID       = errors.New("invalid id")
	ErrServiceNotFound = errors.New("service not found")
)
