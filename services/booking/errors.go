package booking

import "errors"

var (
	ErrForbidden       = errors.New("forbidden access")
	ErrInvalidID       = errors.New("invalid id")
	ErrBookingNotFound = errors.New("booking not found")
)
