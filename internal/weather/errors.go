package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports bad caller arguments such as a blank place name.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataUnavailable reports an upstream body that is malformed or lacks a required field.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrNotFound is returned by Lookup when geocoding matched nothing.
	// GeoClient itself reports that outcome as a nil result, not an error.
	ErrNotFound = errors.New("place not found")
)

// ServiceError is returned when an upstream API answers with a non-200 status.
type ServiceError struct {
	Service    string
	StatusCode int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service returned status %d", e.Service, e.StatusCode)
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
