package locations

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCountryCodeInvalid = errors.New("locations: country code must be a two-letter iso code")
	ErrCityNameRequired   = errors.New("locations: city name is required")
	ErrCoordinateInvalid  = errors.New("locations: coordinate out of range")
	ErrEmailInvalid       = errors.New("locations: email is invalid")
	ErrIDRequired         = errors.New("locations: location id required")
	ErrLocationNotFound   = errors.New("locations: location not found")
	ErrReorderIncomplete  = errors.New("locations: reorder must list every location exactly once")
)

// LocationNotFoundError reports a missing location lookup.
type LocationNotFoundError struct {
	Key string
}

func (e *LocationNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return ErrLocationNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrLocationNotFound.Error(), e.Key)
}

func (e *LocationNotFoundError) Unwrap() error {
	return ErrLocationNotFound
}
