package headers

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNameRequired   = errors.New("headers: name is required")
	ErrIDRequired     = errors.New("headers: header id required")
	ErrContentInvalid = errors.New("headers: content failed schema validation")
	ErrHeaderNotFound = errors.New("headers: header not found")
	ErrNoActiveHeader = errors.New("headers: no active header configured")
)

// HeaderNotFoundError reports a missing header lookup.
type HeaderNotFoundError struct {
	Key string
}

func (e *HeaderNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return ErrHeaderNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrHeaderNotFound.Error(), e.Key)
}

func (e *HeaderNotFoundError) Unwrap() error {
	return ErrHeaderNotFound
}
