package pages

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPathRequired        = errors.New("pages: path is required")
	ErrPathInvalid         = errors.New("pages: path contains invalid characters")
	ErrPathExists          = errors.New("pages: path already exists")
	ErrTitleRequired       = errors.New("pages: title is required")
	ErrPageIDRequired      = errors.New("pages: page id required")
	ErrComponentKeyUnknown = errors.New("pages: component key is not registered")
	ErrPageNotFound        = errors.New("pages: page not found")
)

// PageNotFoundError reports a missing page lookup by id or path.
type PageNotFoundError struct {
	Key string
}

func (e *PageNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return ErrPageNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrPageNotFound.Error(), e.Key)
}

func (e *PageNotFoundError) Unwrap() error {
	return ErrPageNotFound
}

// ComponentKeyError carries the offending key for save-time validation
// failures.
type ComponentKeyError struct {
	Key string
}

func (e *ComponentKeyError) Error() string {
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return ErrComponentKeyUnknown.Error()
	}
	return fmt.Sprintf("%s: %q", ErrComponentKeyUnknown.Error(), e.Key)
}

func (e *ComponentKeyError) Unwrap() error {
	return ErrComponentKeyUnknown
}
