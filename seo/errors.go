package seo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPathRequired   = errors.New("seo: path is required")
	ErrRecordNotFound = errors.New("seo: record not found")
)

// RecordNotFoundError reports a missing override lookup by path.
type RecordNotFoundError struct {
	Path string
}

func (e *RecordNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Path) == "" {
		return ErrRecordNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrRecordNotFound.Error(), e.Path)
}

func (e *RecordNotFoundError) Unwrap() error {
	return ErrRecordNotFound
}
