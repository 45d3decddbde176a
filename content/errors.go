package content

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPagePathRequired    = errors.New("content: page path is required")
	ErrSectionKeyRequired  = errors.New("content: section key is required")
	ErrSectionKeyInvalid   = errors.New("content: section key contains invalid characters")
	ErrDuplicateSectionKey = errors.New("content: duplicate section key")
	ErrSectionIDRequired   = errors.New("content: section id required")
	ErrSectionNotFound     = errors.New("content: section not found")
	ErrContentInvalid      = errors.New("content: payload failed schema validation")
	ErrImageURLInvalid     = errors.New("content: image value must be a url")
)

// SectionNotFoundError reports a missing section lookup.
type SectionNotFoundError struct {
	Key string
}

func (e *SectionNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return ErrSectionNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrSectionNotFound.Error(), e.Key)
}

func (e *SectionNotFoundError) Unwrap() error {
	return ErrSectionNotFound
}

// DuplicateSectionKeyError names the colliding key so the editor can point
// at the offending rows.
type DuplicateSectionKeyError struct {
	PagePath   string
	SectionKey string
}

func (e *DuplicateSectionKeyError) Error() string {
	if e == nil {
		return ErrDuplicateSectionKey.Error()
	}
	key := strings.TrimSpace(e.SectionKey)
	if key == "" {
		return ErrDuplicateSectionKey.Error()
	}
	return fmt.Sprintf("%s: %q on %s", ErrDuplicateSectionKey.Error(), key, e.PagePath)
}

func (e *DuplicateSectionKeyError) Unwrap() error {
	return ErrDuplicateSectionKey
}
