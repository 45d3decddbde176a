package pages

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// NormalizePath canonicalizes a public page path: leading slash, no
// trailing slash, each segment slug-normalized. The root path is "/".
func NormalizePath(path string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return "/", nil
	}

	segments := strings.Split(trimmed, "/")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		normalized, err := slug.Normalize(segment)
		if err != nil {
			return "", ErrPathInvalid
		}
		if normalized == "" {
			continue
		}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return "/", nil
	}
	return "/" + strings.Join(out, "/"), nil
}

// IsValidPath reports whether path is already in canonical form.
func IsValidPath(path string) bool {
	normalized, err := NormalizePath(path)
	if err != nil {
		return false
	}
	return normalized == path
}
