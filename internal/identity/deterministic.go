package identity

import (
	"strings"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a stable identifier from a natural key. The same key always
// yields the same UUID, which makes page and section writes idempotent
// across imports and re-saves.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}

	id, err := hashid.NewUUID(trimmed,
		hashid.WithHashAlgorithm(hashid.SHA256),
		hashid.WithNormalization(true),
	)
	if err == nil && id != uuid.Nil {
		return id
	}

	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
}

// PageUUID derives the identifier for a page row from its route path.
func PageUUID(path string) uuid.UUID {
	return UUID("sitecms:page:" + strings.TrimSpace(path))
}

// SectionUUID derives the identifier for a content section from its page
// path and section key.
func SectionUUID(path, sectionKey string) uuid.UUID {
	return UUID("sitecms:section:" + strings.TrimSpace(path) + ":" + strings.TrimSpace(sectionKey))
}

// SEOUUID derives the identifier for a page's SEO record.
func SEOUUID(path string) uuid.UUID {
	return UUID("sitecms:seo:" + strings.TrimSpace(path))
}
