package seo

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record is the canonical per-path SEO override. The reserved "seo"
// content section is only consulted as a legacy fallback when no record
// exists for a path.
type Record struct {
	bun.BaseModel `bun:"table:seo_records,alias:sr"`

	ID          uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	Path        string            `bun:"path,notnull,unique" json:"path"`
	Title       string            `bun:"title" json:"title,omitempty"`
	Description string            `bun:"description" json:"description,omitempty"`
	Keywords    string            `bun:"keywords" json:"keywords,omitempty"`
	Image       string            `bun:"image" json:"image,omitempty"`
	Canonical   string            `bun:"canonical" json:"canonical,omitempty"`
	ExtraMeta   map[string]string `bun:"extra_meta,type:jsonb" json:"extra_meta,omitempty"`
	CreatedAt   time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Defaults are the literal per-view fallbacks applied before any stored
// override is consulted.
type Defaults struct {
	Title       string
	Description string
	Keywords    string
	Image       string
	Canonical   string
	URL         string
	ExtraMeta   map[string]string
}

// Metadata is the resolved head state for a path: defaults overlaid with
// the stored record, field by field, ExtraMeta shallow-merged with the
// override winning per key.
type Metadata struct {
	Title       string
	Description string
	Keywords    string
	Image       string
	Canonical   string
	URL         string
	ExtraMeta   map[string]string
}

// Merge overlays an override record onto defaults. Empty override fields
// leave the default in place; ExtraMeta is a shallow union.
func Merge(defaults Defaults, override *Record) Metadata {
	meta := Metadata{
		Title:       defaults.Title,
		Description: defaults.Description,
		Keywords:    defaults.Keywords,
		Image:       defaults.Image,
		Canonical:   defaults.Canonical,
		URL:         defaults.URL,
	}
	if len(defaults.ExtraMeta) > 0 {
		meta.ExtraMeta = make(map[string]string, len(defaults.ExtraMeta))
		for k, v := range defaults.ExtraMeta {
			meta.ExtraMeta[k] = v
		}
	}

	if override == nil {
		return meta
	}

	if override.Title != "" {
		meta.Title = override.Title
	}
	if override.Description != "" {
		meta.Description = override.Description
	}
	if override.Keywords != "" {
		meta.Keywords = override.Keywords
	}
	if override.Image != "" {
		meta.Image = override.Image
	}
	if override.Canonical != "" {
		meta.Canonical = override.Canonical
	}
	if len(override.ExtraMeta) > 0 {
		if meta.ExtraMeta == nil {
			meta.ExtraMeta = make(map[string]string, len(override.ExtraMeta))
		}
		for k, v := range override.ExtraMeta {
			meta.ExtraMeta[k] = v
		}
	}

	return meta
}
