package seo

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// TagKind distinguishes how a head tag is keyed in the document.
type TagKind string

const (
	TagKindTitle    TagKind = "title"
	TagKindName     TagKind = "name"     // <meta name=... content=...>
	TagKindProperty TagKind = "property" // <meta property=... content=...>
	TagKindRel      TagKind = "rel"      // <link rel=... href=...>
)

// Tag is one resolved head entry.
type Tag struct {
	Kind  TagKind
	Key   string
	Value string
}

// TagSet models document head state. Setting a tag that already exists
// updates it in place; tags are never duplicated and render in first-set
// order, mirroring how the injector mutates an existing document.
type TagSet struct {
	order []string
	tags  map[string]Tag
}

// NewTagSet returns an empty tag set.
func NewTagSet() *TagSet {
	return &TagSet{tags: make(map[string]Tag)}
}

func tagKey(kind TagKind, key string) string {
	return string(kind) + "\x00" + strings.TrimSpace(key)
}

// Set upserts a tag. Empty values remove nothing and set nothing.
func (s *TagSet) Set(kind TagKind, key, value string) {
	if s == nil || strings.TrimSpace(value) == "" {
		return
	}
	if kind != TagKindTitle && strings.TrimSpace(key) == "" {
		return
	}

	id := tagKey(kind, key)
	if _, exists := s.tags[id]; !exists {
		s.order = append(s.order, id)
	}
	s.tags[id] = Tag{Kind: kind, Key: strings.TrimSpace(key), Value: value}
}

// Get returns the current value for a tag and whether it is present.
func (s *TagSet) Get(kind TagKind, key string) (string, bool) {
	if s == nil {
		return "", false
	}
	tag, ok := s.tags[tagKey(kind, key)]
	return tag.Value, ok
}

// Len reports the number of distinct tags.
func (s *TagSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tags)
}

// Tags returns the tags in first-set order.
func (s *TagSet) Tags() []Tag {
	if s == nil {
		return nil
	}
	out := make([]Tag, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tags[id])
	}
	return out
}

// Apply writes resolved metadata into the set. Calling Apply twice with
// defaults then the merged override leaves exactly one tag per key with
// the later value, matching the inject-then-override behaviour.
func (s *TagSet) Apply(meta Metadata) {
	if s == nil {
		return
	}

	s.Set(TagKindTitle, "", meta.Title)
	s.Set(TagKindName, "description", meta.Description)
	s.Set(TagKindName, "keywords", meta.Keywords)

	s.Set(TagKindProperty, "og:title", meta.Title)
	s.Set(TagKindProperty, "og:description", meta.Description)
	s.Set(TagKindProperty, "og:image", meta.Image)
	s.Set(TagKindProperty, "og:url", meta.URL)

	s.Set(TagKindName, "twitter:card", "summary_large_image")
	s.Set(TagKindName, "twitter:title", meta.Title)
	s.Set(TagKindName, "twitter:description", meta.Description)
	s.Set(TagKindName, "twitter:image", meta.Image)

	s.Set(TagKindRel, "canonical", meta.Canonical)

	// map iteration order would leak into the first-set render order
	keys := make([]string, 0, len(meta.ExtraMeta))
	for key := range meta.ExtraMeta {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := meta.ExtraMeta[key]
		if strings.HasPrefix(key, "og:") {
			s.Set(TagKindProperty, key, value)
			continue
		}
		s.Set(TagKindName, key, value)
	}
}

// RenderHead emits the head fragment for the current tags.
func (s *TagSet) RenderHead() string {
	if s == nil {
		return ""
	}

	var b strings.Builder
	for _, tag := range s.Tags() {
		switch tag.Kind {
		case TagKindTitle:
			fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(tag.Value))
		case TagKindName:
			fmt.Fprintf(&b, "<meta name=%q content=%q>\n", tag.Key, tag.Value)
		case TagKindProperty:
			fmt.Fprintf(&b, "<meta property=%q content=%q>\n", tag.Key, tag.Value)
		case TagKindRel:
			fmt.Fprintf(&b, "<link rel=%q href=%q>\n", tag.Key, tag.Value)
		}
	}
	return b.String()
}
