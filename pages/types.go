package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Component keys form a closed registry of renderable views. Admin saves
// referencing anything else are rejected outright.
const (
	ComponentDynamic   = "dynamic"
	ComponentHome      = "home"
	ComponentAbout     = "about"
	ComponentServices  = "services"
	ComponentContact   = "contact"
	ComponentLocations = "locations"
)

// ComponentKeys lists every renderable component identifier in registry
// order.
func ComponentKeys() []string {
	return []string{
		ComponentDynamic,
		ComponentHome,
		ComponentAbout,
		ComponentServices,
		ComponentContact,
		ComponentLocations,
	}
}

// KnownComponentKey reports whether key belongs to the closed registry.
func KnownComponentKey(key string) bool {
	for _, candidate := range ComponentKeys() {
		if candidate == key {
			return true
		}
	}
	return false
}

// Page maps a public path to a renderable component. Paths are unique and
// act as the foreign reference for content sections and seo records.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID           uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Path         string     `bun:"path,notnull,unique" json:"path"`
	ComponentKey string     `bun:"component_key,notnull,default:'dynamic'" json:"component_key"`
	Title        string     `bun:"title,notnull" json:"title"`
	DeletedAt    *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
