package headers

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NavLink is one entry in the site navigation.
type NavLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Content is the operator-editable header payload.
type Content struct {
	Logo                string    `json:"logo,omitempty"`
	NavLinks            []NavLink `json:"navLinks,omitempty"`
	CTA                 *NavLink  `json:"cta,omitempty"`
	ShowCountrySelector bool      `json:"showCountrySelector,omitempty"`
}

// Config is one named header variant. At most one row is active; the
// activation workflow enforces the invariant transactionally.
type Config struct {
	bun.BaseModel `bun:"table:headers,alias:h"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Content   Content   `bun:"content,type:jsonb,notnull" json:"content"`
	IsActive  bool      `bun:"is_active,notnull,default:false" json:"is_active"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// ContentSchema validates header payloads before they are saved.
var ContentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"logo": map[string]any{"type": "string"},
		"navLinks": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"label", "href"},
				"properties": map[string]any{
					"label": map[string]any{"type": "string", "minLength": 1},
					"href":  map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
		"cta": map[string]any{
			"type":     []any{"object", "null"},
			"required": []string{"label", "href"},
			"properties": map[string]any{
				"label": map[string]any{"type": "string", "minLength": 1},
				"href":  map[string]any{"type": "string", "minLength": 1},
			},
		},
		"showCountrySelector": map[string]any{"type": "boolean"},
	},
	"additionalProperties": false,
}
