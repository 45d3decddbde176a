package locations

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Location is one office entry on the locations map. DisplayOrder drives
// presentation; nil sorts after every explicit position.
type Location struct {
	bun.BaseModel `bun:"table:locations,alias:loc"`

	ID           uuid.UUID `bun:",pk,type:uuid" json:"id"`
	CountryCode  string    `bun:"country_code,notnull" json:"country_code"`
	CountryName  string    `bun:"country_name,notnull" json:"country_name"`
	CityName     string    `bun:"city_name,notnull" json:"city_name"`
	Address      string    `bun:"address" json:"address,omitempty"`
	Contacts     []string  `bun:"contacts,type:jsonb" json:"contacts,omitempty"`
	Email        string    `bun:"email" json:"email,omitempty"`
	Latitude     *float64  `bun:"latitude" json:"latitude,omitempty"`
	Longitude    *float64  `bun:"longitude" json:"longitude,omitempty"`
	DisplayOrder *int      `bun:"display_order" json:"display_order,omitempty"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
