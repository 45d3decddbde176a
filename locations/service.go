package locations

import (
	"context"
	"net/mail"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Service manages office locations. Reorder rewrites display_order for
// every row in one transaction (the drag-and-drop backend).
type Service interface {
	List(ctx context.Context) ([]*Location, error)
	Get(ctx context.Context, id uuid.UUID) (*Location, error)
	Create(ctx context.Context, req CreateLocationRequest) (*Location, error)
	Update(ctx context.Context, req UpdateLocationRequest) (*Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID) ([]*Location, error)
}

// CreateLocationRequest registers a new office.
type CreateLocationRequest struct {
	CountryCode  string
	CountryName  string
	CityName     string
	Address      string
	Contacts     []string
	Email        string
	Latitude     *float64
	Longitude    *float64
	DisplayOrder *int
}

// Validate checks the request before it reaches storage.
func (r CreateLocationRequest) Validate() error {
	errs := validation.Errors{}
	validateLocationFields(errs, r.CountryCode, r.CityName, r.Email, r.Latitude, r.Longitude)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateLocationRequest mutates an office entry. Nil pointers leave the
// stored value untouched.
type UpdateLocationRequest struct {
	ID           uuid.UUID
	CountryCode  *string
	CountryName  *string
	CityName     *string
	Address      *string
	Contacts     []string
	Email        *string
	Latitude     *float64
	Longitude    *float64
	DisplayOrder *int
}

// Validate checks the request before it reaches storage.
func (r UpdateLocationRequest) Validate() error {
	errs := validation.Errors{}
	if r.ID == uuid.Nil {
		errs["id"] = validation.NewError("sitecms.locations.id_required", "location id is required")
	}
	if r.CountryCode != nil && !isCountryCode(strings.TrimSpace(*r.CountryCode)) {
		errs["country_code"] = validation.NewError("sitecms.locations.country_code_invalid", "country code must be a two-letter iso code")
	}
	if r.CityName != nil && strings.TrimSpace(*r.CityName) == "" {
		errs["city_name"] = validation.NewError("sitecms.locations.city_name_required", "city name is required")
	}
	if r.Email != nil {
		if trimmed := strings.TrimSpace(*r.Email); trimmed != "" {
			if _, err := mail.ParseAddress(trimmed); err != nil {
				errs["email"] = validation.NewError("sitecms.locations.email_invalid", "email is invalid")
			}
		}
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs["latitude"] = validation.NewError("sitecms.locations.latitude_invalid", "latitude must be between -90 and 90")
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs["longitude"] = validation.NewError("sitecms.locations.longitude_invalid", "longitude must be between -180 and 180")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateLocationFields(errs validation.Errors, countryCode, cityName, email string, lat, lng *float64) {
	code := strings.TrimSpace(countryCode)
	if !isCountryCode(code) {
		errs["country_code"] = validation.NewError("sitecms.locations.country_code_invalid", "country code must be a two-letter iso code")
	}
	if strings.TrimSpace(cityName) == "" {
		errs["city_name"] = validation.NewError("sitecms.locations.city_name_required", "city name is required")
	}
	if trimmed := strings.TrimSpace(email); trimmed != "" {
		if _, err := mail.ParseAddress(trimmed); err != nil {
			errs["email"] = validation.NewError("sitecms.locations.email_invalid", "email is invalid")
		}
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		errs["latitude"] = validation.NewError("sitecms.locations.latitude_invalid", "latitude must be between -90 and 90")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		errs["longitude"] = validation.NewError("sitecms.locations.longitude_invalid", "longitude must be between -180 and 180")
	}
}

func isCountryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
