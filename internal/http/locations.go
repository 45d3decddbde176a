package http

import (
	"net/http"

	sitelocations "github.com/freightwave/go-sitecms/locations"
	"github.com/google/uuid"
)

type locationCreatePayload struct {
	CountryCode  string   `json:"country_code"`
	CountryName  string   `json:"country_name"`
	CityName     string   `json:"city_name"`
	Address      string   `json:"address,omitempty"`
	Contacts     []string `json:"contacts,omitempty"`
	Email        string   `json:"email,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	DisplayOrder *int     `json:"display_order,omitempty"`
}

type locationUpdatePayload struct {
	CountryCode  *string  `json:"country_code,omitempty"`
	CountryName  *string  `json:"country_name,omitempty"`
	CityName     *string  `json:"city_name,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Contacts     []string `json:"contacts,omitempty"`
	Email        *string  `json:"email,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	DisplayOrder *int     `json:"display_order,omitempty"`
}

type locationReorderPayload struct {
	IDs []uuid.UUID `json:"ids"`
}

func (api *AdminAPI) registerLocationRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "locations")
	mux.HandleFunc("GET "+root, api.requireSession(api.handleLocationList))
	mux.HandleFunc("POST "+root, api.requireSession(api.handleLocationCreate))
	mux.HandleFunc("GET "+root+"/{id}", api.requireSession(api.handleLocationGet))
	mux.HandleFunc("PUT "+root+"/{id}", api.requireSession(api.handleLocationUpdate))
	mux.HandleFunc("DELETE "+root+"/{id}", api.requireSession(api.handleLocationDelete))
	mux.HandleFunc("POST "+joinPath(base, "locations/reorder"), api.requireSession(api.handleLocationReorder))
}

func (api *AdminAPI) handleLocationList(w http.ResponseWriter, r *http.Request) {
	if api.locations == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	list, err := api.locations.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handleLocationGet(w http.ResponseWriter, r *http.Request) {
	if api.locations == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.locations.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleLocationCreate(w http.ResponseWriter, r *http.Request) {
	if api.locations == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload locationCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	created, err := api.locations.Create(r.Context(), sitelocations.CreateLocationRequest{
		CountryCode:  payload.CountryCode,
		CountryName:  payload.CountryName,
		CityName:     payload.CityName,
		Address:      payload.Address,
		Contacts:     payload.Contacts,
		Email:        payload.Email,
		Latitude:     payload.Latitude,
		Longitude:    payload.Longitude,
		DisplayOrder: payload.DisplayOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handleLocationUpdate(w http.ResponseWriter, r *http.Request) {
	if api.locations == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload locationUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	updated, err := api.locations.Update(r.Context(), sitelocations.UpdateLocationRequest{
		ID:           id,
		CountryCode:  payload.CountryCode,
		CountryName:  payload.CountryName,
		CityName:     payload.CityName,
		Address:      payload.Address,
		Contacts:     payload.Contacts,
		Email:        payload.Email,
		Latitude:     payload.Latitude,
		Longitude:    payload.Longitude,
		DisplayOrder: payload.DisplayOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handleLocationDelete(w http.ResponseWriter, r *http.Request) {
	if api.locations == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.locations.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// handleLocationReorder rewrites display_order for the whole set; the
// payload must list every location exactly once.
func (api *AdminAPI) handleLocationReorder(w http.ResponseWriter, r *http.Request) {
	if api.locations == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload locationReorderPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	list, err := api.locations.Reorder(r.Context(), payload.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
