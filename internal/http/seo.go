package http

import (
	"net/http"

	siteseo "github.com/freightwave/go-sitecms/seo"
)

type seoUpsertPayload struct {
	Path        string            `json:"path"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Keywords    string            `json:"keywords,omitempty"`
	Image       string            `json:"image,omitempty"`
	Canonical   string            `json:"canonical,omitempty"`
	ExtraMeta   map[string]string `json:"extra_meta,omitempty"`
}

func (api *AdminAPI) registerSEORoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "seo")
	mux.HandleFunc("GET "+root, api.requireSession(api.handleSEOList))
	mux.HandleFunc("PUT "+root, api.requireSession(api.handleSEOUpsert))
	mux.HandleFunc("DELETE "+root+"/{id}", api.requireSession(api.handleSEODelete))
}

func (api *AdminAPI) handleSEOList(w http.ResponseWriter, r *http.Request) {
	if api.seo == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if path := r.URL.Query().Get("path"); path != "" {
		record, err := api.seo.GetByPath(r.Context(), path)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
		return
	}
	list, err := api.seo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleSEOUpsert replaces the override for a path; the row id is derived
// from the path so repeated saves converge on one record.
func (api *AdminAPI) handleSEOUpsert(w http.ResponseWriter, r *http.Request) {
	if api.seo == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload seoUpsertPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	record, err := api.seo.Upsert(r.Context(), siteseo.UpsertRecordRequest{
		Path:        payload.Path,
		Title:       payload.Title,
		Description: payload.Description,
		Keywords:    payload.Keywords,
		Image:       payload.Image,
		Canonical:   payload.Canonical,
		ExtraMeta:   payload.ExtraMeta,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleSEODelete(w http.ResponseWriter, r *http.Request) {
	if api.seo == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.seo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
