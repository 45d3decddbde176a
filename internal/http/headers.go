package http

import (
	"net/http"

	siteheaders "github.com/freightwave/go-sitecms/headers"
)

type headerCreatePayload struct {
	Name    string              `json:"name"`
	Content siteheaders.Content `json:"content"`
}

type headerUpdatePayload struct {
	Name    *string              `json:"name,omitempty"`
	Content *siteheaders.Content `json:"content,omitempty"`
}

func (api *AdminAPI) registerHeaderRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "headers")
	mux.HandleFunc("GET "+root, api.requireSession(api.handleHeaderList))
	mux.HandleFunc("POST "+root, api.requireSession(api.handleHeaderCreate))
	mux.HandleFunc("GET "+joinPath(base, "headers/active"), api.requireSession(api.handleHeaderActive))
	mux.HandleFunc("GET "+root+"/{id}", api.requireSession(api.handleHeaderGet))
	mux.HandleFunc("PUT "+root+"/{id}", api.requireSession(api.handleHeaderUpdate))
	mux.HandleFunc("DELETE "+root+"/{id}", api.requireSession(api.handleHeaderDelete))
	mux.HandleFunc("POST "+root+"/{id}/activate", api.requireSession(api.handleHeaderActivate))
}

func (api *AdminAPI) handleHeaderList(w http.ResponseWriter, r *http.Request) {
	if api.headers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	list, err := api.headers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handleHeaderActive(w http.ResponseWriter, r *http.Request) {
	if api.headers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	record, err := api.headers.Active(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleHeaderGet(w http.ResponseWriter, r *http.Request) {
	if api.headers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.headers.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleHeaderCreate(w http.ResponseWriter, r *http.Request) {
	if api.headers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload headerCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	created, err := api.headers.Create(r.Context(), siteheaders.CreateConfigRequest{
		Name:    payload.Name,
		Content: payload.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handleHeaderUpdate(w http.ResponseWriter, r *http.Request) {
	if api.headers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload headerUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	updated, err := api.headers.Update(r.Context(), siteheaders.UpdateConfigRequest{
		ID:      id,
		Name:    payload.Name,
		Content: payload.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handleHeaderDelete(w http.ResponseWriter, r *http.Request) {
	if api.headers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.headers.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleHeaderActivate(w http.ResponseWriter, r *http.Request) {
	if api.headers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.headers.Activate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
