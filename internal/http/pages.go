package http

import (
	"net/http"

	sitepages "github.com/freightwave/go-sitecms/pages"
)

type pageCreatePayload struct {
	Path         string `json:"path"`
	ComponentKey string `json:"component_key,omitempty"`
	Title        string `json:"title"`
}

type pageUpdatePayload struct {
	Path         *string `json:"path,omitempty"`
	ComponentKey *string `json:"component_key,omitempty"`
	Title        *string `json:"title,omitempty"`
}

type pageDuplicatePayload struct {
	NewPath string `json:"new_path"`
	Title   string `json:"title,omitempty"`
}

func (api *AdminAPI) registerPageRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "pages")
	mux.HandleFunc("GET "+root, api.requireSession(api.handlePageList))
	mux.HandleFunc("POST "+root, api.requireSession(api.handlePageCreate))
	mux.HandleFunc("GET "+root+"/{id}", api.requireSession(api.handlePageGet))
	mux.HandleFunc("PUT "+root+"/{id}", api.requireSession(api.handlePageUpdate))
	mux.HandleFunc("DELETE "+root+"/{id}", api.requireSession(api.handlePageDelete))
	mux.HandleFunc("POST "+root+"/{id}/duplicate", api.requireSession(api.handlePageDuplicate))
	mux.HandleFunc("GET "+joinPath(base, "component-keys"), api.requireSession(api.handleComponentKeys))
}

func (api *AdminAPI) handlePageList(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	list, err := api.pages.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handlePageGet(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.pages.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload pageCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	created, err := api.pages.Create(r.Context(), sitepages.CreatePageRequest{
		Path:         payload.Path,
		ComponentKey: payload.ComponentKey,
		Title:        payload.Title,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.refreshRouteTable(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handlePageUpdate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload pageUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	updated, err := api.pages.Update(r.Context(), sitepages.UpdatePageRequest{
		ID:           id,
		Path:         payload.Path,
		ComponentKey: payload.ComponentKey,
		Title:        payload.Title,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.refreshRouteTable(r.Context())
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.pages.Delete(r.Context(), sitepages.DeletePageRequest{ID: id}); err != nil {
		writeError(w, err)
		return
	}
	api.refreshRouteTable(r.Context())
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handlePageDuplicate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload pageDuplicatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	clone, err := api.pages.Duplicate(r.Context(), sitepages.DuplicatePageRequest{
		SourceID: id,
		NewPath:  payload.NewPath,
		Title:    payload.Title,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.refreshRouteTable(r.Context())
	writeJSON(w, http.StatusCreated, clone)
}

func (api *AdminAPI) handleComponentKeys(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"component_keys": sitepages.ComponentKeys()})
}
