package http

import (
	"net/http"

	sitecontent "github.com/freightwave/go-sitecms/content"
	"github.com/google/uuid"
)

type sectionCreatePayload struct {
	PagePath   string            `json:"page_path"`
	SectionKey string            `json:"section_key"`
	Content    map[string]any    `json:"content"`
	Images     map[string]string `json:"images,omitempty"`
}

type sectionUpdatePayload struct {
	SectionKey *string           `json:"section_key,omitempty"`
	Content    map[string]any    `json:"content,omitempty"`
	Images     map[string]string `json:"images,omitempty"`
}

type bundleSectionPayload struct {
	ID         *uuid.UUID        `json:"id,omitempty"`
	SectionKey string            `json:"section_key"`
	Content    map[string]any    `json:"content"`
	Images     map[string]string `json:"images,omitempty"`
}

type bundleSavePayload struct {
	PagePath    string                 `json:"page_path"`
	PageTitle   string                 `json:"page_title"`
	Sections    []bundleSectionPayload `json:"sections"`
	PristineIDs []uuid.UUID            `json:"pristine_ids,omitempty"`
}

func (api *AdminAPI) registerSectionRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "sections")
	mux.HandleFunc("GET "+root, api.requireSession(api.handleSectionList))
	mux.HandleFunc("POST "+root, api.requireSession(api.handleSectionCreate))
	mux.HandleFunc("GET "+root+"/{id}", api.requireSession(api.handleSectionGet))
	mux.HandleFunc("PUT "+root+"/{id}", api.requireSession(api.handleSectionUpdate))
	mux.HandleFunc("DELETE "+root+"/{id}", api.requireSession(api.handleSectionDelete))
	mux.HandleFunc("POST "+joinPath(base, "sections/bundle"), api.requireSession(api.handleBundleSave))
	mux.HandleFunc("POST "+joinPath(base, "sections/images"), api.requireSession(api.handleImageRewrite))
}

func (api *AdminAPI) handleSectionList(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if pagePath := r.URL.Query().Get("page_path"); pagePath != "" {
		list, err := api.content.ListByPath(r.Context(), pagePath)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}
	list, err := api.content.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handleSectionGet(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.content.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleSectionCreate(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload sectionCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	created, err := api.content.Create(r.Context(), sitecontent.CreateSectionRequest{
		PagePath:   payload.PagePath,
		SectionKey: payload.SectionKey,
		Content:    payload.Content,
		Images:     payload.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handleSectionUpdate(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload sectionUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	updated, err := api.content.Update(r.Context(), sitecontent.UpdateSectionRequest{
		ID:         id,
		SectionKey: payload.SectionKey,
		Content:    payload.Content,
		Images:     payload.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handleSectionDelete(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.content.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// handleBundleSave is the page editor's save endpoint: page row fields,
// the full edited section set, and the pristine ids in one transactional
// write.
func (api *AdminAPI) handleBundleSave(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload bundleSavePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	sections := make([]sitecontent.BundleSectionInput, 0, len(payload.Sections))
	for _, section := range payload.Sections {
		sections = append(sections, sitecontent.BundleSectionInput{
			ID:         section.ID,
			SectionKey: section.SectionKey,
			Content:    section.Content,
			Images:     section.Images,
		})
	}
	result, err := api.content.SaveBundle(r.Context(), sitecontent.SaveBundleRequest{
		PagePath:    payload.PagePath,
		PageTitle:   payload.PageTitle,
		Sections:    sections,
		PristineIDs: payload.PristineIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	// bundle saves can create the backing page row
	api.refreshRouteTable(r.Context())
	writeJSON(w, http.StatusOK, result)
}
