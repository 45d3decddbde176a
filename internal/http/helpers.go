package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	sitecontent "github.com/freightwave/go-sitecms/content"
	siteheaders "github.com/freightwave/go-sitecms/headers"
	"github.com/freightwave/go-sitecms/internal/identity"
	"github.com/freightwave/go-sitecms/internal/validation"
	sitelocations "github.com/freightwave/go-sitecms/locations"
	sitepages "github.com/freightwave/go-sitecms/pages"
	siteseo "github.com/freightwave/go-sitecms/seo"
	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error   string             `json:"error"`
	Message string             `json:"message,omitempty"`
	Issues  []validation.Issue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var pageNotFound *sitepages.PageNotFoundError
	var sectionNotFound *sitecontent.SectionNotFoundError
	var seoNotFound *siteseo.RecordNotFoundError
	var headerNotFound *siteheaders.HeaderNotFoundError
	var locationNotFound *sitelocations.LocationNotFoundError
	if errors.As(err, &pageNotFound) ||
		errors.As(err, &sectionNotFound) ||
		errors.As(err, &seoNotFound) ||
		errors.As(err, &headerNotFound) ||
		errors.As(err, &locationNotFound) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	}

	if errors.Is(err, identity.ErrInvalidCredentials) ||
		errors.Is(err, identity.ErrInvalidToken) ||
		errors.Is(err, identity.ErrTokenExpired) {
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: err.Error()}
	}

	if errors.Is(err, sitepages.ErrPathExists) ||
		errors.Is(err, sitecontent.ErrDuplicateSectionKey) {
		return http.StatusConflict, errorResponse{Error: "conflict", Message: err.Error()}
	}

	if errors.Is(err, sitepages.ErrComponentKeyUnknown) ||
		errors.Is(err, siteheaders.ErrContentInvalid) ||
		errors.Is(err, sitecontent.ErrContentInvalid) ||
		errors.Is(err, sitecontent.ErrImageURLInvalid) {
		resp := errorResponse{Error: "validation_failed", Message: err.Error()}
		var payloadErr *validation.PayloadError
		if errors.As(err, &payloadErr) {
			resp.Issues = payloadErr.Issues
		}
		return http.StatusUnprocessableEntity, resp
	}

	var requestErrs ozzo.Errors
	if errors.As(err, &requestErrs) {
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()}
	}

	if errors.Is(err, sitepages.ErrPathInvalid) ||
		errors.Is(err, siteseo.ErrPathRequired) ||
		errors.Is(err, sitelocations.ErrReorderIncomplete) ||
		errors.Is(err, siteheaders.ErrNoActiveHeader) {
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	return uuid.Parse(trimmed)
}
