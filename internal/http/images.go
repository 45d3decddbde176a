package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	sitecontent "github.com/freightwave/go-sitecms/content"
	"github.com/freightwave/go-sitecms/pkg/jsondoc"
)

type imageRewritePayload struct {
	Content json.RawMessage `json:"content"`
	Path    string          `json:"path"`
	URL     string          `json:"url"`
}

type imageRewriteResponse struct {
	Content    json.RawMessage `json:"content"`
	ImagePaths []string        `json:"image_paths"`
}

// handleImageRewrite is the server half of the section editor's image
// upload flow: the client sends the section content document, the dotted
// path of the image field, and the uploaded asset URL; the handler
// replaces the field value and returns the document with key order and
// number literals untouched.
func (api *AdminAPI) handleImageRewrite(w http.ResponseWriter, r *http.Request) {
	var payload imageRewritePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	if !validImageURL(payload.URL) {
		writeError(w, sitecontent.ErrImageURLInvalid)
		return
	}

	doc, err := jsondoc.Parse(payload.Content)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	if err := doc.SetString(payload.Path, payload.URL); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	rewritten, err := doc.Serialize()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, imageRewriteResponse{
		Content:    rewritten,
		ImagePaths: doc.ImagePaths(),
	})
}

func validImageURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
