package handlers

import (
	"github.com/rs/zerolog/hlog"
	"mime"
	"net/http"
	"slices"
)

type FileHandler struct {
	BaseHandler
}

func NewFileHandler(base BaseHandler) *FileHandler {
	return &FileHandler{BaseHandler: base}
}

func (h *FileHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	dl, err := h.store.Open(name)
	if err != nil {
		hlog.FromRequest(r).Debug().Err(err).Str("name", name).Msg("Download failed")
		h.renderError(w, r, err)
		return
	}
	defer dl.File.Close()

	// Preset so ServeContent never sniffs the body
	w.Header().Set("Content-Type", dl.ContentType)
	// Uploaded documents must never run script on this origin.
	w.Header().Set("Content-Security-Policy", "sandbox; default-src 'none'; img-src 'self'; media-src 'self'; style-src 'unsafe-inline'")
	dispositionType := "inline"
	if isActiveContent(dl.ContentType) {
		dispositionType = "attachment"
	}
	disposition := mime.FormatMediaType(dispositionType, map[string]string{"filename": dl.Name})
	if disposition == "" {
		disposition = dispositionType
	}
	w.Header().Set("Content-Disposition", disposition)
	http.ServeContent(w, r, dl.Name, dl.ModTime, dl.File)
}

// activeContentTypes can carry script when a browser renders them.
var activeContentTypes = []string{
	"text/html",
	"application/xhtml+xml",
	"image/svg+xml",
	"text/xml",
	"application/xml",
	"text/javascript",
	"application/javascript",
}

func isActiveContent(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return true
	}
	return slices.Contains(activeContentTypes, mediaType)
}
