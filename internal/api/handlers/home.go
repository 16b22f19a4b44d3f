package handlers

import (
	"errors"
	"fmt"
	"github.com/frodejac/filedrop/internal/database/activity"
	"github.com/frodejac/filedrop/internal/flash"
	"github.com/frodejac/filedrop/internal/uploads"
	"github.com/rs/zerolog/hlog"
	"net/http"
	"strings"
)

// maxListedFailures bounds the failed files named in an upload message.
const maxListedFailures = 3

type HomeHandler struct {
	BaseHandler
	uploads *uploads.UploadService
	recent  int
}

type HomeData struct {
	Files    []FileView
	Search   string
	Flash    *flash.Message
	Activity []activity.Event
}

func NewHomeHandler(base BaseHandler, uploads *uploads.UploadService, recent int) *HomeHandler {
	return &HomeHandler{
		BaseHandler: base,
		uploads:     uploads,
		recent:      recent,
	}
}

func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)
	search := r.URL.Query().Get("search")
	data := HomeData{
		Search: search,
		Flash:  h.flash.Pop(w, r),
	}

	status := http.StatusOK
	entries, err := h.store.List(search)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list files")
		msg := flash.Error(describe(err))
		data.Flash = &msg
		status = statusFor(err)
	}
	data.Files = make([]FileView, 0, len(entries))
	for _, entry := range entries {
		data.Files = append(data.Files, newFileView(entry))
	}

	if h.journal != nil && h.recent > 0 {
		events, err := h.journal.ListRecent(h.recent)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to fetch recent activity")
		}
		data.Activity = events
	}

	h.renderTemplate(w, r, status, "index.html", data)
}

func (h *HomeHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)
	batch, err := h.uploads.Upload(w, r)
	if err != nil {
		logger.Warn().Err(err).Msg("Upload rejected")
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, uploads.ErrNoFiles):
			h.redirectHome(w, r, flash.Error("No files selected!"))
		case errors.As(err, &tooLarge):
			h.redirectHome(w, r, flash.Error(fmt.Sprintf("Upload is larger than %d bytes!", tooLarge.Limit)))
		default:
			h.redirectHome(w, r, flash.Error("Failed to read the upload!"))
		}
		return
	}

	for _, res := range batch.Results {
		h.record(r, activity.ActionUpload, res.Name, "", res.Err)
	}

	succeeded, failed := batch.Succeeded(), batch.Failed()
	logger.Info().Int("uploaded", len(succeeded)).Int("failed", len(failed)).Msg("Files uploaded")
	if len(failed) == 0 {
		h.redirectHome(w, r, flash.Success(fmt.Sprintf("%d file(s) uploaded successfully!", len(succeeded))))
		return
	}

	reasons := make([]string, 0, maxListedFailures+1)
	for i, res := range failed {
		if i == maxListedFailures {
			reasons = append(reasons, fmt.Sprintf("And %d more.", len(failed)-i))
			break
		}
		reasons = append(reasons, describe(res.Err))
	}
	h.redirectHome(w, r, flash.Error(fmt.Sprintf(
		"Uploaded %d of %d files. %s",
		len(succeeded),
		len(batch.Results),
		strings.Join(reasons, " "),
	)))
}
