package handlers

import (
	"bytes"
	"github.com/frodejac/filedrop/internal/database/activity"
	"github.com/frodejac/filedrop/internal/flash"
	"github.com/frodejac/filedrop/internal/folder"
	"github.com/rs/zerolog/hlog"
	"html/template"
	"net/http"
)

// Journal records mutations for the activity list.
type Journal interface {
	Record(event activity.Event) error
	ListRecent(limit int) ([]activity.Event, error)
}

type BaseHandler struct {
	store     *folder.Store
	templates *template.Template
	flash     *flash.Service
	journal   Journal
}

func NewBaseHandler(store *folder.Store, templates *template.Template, flash *flash.Service, journal Journal) BaseHandler {
	return BaseHandler{
		store:     store,
		templates: templates,
		flash:     flash,
		journal:   journal,
	}
}

func (b *BaseHandler) renderTemplate(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	// Render into a buffer so a failing template never sends half a page
	buf := &bytes.Buffer{}
	if err := b.templates.ExecuteTemplate(buf, name, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (b *BaseHandler) render404(w http.ResponseWriter, r *http.Request) {
	b.renderTemplate(w, r, http.StatusNotFound, "404.html", nil)
}

// renderError renders err as a page for endpoints that cannot redirect.
func (b *BaseHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusNotFound {
		b.render404(w, r)
		return
	}
	b.renderTemplate(w, r, status, "error.html", describe(err))
}

// redirectHome shows msg on the file list.
func (b *BaseHandler) redirectHome(w http.ResponseWriter, r *http.Request, msg flash.Message) {
	b.flash.Set(w, msg)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// record writes the outcome of a mutation to the journal. Journal failures
// are logged and otherwise ignored.
func (b *BaseHandler) record(r *http.Request, action activity.Action, name, newName string, err error) {
	if b.journal == nil {
		return
	}
	event := activity.Event{
		Action:     action,
		Name:       name,
		NewName:    newName,
		Outcome:    folder.Kind(err),
		RemoteAddr: r.RemoteAddr,
	}
	if jerr := b.journal.Record(event); jerr != nil {
		hlog.FromRequest(r).Error().Err(jerr).Str("action", string(action)).Msg("Failed to record activity")
	}
}

// NotFound renders the 404 page for any unmatched route.
func NotFound(base BaseHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		base.render404(w, r)
	}
}
