package handlers

import (
	"fmt"
	"github.com/frodejac/filedrop/internal/database/activity"
	"github.com/frodejac/filedrop/internal/flash"
	"github.com/rs/zerolog/hlog"
	"net/http"
	"net/url"
)

type EditHandler struct {
	BaseHandler
}

type EditData struct {
	Name    string
	Path    string
	Content string
}

func NewEditHandler(base BaseHandler) *EditHandler {
	return &EditHandler{BaseHandler: base}
}

func (h *EditHandler) HandleGetEdit(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	content, err := h.store.ReadText(name)
	if err != nil {
		hlog.FromRequest(r).Debug().Err(err).Str("name", name).Msg("Cannot edit file")
		h.redirectHome(w, r, flash.Error(describe(err)))
		return
	}
	h.renderTemplate(w, r, http.StatusOK, "edit.html", EditData{
		Name:    name,
		Path:    url.PathEscape(name),
		Content: content,
	})
}

func (h *EditHandler) HandlePostEdit(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if _, ok := r.PostForm["content"]; !ok {
		http.Error(w, "Missing content", http.StatusBadRequest)
		return
	}

	_, err := h.store.WriteText(name, r.PostForm.Get("content"))
	h.record(r, activity.ActionEdit, name, "", err)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("name", name).Msg("Failed to write file")
		h.redirectHome(w, r, flash.Error(describe(err)))
		return
	}
	h.redirectHome(w, r, flash.Success(fmt.Sprintf("File %s updated successfully!", name)))
}
