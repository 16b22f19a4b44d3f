package handlers

import (
	"fmt"
	"github.com/frodejac/filedrop/internal/database/activity"
	"github.com/frodejac/filedrop/internal/flash"
	"github.com/rs/zerolog/hlog"
	"net/http"
	"net/url"
)

type RenameHandler struct {
	BaseHandler
}

type RenameData struct {
	Name string
	Path string
}

func NewRenameHandler(base BaseHandler) *RenameHandler {
	return &RenameHandler{BaseHandler: base}
}

func (h *RenameHandler) HandleGetRename(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if _, err := h.store.Stat(name); err != nil {
		h.redirectHome(w, r, flash.Error(describe(err)))
		return
	}
	h.renderTemplate(w, r, http.StatusOK, "rename.html", RenameData{
		Name: name,
		Path: url.PathEscape(name),
	})
}

func (h *RenameHandler) HandlePostRename(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	newName := r.PostForm.Get("new_name")

	_, err := h.store.Rename(name, newName)
	h.record(r, activity.ActionRename, name, newName, err)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("name", name).Str("new_name", newName).Msg("Failed to rename file")
		h.redirectHome(w, r, flash.Error(describe(err)))
		return
	}
	h.redirectHome(w, r, flash.Success(fmt.Sprintf("File %s renamed to %s successfully!", name, newName)))
}
