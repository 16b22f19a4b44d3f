package handlers

import (
	"fmt"
	"github.com/frodejac/filedrop/internal/database/activity"
	"github.com/frodejac/filedrop/internal/flash"
	"github.com/rs/zerolog/hlog"
	"net/http"
)

type DeleteHandler struct {
	BaseHandler
}

func NewDeleteHandler(base BaseHandler) *DeleteHandler {
	return &DeleteHandler{BaseHandler: base}
}

func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	err := h.store.Delete(name)
	h.record(r, activity.ActionDelete, name, "", err)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("name", name).Msg("Failed to delete file")
		h.redirectHome(w, r, flash.Error(describe(err)))
		return
	}
	h.redirectHome(w, r, flash.Success(fmt.Sprintf("File %s deleted successfully!", name)))
}
