package handlers

import (
	"github.com/rs/zerolog/hlog"
	"net/http"
)

type HealthHandler struct {
	BaseHandler
}

func NewHealthHandler(base BaseHandler) *HealthHandler {
	return &HealthHandler{BaseHandler: base}
}

// HandleHealth reports whether the root directory can be listed.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := h.store.List(""); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Health check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unavailable\n"))
		return
	}
	_, _ = w.Write([]byte("ok\n"))
}
