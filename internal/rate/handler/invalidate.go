package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func (h *Handler) InvalidatePair(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "base")))
	target := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "target")))

	if err := h.validator.ValidateCodes(base, target); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Invalidate(r.Context(), base, target); err != nil {
		msg := "ups, couldn't invalidate the cache entry this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "InvalidatePair", "base": base, "target": target}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) InvalidateAll(w http.ResponseWriter, r *http.Request) {
	if err := h.service.InvalidateAll(r.Context()); err != nil {
		msg := "ups, couldn't clear the cache this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "InvalidateAll"}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
