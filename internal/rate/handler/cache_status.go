package handler

import (
	"errors"
	"net/http"
	"strings"

	"fxconvert/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type CacheStatusResponse struct {
	RateResponse
	TTLRemainingSeconds float64 `json:"ttlRemainingSeconds" example:"42.5"`
}

func (h *Handler) GetCacheStatus(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "base")))
	target := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "target")))

	if err := h.validator.ValidateCodes(base, target); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := h.service.CacheStatus(r.Context(), base, target)
	if err != nil {
		if errors.Is(err, domain.ErrNotCached) {
			writeError(w, http.StatusNotFound, base+"/"+target+" is not cached")
			return
		}
		msg := "ups, couldn't read cache status this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetCacheStatus", "base": base, "target": target}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, CacheStatusResponse{
		RateResponse:        rateResponseFrom(&status.Quote),
		TTLRemainingSeconds: status.TTLRemaining.Seconds(),
	})
}
