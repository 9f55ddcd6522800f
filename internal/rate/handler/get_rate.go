package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fxconvert/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type RateResponse struct {
	BaseCurrency   string    `json:"baseCurrency" example:"USD"`
	TargetCurrency string    `json:"targetCurrency" example:"EUR"`
	Rate           float64   `json:"rate" example:"0.9231"`
	Source         string    `json:"source" example:"aggregated(fixer+frankfurter)"`
	Timestamp      time.Time `json:"timestamp" example:"2026-01-02T15:04:05Z"`
	FromCache      bool      `json:"fromCache" example:"false"`
}

func rateResponseFrom(q *domain.Quote) RateResponse {
	return RateResponse{
		BaseCurrency:   q.Base,
		TargetCurrency: q.Target,
		Rate:           q.Rate,
		Source:         q.Source,
		Timestamp:      q.Timestamp,
		FromCache:      q.FromCache,
	}
}

// GetRate godoc
// @Summary Get exchange rate
// @Description Resolve the current rate for a currency pair (cache, live providers, then last known rate)
// @Tags Rates
// @Produce json
// @Param base path string true "Base currency code" example(USD)
// @Param target path string true "Target currency code" example(EUR)
// @Success 200 {object} RateResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse "no rate available for the pair"
// @Failure 500 {object} errorResponse
// @Router /rates/{base}/{target} [get]
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "base")))
	target := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "target")))

	if err := h.validator.ValidateCodes(base, target); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := h.service.Resolve(r.Context(), base, target)
	if err != nil {
		if errors.Is(err, domain.ErrRateUnavailable) {
			writeError(w, http.StatusNotFound, "no rate available for "+base+"/"+target)
			return
		}
		msg := "ups, couldn't resolve the rate this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetRate", "base": base, "target": target}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, rateResponseFrom(quote))
}
