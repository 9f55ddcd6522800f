package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"fxconvert/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const defaultHistoryHours = 24

type HistoryRecordResponse struct {
	Rate      float64   `json:"rate" example:"0.9231"`
	Source    string    `json:"source" example:"aggregated(fixer+frankfurter)"`
	Timestamp time.Time `json:"timestamp" example:"2026-01-02T15:04:05Z"`
}

type HistoryResponse struct {
	BaseCurrency   string                  `json:"baseCurrency" example:"USD"`
	TargetCurrency string                  `json:"targetCurrency" example:"EUR"`
	Period         string                  `json:"period" example:"24h"`
	Count          int                     `json:"count" example:"12"`
	Records        []HistoryRecordResponse `json:"records"`
}

// GetHistory godoc
// @Summary Get rate history
// @Description List persisted rates for a pair, newest first, either for the last N hours or between two RFC3339 instants
// @Tags Rates
// @Produce json
// @Param base path string true "Base currency code" example(USD)
// @Param target path string true "Target currency code" example(EUR)
// @Param hours query int false "Hours back (1-720, default 24)" example(24)
// @Param from query string false "Range start, RFC3339; requires 'to'"
// @Param to query string false "Range end, RFC3339; requires 'from'"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /history/{base}/{target} [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "base")))
	target := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "target")))

	if err := h.validator.ValidateCodes(base, target); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var view *rate.HistoryView
	var err error

	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")
	if fromRaw != "" || toRaw != "" {
		var from, to time.Time
		if from, err = time.Parse(time.RFC3339, fromRaw); err != nil {
			writeError(w, http.StatusBadRequest, "'from' must be a valid RFC3339 timestamp")
			return
		}
		if to, err = time.Parse(time.RFC3339, toRaw); err != nil {
			writeError(w, http.StatusBadRequest, "'to' must be a valid RFC3339 timestamp")
			return
		}
		if err = h.validator.ValidateDateRange(from, to); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		view, err = h.service.HistoryBetween(r.Context(), base, target, from, to)
	} else {
		hours := defaultHistoryHours
		if hoursRaw := r.URL.Query().Get("hours"); hoursRaw != "" {
			if hours, err = strconv.Atoi(hoursRaw); err != nil {
				writeError(w, http.StatusBadRequest, rate.ErrHoursOutOfRange.Error())
				return
			}
		}
		if err = h.validator.ValidateHours(hours); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		view, err = h.service.History(r.Context(), base, target, hours)
	}

	if err != nil {
		msg := "ups, couldn't load rate history this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetHistory", "base": base, "target": target}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	records := make([]HistoryRecordResponse, 0, len(view.Records))
	for _, rec := range view.Records {
		records = append(records, HistoryRecordResponse{
			Rate:      rec.Rate,
			Source:    rec.Source,
			Timestamp: rec.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, HistoryResponse{
		BaseCurrency:   view.Pair.Base,
		TargetCurrency: view.Pair.Target,
		Period:         view.Period,
		Count:          view.Count,
		Records:        records,
	})
}
