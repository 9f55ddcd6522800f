package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fxconvert/internal/domain"
	"fxconvert/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type ConvertResponse struct {
	RateResponse
	Amount          float64 `json:"amount" example:"100"`
	ConvertedAmount float64 `json:"convertedAmount" example:"92.31"`
}

// Convert godoc
// @Summary Convert an amount
// @Description Resolve the rate for a pair and apply it to the given amount, rounded to 2 decimal places
// @Tags Rates
// @Produce json
// @Param base path string true "Base currency code" example(USD)
// @Param target path string true "Target currency code" example(EUR)
// @Param amount query number true "Amount in the base currency" example(100)
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /convert/{base}/{target} [get]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "base")))
	target := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "target")))

	if err := h.validator.ValidateCodes(base, target); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, rate.ErrAmountInvalid.Error())
		return
	}
	if err = h.validator.ValidateAmount(amount); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conv, err := h.service.Convert(r.Context(), base, target, amount)
	if err != nil {
		if errors.Is(err, domain.ErrRateUnavailable) {
			writeError(w, http.StatusNotFound, "no rate available for "+base+"/"+target)
			return
		}
		msg := "ups, couldn't convert this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Convert", "base": base, "target": target}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		RateResponse:    rateResponseFrom(&conv.Quote),
		Amount:          conv.Amount,
		ConvertedAmount: conv.ConvertedAmount,
	})
}
