package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type PairResponse struct {
	BaseCurrency   string `json:"baseCurrency" example:"USD"`
	TargetCurrency string `json:"targetCurrency" example:"EUR"`
	Records        int64  `json:"records" example:"42"`
}

type PairsResponse struct {
	Count int            `json:"count" example:"2"`
	Pairs []PairResponse `json:"pairs"`
}

func (h *Handler) GetPairs(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.TrackedPairs(r.Context())
	if err != nil {
		msg := "ups, couldn't list tracked pairs this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetPairs"}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	pairs := make([]PairResponse, 0, len(stats))
	for _, s := range stats {
		pairs = append(pairs, PairResponse{
			BaseCurrency:   s.Pair.Base,
			TargetCurrency: s.Pair.Target,
			Records:        s.Records,
		})
	}

	writeJSON(w, http.StatusOK, PairsResponse{Count: len(pairs), Pairs: pairs})
}
