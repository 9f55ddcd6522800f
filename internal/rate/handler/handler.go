package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fxconvert/internal/domain"
	"fxconvert/internal/rate"
)

type Validator interface {
	ValidateCodes(base, target string) error
	ValidateAmount(amount float64) error
	ValidateHours(hours int) error
	ValidateDateRange(from, to time.Time) error
}

type Service interface {
	Resolve(ctx context.Context, base, target string) (*domain.Quote, error)
	Convert(ctx context.Context, base, target string, amount float64) (*domain.Conversion, error)
	History(ctx context.Context, base, target string, hoursBack int) (*rate.HistoryView, error)
	HistoryBetween(ctx context.Context, base, target string, from, to time.Time) (*rate.HistoryView, error)
	TrackedPairs(ctx context.Context) ([]rate.PairStats, error)
	CacheStatus(ctx context.Context, base, target string) (*rate.CacheStatus, error)
	Invalidate(ctx context.Context, base, target string) error
	InvalidateAll(ctx context.Context) error
}

type Handler struct {
	validator Validator
	service   Service
}

func NewRateHandler(validator Validator, service Service) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
