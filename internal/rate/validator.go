package rate

import (
	"errors"
	"math"
	"time"
)

const (
	MinHistoryHours = 1
	MaxHistoryHours = 720
)

var (
	ErrBaseRequired    = errors.New("base currency is required")
	ErrTargetRequired  = errors.New("target currency is required")
	ErrBadBaseCode     = errors.New("base currency must be a 3-letter code")
	ErrBadTargetCode   = errors.New("target currency must be a 3-letter code")
	ErrAmountInvalid   = errors.New("amount must be a positive number")
	ErrHoursOutOfRange = errors.New("hours must be between 1 and 720")
	ErrBadDateRange    = errors.New("'from' must be before 'to'")
)

// CurrencyValidator checks request shape only. ISO-4217 membership is not
// verified and same-code pairs are allowed; those resolve as identity.
type CurrencyValidator struct{}

func NewValidator() *CurrencyValidator {
	return &CurrencyValidator{}
}

func (v *CurrencyValidator) ValidateCodes(base, target string) error {
	if base == "" {
		return ErrBaseRequired
	}
	if target == "" {
		return ErrTargetRequired
	}
	if !isCurrencyCode(base) {
		return ErrBadBaseCode
	}
	if !isCurrencyCode(target) {
		return ErrBadTargetCode
	}
	return nil
}

func (v *CurrencyValidator) ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrAmountInvalid
	}
	return nil
}

func (v *CurrencyValidator) ValidateHours(hours int) error {
	if hours < MinHistoryHours || hours > MaxHistoryHours {
		return ErrHoursOutOfRange
	}
	return nil
}

func (v *CurrencyValidator) ValidateDateRange(from, to time.Time) error {
	if !from.Before(to) {
		return ErrBadDateRange
	}
	return nil
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
