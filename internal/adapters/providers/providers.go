package providers

import (
	"fmt"
	"math"
)

// checkRate rejects values no provider should ever hand us: zero, negative,
// NaN or infinite rates all make a response unusable for averaging.
func checkRate(rate float64, provider, base, target string) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%s returned non-finite rate for %s/%s", provider, base, target)
	}
	if rate <= 0 {
		return fmt.Errorf("%s returned non-positive rate %v for %s/%s", provider, rate, base, target)
	}
	return nil
}
