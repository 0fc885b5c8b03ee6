// Package validators holds the range and set checks drivers apply to
// setter arguments before anything is written to the wire.
package validators

import (
	"fmt"
	"math"
	"sort"

	"github.com/gomeasure/gomeasure/internal/errors"
)

// StrictRange returns v unchanged if min <= v <= max.
func StrictRange(v, min, max float64) (float64, error) {
	if v < min || v > max {
		return 0, errors.OutOfRangeError(
			fmt.Sprintf("value %g is not in range [%g, %g]", v, min, max))
	}
	return v, nil
}

// TruncatedRange clamps v to [min, max].
func TruncatedRange(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// StrictDiscreteSet returns v unchanged if it is a member of set.
func StrictDiscreteSet[T comparable](v T, set []T) (T, error) {
	for _, s := range set {
		if v == s {
			return v, nil
		}
	}
	var zero T
	return zero, errors.NewAppError(errors.ErrCodeInvalidOption,
		fmt.Sprintf("value %v is not in the discrete set %v", v, set))
}

// TruncatedDiscreteSet returns the smallest member of set that is >= v,
// or the largest member when v exceeds them all.
func TruncatedDiscreteSet(v float64, set []float64) float64 {
	sorted := append([]float64(nil), set...)
	sort.Float64s(sorted)
	for _, s := range sorted {
		if v <= s {
			return s
		}
	}
	return sorted[len(sorted)-1]
}

// StrictDiscreteRange returns v unchanged if it lies in [min, max] and is
// an integer number of steps from min.
func StrictDiscreteRange(v, min, max, step float64) (float64, error) {
	if _, err := StrictRange(v, min, max); err != nil {
		return 0, err
	}
	n := (v - min) / step
	if math.Abs(n-math.Round(n)) > 1e-9 {
		return 0, errors.OutOfRangeError(
			fmt.Sprintf("value %g is not a multiple of %g from %g", v, step, min))
	}
	return v, nil
}
