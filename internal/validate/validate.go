// Package validate holds the client-side input checks that run before
// anything reaches the API client. The backend re-validates; these
// exist so obviously bad input never costs a round-trip.
package validate

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"aptbill/client/internal/models"
)

var (
	ErrAmountNotNumeric  = errors.New("amount is not a number")
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrBadDate           = errors.New("date must be YYYY-MM-DD")
)

// Amount parses a user-entered amount string and requires it to be a
// positive decimal. "0", negatives, and non-numeric input are rejected.
// ParseFloat also accepts "NaN" and the infinity spellings; neither is
// a payable amount, so they are folded into the non-numeric rejection.
func Amount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrAmountNotNumeric
	}
	if v <= 0 {
		return 0, ErrAmountNotPositive
	}
	return v, nil
}

// Date checks a user-entered calendar date against the wire layout.
func Date(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if _, err := time.Parse(models.DateOnly, raw); err != nil {
		return "", ErrBadDate
	}
	return raw, nil
}
