// Package validate checks raw passenger attributes before prediction.
//
// Only presence and the two numeric domains (age, fare) are checked here.
// Encoded categorical fields are accepted as supplied; the schema endpoint
// documents their domains and the caller is expected to constrain them.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/whitestar/lifeboat/internal/domain/passenger"
)

// Age bounds accepted from callers.
const (
	MinAge = 0.0
	MaxAge = 120.0
)

// Caller-facing reasons. These strings are returned verbatim and shown to
// end users, so they must stay stable.
const (
	ReasonAllFieldsRequired = "All fields are required. Please fill in all inputs."
	ReasonAgeRange          = "Age must be between 0 and 120."
	ReasonAgeNumber         = "Age must be a valid number."
	ReasonFareNegative      = "Fare cannot be negative."
	ReasonFareNumber        = "Fare must be a valid number."
)

// Check validates raw passenger attributes. It returns nil when the input is
// acceptable and a *Error carrying the kind and caller-facing reason when it
// is not. Checks run in order: presence of every field, then age, then fare;
// the first failure wins.
func Check(raw passenger.Raw) error {
	fields := []string{
		raw.Class,
		raw.Sex,
		raw.Age,
		raw.SiblingsSpouses,
		raw.ParentsChildren,
		raw.Fare,
		raw.EmbarkationPort,
	}
	for _, v := range fields {
		if strings.TrimSpace(v) == "" {
			return newError(ErrMissingField, ReasonAllFieldsRequired)
		}
	}

	age, err := parseNumber(raw.Age)
	if err != nil {
		return newError(ErrInvalidAge, ReasonAgeNumber)
	}
	// Positive form so a NaN that slipped past parsing would still fail.
	if !(age >= MinAge && age <= MaxAge) {
		return newError(ErrInvalidAge, ReasonAgeRange)
	}

	fare, err := parseNumber(raw.Fare)
	if err != nil {
		return newError(ErrInvalidFare, ReasonFareNumber)
	}
	if !(fare >= 0) {
		return newError(ErrInvalidFare, ReasonFareNegative)
	}

	return nil
}

// parseNumber parses a finite float64. NaN and infinities are rejected so
// they can never reach a feature vector.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}
