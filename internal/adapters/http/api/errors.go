package api

import (
	"errors"
	"net/http"

	"github.com/whitestar/lifeboat/internal/domain/predict"
	"github.com/whitestar/lifeboat/internal/domain/validate"
)

// codeFor maps pipeline errors onto HTTP statuses and stable error codes.
// Validation failures are the caller's fault; everything downstream of a
// valid input is ours.
func codeFor(err error) (int, string) {
	switch {
	case errors.Is(err, validate.ErrMissingField):
		return http.StatusBadRequest, "missing_field"
	case errors.Is(err, validate.ErrInvalidAge):
		return http.StatusBadRequest, "invalid_age"
	case errors.Is(err, validate.ErrInvalidFare):
		return http.StatusBadRequest, "invalid_fare"
	case errors.Is(err, predict.ErrPrediction):
		return http.StatusInternalServerError, "prediction_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
