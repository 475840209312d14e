package v1

import (
	"errors"
	"net/http"

	"github.com/moneydash/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Income errors
var (
	errAmountNotPositive = errors.New("the income amount must be positive")
	errStrategyInvalid   = errors.New("the specified distribution strategy is invalid")
)

// Binding errors. The "required" validation does not reject a zero UUID,
// so handlers check the bound IDs explicitly.
var (
	errAccountIDParameter = errors.New("the accountId parameter must be set")
	errAccountIDField     = errors.New("the accountId field must be set")
	errEnvelopeIDField    = errors.New("the envelopeId field must be set")
)

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)
