package autocomplete

import (
	"errors"
	"fmt"
	"net/http"
)

// ResolutionError means a registered entity or attribute does not map to a known model
type ResolutionError struct {
	Entity string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve entity %q: %s", e.Entity, e.Reason)
}

// BadRequestError means the request parameters are malformed
type BadRequestError struct {
	Param  string
	Reason string
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// DataAccessError wraps a failure of the underlying store
type DataAccessError struct {
	Err error
}

func (e *DataAccessError) Error() string {
	return "autocomplete query failed: " + e.Err.Error()
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// statusOf maps an error to its HTTP status and a short kind label for metrics
func statusOf(err error) (int, string) {
	var resolution *ResolutionError
	var badRequest *BadRequestError
	var dataAccess *DataAccessError
	switch {
	case errors.As(err, &badRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.As(err, &resolution):
		return http.StatusNotFound, "resolution"
	case errors.As(err, &dataAccess):
		return http.StatusInternalServerError, "data_access"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
