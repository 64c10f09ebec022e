package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/tutti-amici/internal/service/validation"
)

// ErrorResponse is the body of every failed request. Detail is either a
// message or a list of validation.Violation.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// Error writes err: validation errors become 422 with field details,
// anything else 500 with the error message.
func Error(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		JSON(w, http.StatusUnprocessableEntity, ErrorResponse{Detail: verr.Violations})

		return
	}

	JSON(w, http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
}
