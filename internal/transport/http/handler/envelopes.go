package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/frental-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps login/register responses.
type AuthEnvelope struct {
	Bearer   string           `json:"Bearer,omitempty"`
	Landlord *domain.Landlord `json:"landlord,omitempty"`
	Admin    *domain.Admin    `json:"admin,omitempty"`
	Message  string           `json:"message,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// RetryEnvelope carries the cooldown hint on throttled requests.
type RetryEnvelope struct {
	Error             string `json:"error"`
	RetryAfterSeconds int    `json:"retry_after_seconds"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeDomainError maps service errors onto HTTP statuses. Throttled
// requests additionally carry retry_after_seconds and a Retry-After header.
func writeDomainError(w http.ResponseWriter, err error) {
	var tmr *domain.TooManyRequestsError
	if errors.As(err, &tmr) {
		w.Header().Set("Retry-After", strconv.Itoa(tmr.RetryAfterSeconds))
		writeJSON(w, http.StatusTooManyRequests, RetryEnvelope{
			Error:             err.Error(),
			RetryAfterSeconds: tmr.RetryAfterSeconds,
		})
		return
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
