// Package apperror carries the service's error taxonomy together with its
// HTTP status mapping. Handlers translate any error into a structured
// {"message": ...} body; unknown errors are reported as a server fault
// without leaking internals.
package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	ServerFault Kind = iota
	Conflict
	InvalidCredentials
	Unauthenticated
	NotFound
	Forbidden
	ValidationError
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from err, defaulting to ServerFault.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ServerFault
}

// Status maps an error to the HTTP status of the wire contract. Conflict and
// InvalidCredentials travel as 400, matching the public API.
func Status(err error) int {
	switch KindOf(err) {
	case Conflict, InvalidCredentials, ValidationError:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus rebuilds a kinded error on the client side of the wire. 400
// responses collapse into ValidationError because the contract does not
// distinguish them by status.
func FromStatus(code int, message string) *Error {
	var kind Kind
	switch code {
	case http.StatusBadRequest:
		kind = ValidationError
	case http.StatusUnauthorized:
		kind = Unauthenticated
	case http.StatusForbidden:
		kind = Forbidden
	case http.StatusNotFound:
		kind = NotFound
	case http.StatusConflict:
		kind = Conflict
	default:
		kind = ServerFault
	}
	if message == "" {
		message = http.StatusText(code)
	}
	return &Error{Kind: kind, Message: message}
}

type messageBody struct {
	Message string `json:"message"`
}

// WriteJSON writes err as a structured JSON error response.
func WriteJSON(w http.ResponseWriter, err error) {
	status := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(messageBody{Message: msg})
}
