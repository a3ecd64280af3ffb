package apperror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		Conflict:           http.StatusBadRequest,
		InvalidCredentials: http.StatusBadRequest,
		ValidationError:    http.StatusBadRequest,
		Unauthenticated:    http.StatusUnauthorized,
		Forbidden:          http.StatusForbidden,
		NotFound:           http.StatusNotFound,
		ServerFault:        http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, Status(New(kind, "x")))
	}
}

func TestKindOfPlainErrorIsServerFault(t *testing.T) {
	assert.Equal(t, ServerFault, KindOf(errors.New("boom")))
}

func TestWriteJSONHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestWriteJSONKeepsDomainMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, New(NotFound, "Document not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Document not found"}`, rec.Body.String())
}

func TestFromStatusRoundTrip(t *testing.T) {
	err := FromStatus(http.StatusForbidden, "Access denied")
	assert.Equal(t, Forbidden, err.Kind)
	assert.Equal(t, "Access denied", err.Message)

	assert.Equal(t, http.StatusText(http.StatusNotFound), FromStatus(http.StatusNotFound, "").Message)
}
