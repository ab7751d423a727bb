package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validationf("missing field %s", "amount"), http.StatusBadRequest},
		{"invalid state", fmt.Errorf("not cancelled: %w", ErrInvalidState), http.StatusBadRequest},
		{"window expired", fmt.Errorf("too late: %w", ErrWindowExpired), http.StatusBadRequest},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("role check: %w", ErrForbidden), http.StatusForbidden},
		{"not found", fmt.Errorf("booking x: %w", ErrNotFound), http.StatusNotFound},
		{"inconsistency", InconsistencyError{Op: "approvePayment", Err: errors.New("boom")}, http.StatusInternalServerError},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestInconsistencyErrorUnwrap(t *testing.T) {
	cause := errors.New("write concern error")
	err := InconsistencyError{Op: "rejectPayment", BookingID: "bk-1", PaymentID: "p-1", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "rejectPayment")
	assert.Contains(t, err.Error(), "bk-1")
}

func TestRequireRole(t *testing.T) {
	assert.NoError(t, RequireRole("ADMIN", "ADMIN"))
	assert.NoError(t, RequireRole("SERVICE", "ADMIN", "SERVICE"))
	assert.ErrorIs(t, RequireRole("USER", "ADMIN", "SERVICE"), ErrForbidden)
	assert.ErrorIs(t, RequireRole("", "ADMIN"), ErrForbidden)
}
