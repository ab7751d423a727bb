package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Sentinel errors shared by every service. Handlers translate them to HTTP
// status codes with HTTPStatus; callers distinguish by status class only.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidState    = errors.New("invalid state for operation")
	ErrWindowExpired   = errors.New("time window expired")
)

// ValidationError flags missing or malformed caller input.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InconsistencyError signals that a reconciliation operation updated the
// payment but failed to update the sibling booking (or vice versa). The pair
// is left in a recoverable but inconsistent state, so this must surface as a
// distinct fatal condition rather than a generic failure.
type InconsistencyError struct {
	Op        string
	BookingID string
	PaymentID string
	Err       error
}

func (e InconsistencyError) Error() string {
	return fmt.Sprintf("%s left booking %s and payment %s inconsistent: %v",
		e.Op, e.BookingID, e.PaymentID, e.Err)
}

func (e InconsistencyError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps a service error to its HTTP status code.
func HTTPStatus(err error) int {
	var vErr ValidationError
	var iErr InconsistencyError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrWindowExpired):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &iErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	logger := GetLogger()
	logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// AbortWithError maps err to a status code and writes the standard body.
// Inconsistency errors are logged at error level so they can be alerted on.
func AbortWithError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	var iErr InconsistencyError
	if errors.As(err, &iErr) {
		GetLogger().Error("Reconciliation inconsistency",
			zap.String("op", iErr.Op),
			zap.String("bookingID", iErr.BookingID),
			zap.String("paymentID", iErr.PaymentID),
			zap.Error(iErr.Err))
	}
	JSONError(c, status, err.Error(), "")
}
