// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/wardshift/internal/app/system/requestid"
	"go.uber.org/zap"
)

// body is the JSON shape of every error response.
type body struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func write(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, status, body{
		Error:     http.StatusText(status),
		Message:   msg,
		RequestID: requestid.FromContext(r.Context()),
	})
}

// BadRequest reports malformed input (bad month, date, day or slot).
func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	write(w, r, http.StatusBadRequest, msg)
}

// Unprocessable reports a well-formed document that fails validation.
func Unprocessable(w http.ResponseWriter, r *http.Request, msg string) {
	write(w, r, http.StatusUnprocessableEntity, msg)
}

// NotFound reports an unknown route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	write(w, r, http.StatusNotFound, "no such endpoint")
}

// TooManyRequests reports a client over its write budget.
func TooManyRequests(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	write(w, r, http.StatusTooManyRequests, "too many writes; slow down")
}

// MethodNotAllowed reports a known route hit with the wrong verb.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	write(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// ErrorLogger logs a failure with the request id and answers 500.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger builds an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// Internal logs err and writes a generic 500 body; the error text is not sent.
func (e *ErrorLogger) Internal(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	requestid.Logger(r.Context(), e.Log).Error(msg, append(fields, zap.Error(err))...)
	write(w, r, http.StatusInternalServerError, msg)
}
