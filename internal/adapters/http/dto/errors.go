// Package dto provides Data Transfer Objects for HTTP request and response
// handling, plus the mapping from domain errors to the error envelope.
package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"insquote/internal/domain"
	"insquote/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g. "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details carries field-level messages for validation errors.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	// ErrorCodeNotFound indicates the requested resource was not found.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeValidation indicates request validation failed.
	ErrorCodeValidation = "VALIDATION_ERROR"

	// ErrorCodeStorage indicates the quote was computed but could not be
	// persisted. The request is safe to retry.
	ErrorCodeStorage = "STORAGE_ERROR"

	// ErrorCodeUnavailable indicates a dependency is unavailable.
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal = "INTERNAL_ERROR"

	// ErrorCodeBadRequest indicates the request was malformed.
	ErrorCodeBadRequest = "BAD_REQUEST"
)

// NewErrorResponse creates an error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID

	return e
}

// GetTraceID extracts the OpenTelemetry trace ID from the request context.
// Returns empty string when no span is recording.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

// MapDomainError maps a domain error to an HTTP status and error response.
// Unknown errors map to 500 with a generic message so internals never leak.
func MapDomainError(err error) (int, *ErrorResponse) {
	switch {
	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, "request validation failed")

		var validationErrs *domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			resp.Error.Details = validationErrs.Details()
		}

		return http.StatusBadRequest, resp

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsStorage(err):
		return http.StatusServiceUnavailable, NewErrorResponse(
			ErrorCodeStorage,
			"quote could not be persisted, retry with the same input",
		)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, err.Error())

	default:
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// HandleError writes a domain error to the response, attaching the trace ID
// and logging internal errors with full detail.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	if traceID := GetTraceID(c); traceID != "" {
		resp.TraceID = traceID
	}

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("internal error",
			"error", err.Error(),
			"trace_id", resp.TraceID,
		)
	}

	c.JSON(status, resp)
}
