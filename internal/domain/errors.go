package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInputFormat indicates the whole input was not VCF-shaped at all, as
// opposed to individual malformed records. It is the only error kind that
// propagates out of a pipeline run; per-record failures are recovered
// locally. Callers must distinguish it from a valid empty result.
var ErrInputFormat = errors.New("input is not a valid VCF document")

// ErrNotFound is returned by annotation stores when no entry exists for a
// variant identifier and the store carries no fallback.
var ErrNotFound = errors.New("not found")

// ParseError describes a single malformed VCF line. The parser drops the
// line and continues; the error is logged, never propagated as fatal.
type ParseError struct {
	Line    int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// AnnotationError describes a failed annotation lookup for one variant.
// The classifier skips the variant and continues with the batch.
type AnnotationError struct {
	VariantID string
	Err       error
}

// Error implements the error interface.
func (e *AnnotationError) Error() string {
	return fmt.Sprintf("annotation lookup for %s: %v", e.VariantID, e.Err)
}

// Unwrap exposes the underlying lookup failure.
func (e *AnnotationError) Unwrap() error {
	return e.Err
}

// Error codes for API failure scenarios.
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeInputFormat    = "INPUT_FORMAT_ERROR"
	ErrCodeUpload         = "UPLOAD_VALIDATION_ERROR"
	ErrCodeRateLimit      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalServer = "INTERNAL_SERVER_ERROR"
)

// ServiceError is the standardized error envelope returned by the API.
type ServiceError struct {
	Code          string    `json:"code"`
	Message       string    `json:"message"`
	Details       string    `json:"details,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewServiceError creates a ServiceError stamped with the current time.
func NewServiceError(code, message, details, correlationID string) *ServiceError {
	return &ServiceError{
		Code:          code,
		Message:       message,
		Details:       details,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
	}
}
