package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/onnwee/quickcache/internal/cacheerr"
	"github.com/onnwee/quickcache/internal/logger"
)

// ErrorCode represents a structured error code
type ErrorCode string

// Error code constants organized by category
const (
	// CACHE_ - Cache engine errors, mirroring internal/cacheerr's taxonomy
	// at the HTTP boundary
	ErrCacheKeyNotFound      ErrorCode = "CACHE_KEY_NOT_FOUND"
	ErrCacheKeyExpired       ErrorCode = "CACHE_KEY_EXPIRED"
	ErrCacheKeyAlreadyExists ErrorCode = "CACHE_KEY_ALREADY_EXISTS"
	ErrCacheInvalidTTL       ErrorCode = "CACHE_INVALID_TTL"
	ErrCacheInvalidKey       ErrorCode = "CACHE_INVALID_KEY"
	ErrCacheSerialization    ErrorCode = "CACHE_SERIALIZATION_FAILED"
	ErrCachePersistence      ErrorCode = "CACHE_PERSISTENCE_FAILED"
	ErrCacheRegistry         ErrorCode = "CACHE_REGISTRY_ERROR"
	ErrCacheConfiguration    ErrorCode = "CACHE_CONFIGURATION_ERROR"

	// SYSTEM_ - System and server errors
	ErrSystemInternal    ErrorCode = "SYSTEM_INTERNAL"
	ErrSystemUnavailable ErrorCode = "SYSTEM_UNAVAILABLE"
	ErrSystemTimeout     ErrorCode = "SYSTEM_TIMEOUT"

	// VALIDATION_ - Request validation errors
	ErrValidationInvalidJSON   ErrorCode = "VALIDATION_INVALID_JSON"
	ErrValidationInvalidFormat ErrorCode = "VALIDATION_INVALID_FORMAT"
	ErrValidationMissingField  ErrorCode = "VALIDATION_MISSING_FIELD"
	ErrValidationInvalidValue  ErrorCode = "VALIDATION_INVALID_VALUE"

	// RESOURCE_ - Resource errors not specific to the cache key taxonomy
	ErrResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	ErrResourceConflict ErrorCode = "RESOURCE_CONFLICT"

	// RATE_LIMIT_ - Rate limiting errors
	ErrRateLimitGlobal ErrorCode = "RATE_LIMIT_GLOBAL"
	ErrRateLimitIP     ErrorCode = "RATE_LIMIT_IP"

	// AUTH_ - Admin API authentication errors
	ErrAuthUnauthorized ErrorCode = "AUTH_UNAUTHORIZED"
)

// Error represents a structured API error
type Error struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	status    int                    // HTTP status code (not serialized)
}

// ErrorResponse is the top-level error response wrapper
type ErrorResponse struct {
	Error *Error `json:"error"`
}

// New creates a new API error
func New(code ErrorCode, message string, status int) *Error {
	return &Error{
		Code:    code,
		Message: message,
		status:  status,
	}
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	e.Details = details
	return e
}

// WithRequestID adds a request ID to the error
func (e *Error) WithRequestID(requestID string) *Error {
	e.RequestID = requestID
	return e
}

// Error implements the error interface
func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Status returns the HTTP status code
func (e *Error) Status() int {
	return e.status
}

// WriteError writes a structured error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status())
	json.NewEncoder(w).Encode(ErrorResponse{Error: err})
}

// cacheCodeMapping maps a cacheerr.ErrorCode to the HTTP-facing ErrorCode
// and status it surfaces as.
var cacheCodeMapping = map[cacheerr.ErrorCode]struct {
	code   ErrorCode
	status int
}{
	cacheerr.CodeKeyNotFound:      {ErrCacheKeyNotFound, http.StatusNotFound},
	cacheerr.CodeKeyExpired:       {ErrCacheKeyExpired, http.StatusGone},
	cacheerr.CodeKeyAlreadyExists: {ErrCacheKeyAlreadyExists, http.StatusConflict},
	cacheerr.CodeInvalidTTL:       {ErrCacheInvalidTTL, http.StatusBadRequest},
	cacheerr.CodeInvalidKey:       {ErrCacheInvalidKey, http.StatusBadRequest},
	cacheerr.CodeSerialization:    {ErrCacheSerialization, http.StatusInternalServerError},
	cacheerr.CodePersistence:      {ErrCachePersistence, http.StatusServiceUnavailable},
	cacheerr.CodeRegistry:         {ErrCacheRegistry, http.StatusInternalServerError},
	cacheerr.CodeConfiguration:    {ErrCacheConfiguration, http.StatusInternalServerError},
}

// FromCacheError translates a cacheerr.Error into the HTTP-facing taxonomy.
// Errors that did not originate from the cache package fall back to
// SystemInternal, so handlers can pass any error through unconditionally.
func FromCacheError(err error) *Error {
	var cerr *cacheerr.Error
	if !errors.As(err, &cerr) {
		return SystemInternal(err.Error())
	}
	mapping, ok := cacheCodeMapping[cerr.Code()]
	if !ok {
		return SystemInternal(cerr.Message())
	}
	apiErr := New(mapping.code, cerr.Message(), mapping.status)
	if ctx := cerr.Context(); len(ctx) > 0 {
		apiErr = apiErr.WithDetails(ctx)
	}
	return apiErr
}

// Helper functions for common errors

// SystemInternal creates an internal server error
func SystemInternal(message string) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return New(ErrSystemInternal, message, http.StatusInternalServerError)
}

// SystemUnavailable creates a service unavailable error
func SystemUnavailable(message string) *Error {
	if message == "" {
		message = "Service unavailable"
	}
	return New(ErrSystemUnavailable, message, http.StatusServiceUnavailable)
}

// SystemTimeout creates a system timeout error
func SystemTimeout(message string) *Error {
	if message == "" {
		message = "Request timeout"
	}
	return New(ErrSystemTimeout, message, http.StatusRequestTimeout)
}

// ValidationInvalidJSON creates an invalid JSON error
func ValidationInvalidJSON() *Error {
	return New(ErrValidationInvalidJSON, "Invalid JSON request body", http.StatusBadRequest)
}

// ValidationInvalidFormat creates an invalid format error
func ValidationInvalidFormat(message string) *Error {
	if message == "" {
		message = "Invalid request format"
	}
	return New(ErrValidationInvalidFormat, message, http.StatusBadRequest)
}

// ValidationMissingField creates a missing field error
func ValidationMissingField(field string) *Error {
	return New(ErrValidationMissingField, "Missing required field: "+field, http.StatusBadRequest).
		WithDetails(map[string]interface{}{"field": field})
}

// ValidationInvalidValue creates an invalid value error
func ValidationInvalidValue(field string, message string) *Error {
	if message == "" {
		message = "Invalid value for field: " + field
	}
	return New(ErrValidationInvalidValue, message, http.StatusBadRequest).
		WithDetails(map[string]interface{}{"field": field})
}

// ResourceNotFound creates a resource not found error
func ResourceNotFound(resourceType string) *Error {
	return New(ErrResourceNotFound, resourceType+" not found", http.StatusNotFound).
		WithDetails(map[string]interface{}{"resource_type": resourceType})
}

// ResourceConflict creates a resource conflict error
func ResourceConflict(message string) *Error {
	if message == "" {
		message = "Resource conflict"
	}
	return New(ErrResourceConflict, message, http.StatusConflict)
}

// RateLimitGlobal creates a global rate limit error
func RateLimitGlobal() *Error {
	return New(ErrRateLimitGlobal, "Rate limit exceeded - too many requests globally", http.StatusTooManyRequests)
}

// RateLimitIP creates an IP rate limit error
func RateLimitIP() *Error {
	return New(ErrRateLimitIP, "Rate limit exceeded - too many requests from your IP", http.StatusTooManyRequests)
}

// AuthUnauthorized creates an admin token authentication error
func AuthUnauthorized() *Error {
	return New(ErrAuthUnauthorized, "invalid or missing admin token", http.StatusUnauthorized)
}

// GetRequestID extracts the request ID from the context
func GetRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(logger.RequestIDKey).(string); ok {
		return reqID
	}
	return ""
}

// WriteErrorWithContext writes a structured error response with request ID from context
func WriteErrorWithContext(w http.ResponseWriter, r *http.Request, err *Error) {
	if reqID := GetRequestID(r.Context()); reqID != "" {
		err = err.WithRequestID(reqID)
	}
	WriteError(w, err)
}
