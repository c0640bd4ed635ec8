package cacheerr

import "errors"

// KeyNotFound builds the error returned when key is absent from the store.
func KeyNotFound(key string) *Error {
	return New(CodeKeyNotFound, "key not found").WithContext("key", key)
}

// KeyExpired builds the error returned when key was present but its TTL lapsed.
func KeyExpired(key string) *Error {
	return New(CodeKeyExpired, "key expired").WithContext("key", key)
}

// KeyAlreadyExists builds the error returned by Add against a live key.
func KeyAlreadyExists(key string) *Error {
	return New(CodeKeyAlreadyExists, "key already exists").WithContext("key", key)
}

// InvalidTTL builds the error returned for a non-positive explicit TTL.
func InvalidTTL(ttlSeconds int64) *Error {
	return Newf(CodeInvalidTTL, "ttl must be positive, got %d", ttlSeconds).WithContext("ttl_seconds", ttlSeconds)
}

// InvalidKey builds the error returned for a key failing basic validation.
func InvalidKey(key string) *Error {
	return New(CodeInvalidKey, "key must not be empty").WithContext("key", key)
}

// Serialization wraps a Serializer failure.
func Serialization(cause error) *Error {
	return Wrap(CodeSerialization, "serialization failed", cause)
}

// Persistence wraps a FileManager or circuit-breaker failure.
func Persistence(op string, cause error) *Error {
	return Wrap(CodePersistence, "persistence operation failed: "+op, cause).WithContext("operation", op)
}

// Registry builds the error returned for a duplicate or unknown registry name.
func Registry(message string, name string) *Error {
	return New(CodeRegistry, message).WithContext("name", name)
}

// Configuration builds the error returned for an invalid Store configuration.
func Configuration(message string) *Error {
	return New(CodeConfiguration, message)
}

// Code extracts the ErrorCode from err, or "" if err is not a *Error.
func Code(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return Code(err) == code
}
