// Package cacheerr defines the structured error taxonomy returned by the cache
// engine. Every error the engine raises carries a machine-readable code and a
// retry classification instead of an ad hoc message, so callers can branch on
// errors.As instead of string matching.
package cacheerr

// ErrorCode identifies a specific cache failure condition.
type ErrorCode string

const (
	// CodeKeyNotFound indicates the requested key is absent (or was absent and
	// expired, which is treated identically from the caller's viewpoint).
	CodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"

	// CodeKeyExpired indicates the key existed but its TTL has lapsed.
	CodeKeyExpired ErrorCode = "KEY_EXPIRED"

	// CodeKeyAlreadyExists indicates Add was called against a live key.
	CodeKeyAlreadyExists ErrorCode = "KEY_ALREADY_EXISTS"

	// CodeInvalidTTL indicates a non-positive TTL was supplied where one is required.
	CodeInvalidTTL ErrorCode = "INVALID_TTL"

	// CodeInvalidKey indicates the supplied key fails basic validation (e.g. empty).
	CodeInvalidKey ErrorCode = "INVALID_KEY"

	// CodeSerialization indicates a Serializer failed to encode or decode a value.
	CodeSerialization ErrorCode = "SERIALIZATION_FAILED"

	// CodePersistence indicates a FileManager read, write, or breaker failure.
	CodePersistence ErrorCode = "PERSISTENCE_FAILED"

	// CodeRegistry indicates a duplicate or unknown name in the policy/serializer registry.
	CodeRegistry ErrorCode = "REGISTRY_ERROR"

	// CodeConfiguration indicates an invalid Store configuration.
	CodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
)
