package cacheerr

// Classification indicates whether a failed operation is worth retrying.
type Classification string

const (
	// Retryable means the same call might succeed later without caller changes
	// (e.g. a transient disk failure behind the circuit breaker).
	Retryable Classification = "RETRYABLE"

	// Permanent means the caller must change something before retrying helps
	// (e.g. the key genuinely does not exist, or the TTL was invalid).
	Permanent Classification = "PERMANENT"
)

// IsRetryable reports whether c is the Retryable classification.
func (c Classification) IsRetryable() bool {
	return c == Retryable
}

var defaultClassifications = map[ErrorCode]Classification{
	CodeKeyNotFound:      Permanent,
	CodeKeyExpired:       Permanent,
	CodeKeyAlreadyExists: Permanent,
	CodeInvalidTTL:       Permanent,
	CodeInvalidKey:       Permanent,
	CodeSerialization:    Permanent,
	CodePersistence:      Retryable,
	CodeRegistry:         Permanent,
	CodeConfiguration:    Permanent,
}

func defaultClassification(code ErrorCode) Classification {
	if c, ok := defaultClassifications[code]; ok {
		return c
	}
	return Permanent
}
