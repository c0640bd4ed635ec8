package cache

// Serializer converts values to and from a storable representation. A
// serializer declares whether its payload is binary (so persistence writes
// it as raw bytes) or textual, and the filename extension snapshots should
// carry.
type Serializer interface {
	// Serialize encodes v into its stored representation.
	Serialize(v any) ([]byte, error)

	// Deserialize decodes payload back into a value.
	Deserialize(payload []byte) (any, error)

	// Extension is the filename suffix (without the leading dot) snapshots
	// written with this serializer should use.
	Extension() string

	// IsBinary reports whether Serialize's output should be treated as raw
	// bytes rather than text.
	IsBinary() bool
}

// SerializerConstructor builds a fresh Serializer instance.
type SerializerConstructor func() Serializer
