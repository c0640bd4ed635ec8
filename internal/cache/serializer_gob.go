package cache

import (
	"bytes"
	"encoding/gob"
)

func init() {
	// Common concrete types that flow through `any` when values originate
	// from JSON-like call sites or Go literals. Callers storing their own
	// named types must gob.Register them before use, same as pickle needs
	// a type to be importable to unpickle it.
	gob.Register(map[string]any{})
	gob.Register([]any{})
	gob.Register("")
	gob.Register(0)
	gob.Register(int64(0))
	gob.Register(float64(0))
	gob.Register(false)
	gob.Register([]byte(nil))
	gob.Register(Document{})
	gob.Register(MetricsDocument{})
}

// gobEnvelope carries the value through gob, which cannot encode a bare
// interface{} without a concrete wrapper to hang the type descriptor on.
type gobEnvelope struct {
	Value any
}

// GobSerializer stores arbitrary native Go values in gob's binary wire
// format. It is the Go analogue of a schemaless, language-native binary
// serializer: like pickle, it can round-trip any registered concrete type
// without a predeclared schema, at the cost of being Go-specific and
// requiring gob.Register for custom types.
type GobSerializer struct{}

// NewGobSerializer constructs a GobSerializer.
func NewGobSerializer() Serializer { return GobSerializer{} }

func (GobSerializer) Serialize(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gobEnvelope{Value: v}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (GobSerializer) Deserialize(payload []byte) (any, error) {
	var env gobEnvelope
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&env); err != nil {
		return nil, err
	}
	return env.Value, nil
}

func (GobSerializer) Extension() string { return "gob" }
func (GobSerializer) IsBinary() bool    { return true }
