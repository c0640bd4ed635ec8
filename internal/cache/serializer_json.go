package cache

import (
	json "github.com/goccy/go-json"
)

// JSONSerializer stores values as JSON text. It is restricted to
// JSON-representable values: anything encoding/json (or a drop-in
// replacement) can marshal and unmarshal into `any`.
type JSONSerializer struct{}

// NewJSONSerializer constructs a JSONSerializer.
func NewJSONSerializer() Serializer { return JSONSerializer{} }

func (JSONSerializer) Serialize(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (JSONSerializer) Deserialize(payload []byte) (any, error) {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (JSONSerializer) Extension() string { return "json" }
func (JSONSerializer) IsBinary() bool    { return false }
