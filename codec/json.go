package codec

import "encoding/json"

// AnyJSON round-trips untyped JSON object graphs. It is the structural
// fallback the binding layer uses when a typed codec has no structural
// support of its own.
type AnyJSON struct{}

var _ Structural = AnyJSON{}

func (AnyJSON) EncodeAny(v any) ([]byte, error) { return json.Marshal(v) }
func (AnyJSON) DecodeAny(b []byte) (any, error) {
	var v any
	err := json.Unmarshal(b, &v)
	return v, err
}

// JSON is the default codec: typed encode/decode plus structural support
// via the embedded AnyJSON. Records stay bare JSON text, which keeps legacy
// plain-string values detectable as parse failures.
type JSON[V any] struct{ AnyJSON }

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
