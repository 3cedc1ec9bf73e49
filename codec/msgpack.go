package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is a Codec that serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Msgpack is compact and fast; be mindful of struct tag differences vs JSON.
// Use `msgpack:"fieldName"` tags if you need explicit control. String-keyed
// maps decode as map[string]any, so structural merging works the same as
// with JSON records.
type Msgpack[V any] struct{}

var (
	_ Codec[struct{}] = Msgpack[struct{}]{}
	_ Structural      = Msgpack[struct{}]{}
)

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}
func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}

func (Msgpack[V]) EncodeAny(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}
func (Msgpack[V]) DecodeAny(b []byte) (any, error) {
	var v any
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
