package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Structural is implemented by codecs that can also round-trip untyped
// object graphs (map[string]any / []any / scalars). The binding layer uses
// it to parse stored records for schema merging; a DecodeAny failure is the
// signal that a record is an opaque legacy value rather than structured
// data.
type Structural interface {
	EncodeAny(v any) ([]byte, error)
	DecodeAny(b []byte) (any, error)
}
