package codec

import "google.golang.org/protobuf/proto"

// Protobuf serializes proto messages. Bindings built on it skip structural
// merging (proto wire bytes are not JSON-shaped) unless paired with an
// explicit Structural codec; schema evolution is then proto's own concern.
type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message (e.g., func() *mypb.State { return &mypb.State{} })
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}
func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
