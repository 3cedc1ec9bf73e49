package duracache

import (
	"fmt"
)

// EncodeError reports a codec failure while serializing a value for storage.
type EncodeError struct {
	Key string
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %q failed: %v", e.Key, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports a codec failure while decoding a normalized record
// into the binding's value type. It usually means the binding was
// constructed with a codec that does not match the stored shape.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q failed: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
