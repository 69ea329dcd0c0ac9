package msgpack

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the closed taxonomy of spec section 7.
// Callers compare against these with errors.Is; DecodeError/EncodeError
// wrap them with the diagnostic detail a caller needs to act on a
// failure (tag byte, requested family, stream position).
var (
	// ErrEndOfInput is raised when a decode operation finds no bytes
	// available at the source.
	ErrEndOfInput = errors.New("msgpack: end of input")

	// ErrStreamWrite is raised when the sink reports a write failure.
	ErrStreamWrite = errors.New("msgpack: stream write failed")

	// ErrTypeMismatch is raised when the peeked tag is not a member of
	// the family group selected by the destination type.
	ErrTypeMismatch = errors.New("msgpack: tag does not match destination family")

	// ErrNarrowingConversion is raised when the family is compatible
	// but the destination's representable range cannot hold every
	// value of the family.
	ErrNarrowingConversion = errors.New("msgpack: value does not fit destination type")

	// ErrCapacityTooSmall is raised when a fixed-size destination
	// buffer is smaller than the decoded length (plus any mandatory
	// NUL byte).
	ErrCapacityTooSmall = errors.New("msgpack: destination buffer too small")

	// ErrLengthOverflow is raised when an input string or array
	// exceeds 2^32-1 elements/bytes during encode.
	ErrLengthOverflow = errors.New("msgpack: length exceeds 2^32-1")
)

// DecodeError carries the context of a failed deserialize call: the
// tag byte observed (if any), the family the destination requested,
// and the source position at the time of failure.
type DecodeError struct {
	Err      error
	Tag      byte
	HaveTag  bool
	Family   string
	Position int
}

func (e *DecodeError) Error() string {
	if e.HaveTag {
		return fmt.Sprintf("msgpack: decode %s at offset %d: %v (tag 0x%02x)", e.Family, e.Position, e.Err, e.Tag)
	}
	return fmt.Sprintf("msgpack: decode %s at offset %d: %v", e.Family, e.Position, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func newDecodeError(err error, family string, pos int) *DecodeError {
	return &DecodeError{Err: err, Family: family, Position: pos}
}

func newDecodeErrorTag(err error, family string, pos int, tag byte) *DecodeError {
	return &DecodeError{Err: err, Family: family, Position: pos, Tag: tag, HaveTag: true}
}

// EncodeError carries the context of a failed serialize call.
type EncodeError struct {
	Err      error
	Position int
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("msgpack: encode at offset %d: %v", e.Position, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

func newEncodeError(err error, pos int) *EncodeError {
	return &EncodeError{Err: err, Position: pos}
}
