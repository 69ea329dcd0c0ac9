package msgpack

import (
	"fmt"
	"math"
)

// Encoder writes MessagePack-encoded values to a Writer. It owns no
// heap state beyond what the Writer allocates; Close flushes the
// underlying stream and must be called once the caller is done
// encoding (mirroring the spec's "closing/dropping the encoder MUST
// flush the sink"). An Encoder is bound to exactly one Writer for its
// lifetime and is not safe for concurrent use.
type Encoder struct {
	w           Writer
	startOffset int
}

// NewEncoder binds a new Encoder to w, recording w's current position
// as the encoder's start offset so ByteCount reports only what this
// encoder wrote.
func NewEncoder(w Writer) *Encoder {
	return &Encoder{w: w, startOffset: w.Pos()}
}

// ByteCount returns the number of bytes written since construction.
func (e *Encoder) ByteCount() int {
	return e.w.Pos() - e.startOffset
}

// Close flushes the underlying stream. It does not close the stream
// itself; per the spec's resource model the Encoder never owns the
// stream's lifetime.
func (e *Encoder) Close() error {
	return e.w.Flush()
}

func (e *Encoder) writeByte(b byte) error {
	if err := e.w.WriteByte(b); err != nil {
		return newEncodeError(fmt.Errorf("%w: %v", ErrStreamWrite, err), e.w.Pos())
	}
	return nil
}

func (e *Encoder) writeTagPayload(tag byte, payload []byte) error {
	if err := e.writeByte(tag); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	if _, err := e.w.Write(payload); err != nil {
		return newEncodeError(fmt.Errorf("%w: %v", ErrStreamWrite, err), e.w.Pos())
	}
	return nil
}

// EncodeBool writes true as 0xc3 and false as 0xc2.
func (e *Encoder) EncodeBool(v bool) error {
	if v {
		return e.writeByte(byte(TagBoolTrue))
	}
	return e.writeByte(byte(TagBoolFalse))
}

// encodeUnsigned is the shared narrowing dispatch for all unsigned
// integer widths: the narrowest representation is chosen from the
// runtime value alone, independent of the caller's static argument
// width (EncodeUint8/16/32/64 all funnel through this).
func (e *Encoder) encodeUnsigned(v uint64) error {
	switch {
	case v <= 127:
		return e.writeByte(byte(v))
	case v <= math.MaxUint8:
		return e.writeTagPayload(byte(TagUint8), []byte{byte(v)})
	case v <= math.MaxUint16:
		var buf [2]byte
		putUint16BE(buf[:], uint16(v))
		return e.writeTagPayload(byte(TagUint16), buf[:])
	case v <= math.MaxUint32:
		var buf [4]byte
		putUint32BE(buf[:], uint32(v))
		return e.writeTagPayload(byte(TagUint32), buf[:])
	default:
		var buf [8]byte
		putUint64BE(buf[:], v)
		return e.writeTagPayload(byte(TagUint64), buf[:])
	}
}

func (e *Encoder) EncodeUint8(v uint8) error   { return e.encodeUnsigned(uint64(v)) }
func (e *Encoder) EncodeUint16(v uint16) error { return e.encodeUnsigned(uint64(v)) }
func (e *Encoder) EncodeUint32(v uint32) error { return e.encodeUnsigned(uint64(v)) }
func (e *Encoder) EncodeUint64(v uint64) error { return e.encodeUnsigned(v) }

// encodeSigned is the shared narrowing dispatch for all signed integer
// widths. The negative-fixint branch (v in [-32,-1]) and the
// positive-fixint branch (v in [0,127]) are both checked before
// falling back to the narrowest of int8/16/32/64; per spec.md section
// 9 the positive branch is REQUIRED even though it overlaps the
// unsigned dispatch's positive-fixint range.
func (e *Encoder) encodeSigned(v int64) error {
	switch {
	case v < 0 && v >= int64(NegFixintMin):
		return e.writeByte(byte(int8(v)))
	case v >= 0 && v <= 127:
		return e.writeByte(byte(v))
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return e.writeTagPayload(byte(TagInt8), []byte{byte(int8(v))})
	case v >= math.MinInt16 && v <= math.MaxInt16:
		var buf [2]byte
		putUint16BE(buf[:], uint16(int16(v)))
		return e.writeTagPayload(byte(TagInt16), buf[:])
	case v >= math.MinInt32 && v <= math.MaxInt32:
		var buf [4]byte
		putUint32BE(buf[:], uint32(int32(v)))
		return e.writeTagPayload(byte(TagInt32), buf[:])
	default:
		var buf [8]byte
		putUint64BE(buf[:], uint64(v))
		return e.writeTagPayload(byte(TagInt64), buf[:])
	}
}

func (e *Encoder) EncodeInt8(v int8) error   { return e.encodeSigned(int64(v)) }
func (e *Encoder) EncodeInt16(v int16) error { return e.encodeSigned(int64(v)) }
func (e *Encoder) EncodeInt32(v int32) error { return e.encodeSigned(int64(v)) }
func (e *Encoder) EncodeInt64(v int64) error { return e.encodeSigned(v) }

// EncodeFloat32 writes a binary32 value as 0xca plus 4 big-endian
// payload bytes of its raw IEEE-754 bit pattern.
func (e *Encoder) EncodeFloat32(v float32) error {
	var buf [4]byte
	putUint32BE(buf[:], math.Float32bits(v))
	return e.writeTagPayload(byte(TagFloat32), buf[:])
}

// EncodeFloat64 writes a binary64 value as 0xcb plus 8 big-endian
// payload bytes of its raw IEEE-754 bit pattern.
func (e *Encoder) EncodeFloat64(v float64) error {
	var buf [8]byte
	putUint64BE(buf[:], math.Float64bits(v))
	return e.writeTagPayload(byte(TagFloat64), buf[:])
}

// EncodeString writes s as the narrowest str family that fits its
// byte length: fixstr (<=31), str8 (<=255), str16 (<=65535), str32
// (<=2^32-1). Lengths beyond that fail with ErrLengthOverflow.
func (e *Encoder) EncodeString(s string) error {
	l := len(s)
	switch {
	case l <= 31:
		if err := e.writeByte(FixstrMask | byte(l)); err != nil {
			return err
		}
	case l <= math.MaxUint8:
		if err := e.writeTagPayload(byte(TagStr8), []byte{byte(l)}); err != nil {
			return err
		}
	case l <= math.MaxUint16:
		var buf [2]byte
		putUint16BE(buf[:], uint16(l))
		if err := e.writeTagPayload(byte(TagStr16), buf[:]); err != nil {
			return err
		}
	case uint64(l) <= math.MaxUint32:
		var buf [4]byte
		putUint32BE(buf[:], uint32(l))
		if err := e.writeTagPayload(byte(TagStr32), buf[:]); err != nil {
			return err
		}
	default:
		return newEncodeError(ErrLengthOverflow, e.w.Pos())
	}
	if l == 0 {
		return nil
	}
	if _, err := e.w.Write([]byte(s)); err != nil {
		return newEncodeError(fmt.Errorf("%w: %v", ErrStreamWrite, err), e.w.Pos())
	}
	return nil
}

// writeArrayHeader writes the narrowest array tag (fixarray, array16,
// array32) for count elements. The caller is responsible for then
// writing exactly count elements via recursive Encode calls.
func (e *Encoder) writeArrayHeader(count int) error {
	switch {
	case count < 0:
		return newEncodeError(ErrLengthOverflow, e.w.Pos())
	case count <= 15:
		return e.writeByte(FixarrMask | byte(count))
	case count <= math.MaxUint16:
		var buf [2]byte
		putUint16BE(buf[:], uint16(count))
		return e.writeTagPayload(byte(TagArray16), buf[:])
	case uint64(count) <= math.MaxUint32:
		var buf [4]byte
		putUint32BE(buf[:], uint32(count))
		return e.writeTagPayload(byte(TagArray32), buf[:])
	default:
		return newEncodeError(ErrLengthOverflow, e.w.Pos())
	}
}

// EncodeArrayHeader exposes writeArrayHeader for callers that want to
// stream array elements themselves rather than go through EncodeArray
// or a Value built with ArrayOf.
func (e *Encoder) EncodeArrayHeader(count int) error {
	return e.writeArrayHeader(count)
}

// EncodeArray writes items as a MessagePack array: a narrowest-width
// count header followed by each element encoded in order via
// encodeElem. T is the element's static type, matching the spec's
// "recursive dispatch on the element's static type" — arrays of
// arrays, arrays of strings, etc. all instantiate this the same way.
func EncodeArray[T any](e *Encoder, items []T, encodeElem func(*Encoder, T) error) error {
	if err := e.writeArrayHeader(len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := encodeElem(e, item); err != nil {
			return err
		}
	}
	return nil
}

// Serialize writes each value in values in order. It is semantically
// equal to calling the matching Encode* method once per value: on
// failure, values before the failing one are already committed to the
// sink (partial success is possible, per spec.md section 4.2).
func (e *Encoder) Serialize(values ...Value) error {
	for _, v := range values {
		if err := v.encode(e); err != nil {
			return err
		}
	}
	return nil
}

// Value is a heterogeneous encodable value: the Go realization of the
// spec's "static type -> family" dispatch table for variadic
// Serialize calls. Build one with Bool, UintN, IntN, Float32, Float64,
// String, or Array/ArrayOf.
type Value interface {
	encode(e *Encoder) error
}

type fnValue func(*Encoder) error

func (f fnValue) encode(e *Encoder) error { return f(e) }

func Bool(v bool) Value       { return fnValue(func(e *Encoder) error { return e.EncodeBool(v) }) }
func Uint8(v uint8) Value     { return fnValue(func(e *Encoder) error { return e.EncodeUint8(v) }) }
func Uint16(v uint16) Value   { return fnValue(func(e *Encoder) error { return e.EncodeUint16(v) }) }
func Uint32(v uint32) Value   { return fnValue(func(e *Encoder) error { return e.EncodeUint32(v) }) }
func Uint64(v uint64) Value   { return fnValue(func(e *Encoder) error { return e.EncodeUint64(v) }) }
func Int8(v int8) Value       { return fnValue(func(e *Encoder) error { return e.EncodeInt8(v) }) }
func Int16(v int16) Value     { return fnValue(func(e *Encoder) error { return e.EncodeInt16(v) }) }
func Int32(v int32) Value     { return fnValue(func(e *Encoder) error { return e.EncodeInt32(v) }) }
func Int64(v int64) Value     { return fnValue(func(e *Encoder) error { return e.EncodeInt64(v) }) }
func Float32(v float32) Value { return fnValue(func(e *Encoder) error { return e.EncodeFloat32(v) }) }
func Float64(v float64) Value { return fnValue(func(e *Encoder) error { return e.EncodeFloat64(v) }) }
func String(v string) Value   { return fnValue(func(e *Encoder) error { return e.EncodeString(v) }) }

// Array builds an array Value out of already-built element Values,
// for ad-hoc heterogeneous-looking (but still individually typed)
// nesting inside a Serialize call.
func Array(items ...Value) Value {
	return fnValue(func(e *Encoder) error {
		return EncodeArray(e, items, func(e *Encoder, v Value) error { return v.encode(e) })
	})
}

// ArrayOf builds an array Value from a typed slice, wrapping each
// element with wrap. This is the generic entry point the design notes
// call for: "sequences ... are generic over element traits."
func ArrayOf[T any](items []T, wrap func(T) Value) Value {
	return fnValue(func(e *Encoder) error {
		return EncodeArray(e, items, func(e *Encoder, v T) error { return wrap(v).encode(e) })
	})
}
