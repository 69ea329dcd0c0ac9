package msgpack

import (
	"math"
)

// Decoder reads MessagePack-encoded values from a Reader. It owns no
// heap state of its own; it never closes the underlying Reader. A
// Decoder is bound to exactly one Reader for its lifetime and is not
// safe for concurrent use.
type Decoder struct {
	r           Reader
	startOffset int
}

// NewDecoder binds a new Decoder to r, recording r's current position
// as the decoder's start offset so ByteCount reports only what this
// decoder consumed.
func NewDecoder(r Reader) *Decoder {
	return &Decoder{r: r, startOffset: r.Pos()}
}

// ByteCount returns the number of bytes consumed since construction.
func (d *Decoder) ByteCount() int {
	return d.r.Pos() - d.startOffset
}

// peekTag returns the next tag byte without consuming it, or
// ErrEndOfInput if the source has nothing left. Every decode path
// validates family membership and narrowing against this peeked tag
// before consuming anything, so a TypeMismatch or NarrowingConversion
// failure always leaves the stream exactly where it found it — no
// push-back bookkeeping is needed to satisfy the "tag is left in
// place" / "no bytes beyond the tag are consumed" properties from
// spec.md sections 4.3 and 8.
func (d *Decoder) peekTag(family string) (byte, error) {
	if d.r.AtEOF() {
		return 0, newDecodeError(ErrEndOfInput, family, d.r.Pos())
	}
	t, err := d.r.Peek()
	if err != nil {
		return 0, newDecodeError(ErrEndOfInput, family, d.r.Pos())
	}
	return t, nil
}

// consumePayload consumes the already-peeked tag byte plus n payload
// bytes and returns the payload.
func (d *Decoder) consumePayload(n int) ([]byte, error) {
	if _, err := d.r.ReadByte(); err != nil {
		return nil, newDecodeError(ErrEndOfInput, "", d.r.Pos())
	}
	if n == 0 {
		return nil, nil
	}
	p, err := d.r.Read(n)
	if err != nil {
		return nil, newDecodeError(ErrEndOfInput, "", d.r.Pos())
	}
	return p, nil
}

// DecodeBool reads a bool family value (0xc2/0xc3).
func (d *Decoder) DecodeBool() (bool, error) {
	t, err := d.peekTag("bool")
	if err != nil {
		return false, err
	}
	switch Tag(t) {
	case TagBoolTrue:
		if _, err := d.consumePayload(0); err != nil {
			return false, err
		}
		return true, nil
	case TagBoolFalse:
		if _, err := d.consumePayload(0); err != nil {
			return false, err
		}
		return false, nil
	default:
		return false, newDecodeErrorTag(ErrTypeMismatch, "bool", d.r.Pos(), t)
	}
}

// unsignedDestMax returns the largest value a destination of the
// given bit width can represent.
func unsignedDestMax(width int) uint64 {
	switch width {
	case 8:
		return math.MaxUint8
	case 16:
		return math.MaxUint16
	case 32:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}

// decodeUnsigned is the shared family-group/narrowing dispatch for
// all unsigned integer destination widths (spec.md section 4.3's
// "unsigned integer" family: positive fixint, uint8, uint16, uint32,
// uint64).
func (d *Decoder) decodeUnsigned(destWidth int) (uint64, error) {
	t, err := d.peekTag("uint")
	if err != nil {
		return 0, err
	}

	var familyMax uint64
	var payloadLen int
	switch {
	case isPosFixint(t):
		familyMax, payloadLen = 127, 0
	case t == byte(TagUint8):
		familyMax, payloadLen = math.MaxUint8, 1
	case t == byte(TagUint16):
		familyMax, payloadLen = math.MaxUint16, 2
	case t == byte(TagUint32):
		familyMax, payloadLen = math.MaxUint32, 4
	case t == byte(TagUint64):
		familyMax, payloadLen = math.MaxUint64, 8
	default:
		return 0, newDecodeErrorTag(ErrTypeMismatch, "uint", d.r.Pos(), t)
	}

	if familyMax > unsignedDestMax(destWidth) {
		return 0, newDecodeErrorTag(ErrNarrowingConversion, "uint", d.r.Pos(), t)
	}

	payload, err := d.consumePayload(payloadLen)
	if err != nil {
		return 0, err
	}
	switch payloadLen {
	case 0:
		return uint64(t & 0x7f), nil
	case 1:
		return uint64(payload[0]), nil
	case 2:
		return uint64(getUint16BE(payload)), nil
	case 4:
		return uint64(getUint32BE(payload)), nil
	default:
		return getUint64BE(payload), nil
	}
}

func (d *Decoder) DecodeUint8() (uint8, error) {
	v, err := d.decodeUnsigned(8)
	return uint8(v), err
}
func (d *Decoder) DecodeUint16() (uint16, error) {
	v, err := d.decodeUnsigned(16)
	return uint16(v), err
}
func (d *Decoder) DecodeUint32() (uint32, error) {
	v, err := d.decodeUnsigned(32)
	return uint32(v), err
}
func (d *Decoder) DecodeUint64() (uint64, error) {
	return d.decodeUnsigned(64)
}

func signedDestRange(width int) (min, max int64) {
	switch width {
	case 8:
		return math.MinInt8, math.MaxInt8
	case 16:
		return math.MinInt16, math.MaxInt16
	case 32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

// decodeSigned is the shared family-group/narrowing dispatch for all
// signed integer destination widths (spec.md section 4.3's "signed
// integer" family: positive fixint, negative fixint, int8, int16,
// int32, int64).
func (d *Decoder) decodeSigned(destWidth int) (int64, error) {
	t, err := d.peekTag("int")
	if err != nil {
		return 0, err
	}

	var familyMin, familyMax int64
	var payloadLen int
	var fixint bool
	switch {
	case isNegFixint(t):
		familyMin, familyMax, fixint = int64(NegFixintMin), -1, true
	case isPosFixint(t):
		familyMin, familyMax, fixint = 0, 127, true
	case t == byte(TagInt8):
		familyMin, familyMax, payloadLen = math.MinInt8, math.MaxInt8, 1
	case t == byte(TagInt16):
		familyMin, familyMax, payloadLen = math.MinInt16, math.MaxInt16, 2
	case t == byte(TagInt32):
		familyMin, familyMax, payloadLen = math.MinInt32, math.MaxInt32, 4
	case t == byte(TagInt64):
		familyMin, familyMax, payloadLen = math.MinInt64, math.MaxInt64, 8
	default:
		return 0, newDecodeErrorTag(ErrTypeMismatch, "int", d.r.Pos(), t)
	}

	destMin, destMax := signedDestRange(destWidth)
	if familyMin < destMin || familyMax > destMax {
		return 0, newDecodeErrorTag(ErrNarrowingConversion, "int", d.r.Pos(), t)
	}

	if fixint {
		if _, err := d.consumePayload(0); err != nil {
			return 0, err
		}
		return int64(int8(t)), nil
	}

	payload, err := d.consumePayload(payloadLen)
	if err != nil {
		return 0, err
	}
	switch payloadLen {
	case 1:
		return int64(int8(payload[0])), nil
	case 2:
		return int64(int16(getUint16BE(payload))), nil
	case 4:
		return int64(int32(getUint32BE(payload))), nil
	default:
		return int64(getUint64BE(payload)), nil
	}
}

func (d *Decoder) DecodeInt8() (int8, error) {
	v, err := d.decodeSigned(8)
	return int8(v), err
}
func (d *Decoder) DecodeInt16() (int16, error) {
	v, err := d.decodeSigned(16)
	return int16(v), err
}
func (d *Decoder) DecodeInt32() (int32, error) {
	v, err := d.decodeSigned(32)
	return int32(v), err
}
func (d *Decoder) DecodeInt64() (int64, error) {
	return d.decodeSigned(64)
}

// DecodeFloat32 reads a float32-family value. Only the float32 tag is
// accepted: a float64 tag is a member of the floating-point family
// but its 64-bit range narrows relative to a float32 destination, so
// it fails with ErrNarrowingConversion rather than silently losing
// precision.
func (d *Decoder) DecodeFloat32() (float32, error) {
	t, err := d.peekTag("float")
	if err != nil {
		return 0, err
	}
	switch Tag(t) {
	case TagFloat32:
		payload, err := d.consumePayload(4)
		if err != nil {
			return 0, err
		}
		return math.Float32frombits(getUint32BE(payload)), nil
	case TagFloat64:
		return 0, newDecodeErrorTag(ErrNarrowingConversion, "float", d.r.Pos(), t)
	default:
		return 0, newDecodeErrorTag(ErrTypeMismatch, "float", d.r.Pos(), t)
	}
}

// DecodeFloat64 reads a floating-point family value. Both float32 and
// float64 tags are accepted: a binary64 destination can always hold a
// binary32 value without loss, so the float32 case widens instead of
// narrowing.
func (d *Decoder) DecodeFloat64() (float64, error) {
	t, err := d.peekTag("float")
	if err != nil {
		return 0, err
	}
	switch Tag(t) {
	case TagFloat64:
		payload, err := d.consumePayload(8)
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(getUint64BE(payload)), nil
	case TagFloat32:
		payload, err := d.consumePayload(4)
		if err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(getUint32BE(payload))), nil
	default:
		return 0, newDecodeErrorTag(ErrTypeMismatch, "float", d.r.Pos(), t)
	}
}

// decodeStringHeader validates family membership and consumes tag +
// any length-prefix bytes, returning the declared byte length.
func (d *Decoder) decodeStringHeader() (int, error) {
	t, err := d.peekTag("string")
	if err != nil {
		return 0, err
	}
	switch {
	case isFixstr(t):
		if _, err := d.consumePayload(0); err != nil {
			return 0, err
		}
		return int(t & 0x1f), nil
	case t == byte(TagStr8):
		payload, err := d.consumePayload(1)
		if err != nil {
			return 0, err
		}
		return int(payload[0]), nil
	case t == byte(TagStr16):
		payload, err := d.consumePayload(2)
		if err != nil {
			return 0, err
		}
		return int(getUint16BE(payload)), nil
	case t == byte(TagStr32):
		payload, err := d.consumePayload(4)
		if err != nil {
			return 0, err
		}
		return int(getUint32BE(payload)), nil
	default:
		return 0, newDecodeErrorTag(ErrTypeMismatch, "string", d.r.Pos(), t)
	}
}

func (d *Decoder) readStringBytes(length int) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	b, err := d.r.Read(length)
	if err != nil {
		return nil, newDecodeError(ErrEndOfInput, "string", d.r.Pos())
	}
	return b, nil
}

// DecodeString reads a string family value into a growable Go string.
// No NUL terminator is appended; see DecodeStringNUL for the
// byte-count-compatible legacy behavior spec.md section 9 documents
// for the fixed-buffer form.
func (d *Decoder) DecodeString() (string, error) {
	length, err := d.decodeStringHeader()
	if err != nil {
		return "", err
	}
	b, err := d.readStringBytes(length)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeStringNUL mirrors DecodeString but appends a single NUL byte
// to the result, preserving byte-count parity with DecodeStringInto's
// fixed-buffer form. Opt-in only; see spec.md section 9's open
// question on the NUL terminator.
func (d *Decoder) DecodeStringNUL() (string, error) {
	length, err := d.decodeStringHeader()
	if err != nil {
		return "", err
	}
	b, err := d.readStringBytes(length)
	if err != nil {
		return "", err
	}
	return string(b) + "\x00", nil
}

// DecodeStringInto reads a string family value into a fixed-capacity
// byte buffer, failing with ErrCapacityTooSmall if dst cannot hold the
// decoded length plus the mandatory NUL terminator. On success it
// writes length bytes followed by a single NUL byte and returns
// length.
func (d *Decoder) DecodeStringInto(dst []byte) (int, error) {
	length, err := d.decodeStringHeader()
	if err != nil {
		return 0, err
	}
	if len(dst) < length+1 {
		return 0, newDecodeError(ErrCapacityTooSmall, "string", d.r.Pos())
	}
	b, err := d.readStringBytes(length)
	if err != nil {
		return 0, err
	}
	copy(dst, b)
	dst[length] = 0
	return length, nil
}

// DecodeArrayHeader validates array family membership and consumes
// tag + any count-prefix bytes, returning the declared element count.
func (d *Decoder) DecodeArrayHeader() (int, error) {
	t, err := d.peekTag("array")
	if err != nil {
		return 0, err
	}
	switch {
	case isFixarr(t):
		if _, err := d.consumePayload(0); err != nil {
			return 0, err
		}
		return int(t & 0x0f), nil
	case t == byte(TagArray16):
		payload, err := d.consumePayload(2)
		if err != nil {
			return 0, err
		}
		return int(getUint16BE(payload)), nil
	case t == byte(TagArray32):
		payload, err := d.consumePayload(4)
		if err != nil {
			return 0, err
		}
		return int(getUint32BE(payload)), nil
	default:
		return 0, newDecodeErrorTag(ErrTypeMismatch, "array", d.r.Pos(), t)
	}
}

// DecodeArray reads an array family value into a freshly allocated
// slice, resizing it to the decoded count and recursively decoding
// each element via decodeElem. T is the element's static type.
func DecodeArray[T any](d *Decoder, decodeElem func(*Decoder) (T, error)) ([]T, error) {
	count, err := d.DecodeArrayHeader()
	if err != nil {
		return nil, err
	}
	out := make([]T, count)
	for i := range out {
		v, err := decodeElem(d)
		if err != nil {
			return out[:i], err
		}
		out[i] = v
	}
	return out, nil
}

// DecodeArrayFixed reads an array family value into dest, a
// fixed-capacity destination. It fails with ErrCapacityTooSmall if the
// decoded count exceeds len(dest).
func DecodeArrayFixed[T any](d *Decoder, dest []T, decodeElem func(*Decoder) (T, error)) (int, error) {
	count, err := d.DecodeArrayHeader()
	if err != nil {
		return 0, err
	}
	if count > len(dest) {
		return 0, newDecodeError(ErrCapacityTooSmall, "array", d.r.Pos())
	}
	for i := 0; i < count; i++ {
		v, err := decodeElem(d)
		if err != nil {
			return i, err
		}
		dest[i] = v
	}
	return count, nil
}

// Dest is a mutable typed decode destination: the Go realization of
// the spec's variadic "accepts one or more mutable typed destinations"
// deserialize contract. Build one with BoolDest, UintNDest, IntNDest,
// Float32Dest, Float64Dest, StringDest, or ArrayDest.
type Dest interface {
	decode(d *Decoder) error
}

type destFunc func(*Decoder) error

func (f destFunc) decode(d *Decoder) error { return f(d) }

func BoolDest(p *bool) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := d.DecodeBool()
		if err == nil {
			*p = v
		}
		return err
	})
}

func Uint8Dest(p *uint8) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := d.DecodeUint8()
		if err == nil {
			*p = v
		}
		return err
	})
}

func Uint16Dest(p *uint16) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := d.DecodeUint16()
		if err == nil {
			*p = v
		}
		return err
	})
}

func Uint32Dest(p *uint32) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := d.DecodeUint32()
		if err == nil {
			*p = v
		}
		return err
	})
}

func Uint64Dest(p *uint64) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := d.DecodeUint64()
		if err == nil {
			*p = v
		}
		return err
	})
}

func Int8Dest(p *int8) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := d.DecodeInt8()
		if err == nil {
			*p = v
		}
		return err
	})
}

func Int16Dest(p *int16) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := d.DecodeInt16()
		if err == nil {
			*p = v
		}
		return err
	})
}

func Int32Dest(p *int32) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := d.DecodeInt32()
		if err == nil {
			*p = v
		}
		return err
	})
}

func Int64Dest(p *int64) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := d.DecodeInt64()
		if err == nil {
			*p = v
		}
		return err
	})
}

func Float32Dest(p *float32) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := d.DecodeFloat32()
		if err == nil {
			*p = v
		}
		return err
	})
}

func Float64Dest(p *float64) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := d.DecodeFloat64()
		if err == nil {
			*p = v
		}
		return err
	})
}

func StringDest(p *string) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := d.DecodeString()
		if err == nil {
			*p = v
		}
		return err
	})
}

// ArrayDest decodes an array into a freshly allocated slice assigned
// to *dest, analogous to ArrayOf on the encode side.
func ArrayDest[T any](dest *[]T, decodeElem func(*Decoder) (T, error)) Dest {
	return destFunc(func(d *Decoder) error {
		v, err := DecodeArray(d, decodeElem)
		if err != nil {
			return err
		}
		*dest = v
		return nil
	})
}

// Deserialize fills each destination in dests from the next value in
// the source, in order. A failure mid-way leaves earlier destinations
// already populated and the source position reflects the bytes
// actually consumed (spec.md section 4.3).
func (d *Decoder) Deserialize(dests ...Dest) error {
	for _, dst := range dests {
		if err := dst.decode(d); err != nil {
			return err
		}
	}
	return nil
}
