package msgpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeHex(t *testing.T, values ...Value) []byte {
	t.Helper()
	buf := NewBufferStream()
	enc := NewEncoder(buf)
	require.NoError(t, enc.Serialize(values...))
	require.NoError(t, enc.Close())
	return buf.Bytes()
}

func TestEncodeBool(t *testing.T) {
	require.Equal(t, []byte{0xc3, 0xc2}, encodeHex(t, Bool(true), Bool(false)))
}

func TestEncodeUnsignedNarrowest(t *testing.T) {
	// Scenario 2: different static widths, all narrow to fixint.
	require.Equal(t, []byte{0x00, 0x23, 0x7f}, encodeHex(t, Uint8(0), Uint16(35), Uint32(127)))

	// Scenario 3: values that each require the uint8 wire form.
	require.Equal(t, []byte{0xcc, 0x80, 0xcc, 0xb4, 0xcc, 0xff},
		encodeHex(t, Uint16(128), Uint32(180), Uint64(255)))
}

func TestEncodeSignedNarrowest(t *testing.T) {
	// Scenario 4.
	require.Equal(t, []byte{0xff, 0xf4, 0xe0}, encodeHex(t, Int8(-1), Int16(-12), Int32(-32)))

	// Positive branch (spec.md section 9 REQUIRED fix): 0..127 signed
	// values take the positive-fixint path, not a wider int8 form.
	require.Equal(t, []byte{0x7f}, encodeHex(t, Int32(127)))

	// -32001 at width 16 falls to the narrowest signed form whose
	// range contains it (int16), since it's < NegFixintMin and not in
	// fixint range: 0xd1 0x82 0xff.
	require.Equal(t, []byte{0xd1, 0x82, 0xff}, encodeHex(t, Int16(-32001)))
}

func TestEncodeFloats(t *testing.T) {
	out := encodeHex(t, Float32(3.14159), Float32(0), Float64(1.14))
	require.Len(t, out, 5+5+9)
	require.Equal(t, byte(TagFloat32), out[0])
	require.Equal(t, byte(TagFloat32), out[5])
	require.Equal(t, byte(TagFloat64), out[10])
}

func TestEncodeString(t *testing.T) {
	require.Equal(t, []byte{0xa3, 0x61, 0x62, 0x63}, encodeHex(t, String("abc")))
}

func TestEncodeArray(t *testing.T) {
	arr := ArrayOf([]int32{5, 4, 3, 2}, func(v int32) Value { return Int32(v) })
	require.Equal(t, []byte{0x94, 0x05, 0x04, 0x03, 0x02}, encodeHex(t, arr))
}

func TestEncodeArray16Header(t *testing.T) {
	items := make([]int32, 16)
	items[0] = 16
	for i := 8; i < 16; i++ {
		items[i] = int32(-(i - 7))
	}
	arr := ArrayOf(items, func(v int32) Value { return Int32(v) })
	out := encodeHex(t, arr)
	require.Equal(t, []byte{0xdc, 0x00, 0x10}, out[:3])
	require.Equal(t, 3+16, len(out))
}

func TestByteCount(t *testing.T) {
	buf := NewBufferStream()
	enc := NewEncoder(buf)
	require.NoError(t, enc.Serialize(Bool(true), Uint32(128)))
	require.Equal(t, 3, enc.ByteCount())
	require.Equal(t, enc.ByteCount(), len(buf.Bytes()))
}

func TestEncodeLengthOverflow(t *testing.T) {
	e := NewEncoder(NewBufferStream())
	err := e.writeArrayHeader(-1)
	require.ErrorIs(t, err, ErrLengthOverflow)
}

func TestEncodePartialSuccessOnFailure(t *testing.T) {
	// A failing write after prior successful writes leaves those
	// bytes already committed to the sink (spec.md section 4.2).
	buf := NewBufferStream()
	enc := NewEncoder(buf)
	failing := fnValue(func(e *Encoder) error { return e.EncodeArrayHeader(-1) })
	require.ErrorIs(t, enc.Serialize(Bool(true), failing), ErrLengthOverflow)
	require.Equal(t, []byte{0xc3}, buf.Bytes())
}
