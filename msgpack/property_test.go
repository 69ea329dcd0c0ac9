package msgpack

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPropertyUint64RoundTrip samples a wide spread of uint64 values,
// including the narrowest-family boundaries, and checks that encoding
// then decoding recovers the original value exactly.
func TestPropertyUint64RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	values := []uint64{0, 1, 127, 128, 255, 256, 65535, 65536, 4294967295, 4294967296, ^uint64(0)}
	for i := 0; i < 500; i++ {
		values = append(values, rng.Uint64())
	}

	for _, v := range values {
		buf := NewBufferStream()
		enc := NewEncoder(buf)
		require.NoError(t, enc.EncodeUint64(v))
		require.NoError(t, enc.Close())

		dec := NewDecoder(NewBufferStreamFrom(buf.Bytes()))
		got, err := dec.DecodeUint64()
		require.NoError(t, err, "value=%d", v)
		require.Equal(t, v, got, "value=%d", v)
	}
}

// TestPropertyInt64RoundTrip mirrors TestPropertyUint64RoundTrip for
// the signed family, including both fixint boundaries.
func TestPropertyInt64RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	values := []int64{0, 1, 127, 128, -1, -32, -33, -128, -129, math.MinInt64, math.MaxInt64}
	for i := 0; i < 500; i++ {
		values = append(values, rng.Int63()-rng.Int63())
	}

	for _, v := range values {
		buf := NewBufferStream()
		enc := NewEncoder(buf)
		require.NoError(t, enc.EncodeInt64(v))
		require.NoError(t, enc.Close())

		dec := NewDecoder(NewBufferStreamFrom(buf.Bytes()))
		got, err := dec.DecodeInt64()
		require.NoError(t, err, "value=%d", v)
		require.Equal(t, v, got, "value=%d", v)
	}
}

// TestPropertyFloat32RoundTrip samples float32 bit patterns, including
// NaN/Inf, and checks the raw bit pattern survives the round trip
// (encoding never normalizes NaN payloads).
func TestPropertyFloat32RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	values := []float32{0, -0, 1, -1, 3.14159, float32(math.Inf(1)), float32(math.Inf(-1)), float32(math.NaN())}
	for i := 0; i < 500; i++ {
		values = append(values, math.Float32frombits(rng.Uint32()))
	}

	for _, v := range values {
		buf := NewBufferStream()
		enc := NewEncoder(buf)
		require.NoError(t, enc.EncodeFloat32(v))
		require.NoError(t, enc.Close())

		dec := NewDecoder(NewBufferStreamFrom(buf.Bytes()))
		got, err := dec.DecodeFloat32()
		require.NoError(t, err)
		require.Equal(t, math.Float32bits(v), math.Float32bits(got))
	}
}

// TestPropertyFloat64RoundTrip mirrors TestPropertyFloat32RoundTrip for
// binary64.
func TestPropertyFloat64RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	values := []float64{0, -0, 1, -1, 3.14159265358979, math.Inf(1), math.Inf(-1), math.NaN()}
	for i := 0; i < 500; i++ {
		values = append(values, math.Float64frombits(rng.Uint64()))
	}

	for _, v := range values {
		buf := NewBufferStream()
		enc := NewEncoder(buf)
		require.NoError(t, enc.EncodeFloat64(v))
		require.NoError(t, enc.Close())

		dec := NewDecoder(NewBufferStreamFrom(buf.Bytes()))
		got, err := dec.DecodeFloat64()
		require.NoError(t, err)
		require.Equal(t, math.Float64bits(v), math.Float64bits(got))
	}
}

// TestPropertyStringRoundTrip samples random-length, random-byte
// strings (valid UTF-8 not required by the wire format itself: the
// codec treats string payloads as opaque bytes).
func TestPropertyStringRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		n := rng.Intn(300)
		b := make([]byte, n)
		rng.Read(b)
		s := string(b)

		buf := NewBufferStream()
		enc := NewEncoder(buf)
		require.NoError(t, enc.EncodeString(s))
		require.NoError(t, enc.Close())

		dec := NewDecoder(NewBufferStreamFrom(buf.Bytes()))
		got, err := dec.DecodeString()
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, s, got, "n=%d", n)
	}
}

// TestPropertyArrayRoundTrip samples random-length int32 arrays across
// the fixarray/array16 boundary.
func TestPropertyArrayRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for i := 0; i < 200; i++ {
		n := rng.Intn(200)
		items := make([]int32, n)
		for j := range items {
			items[j] = rng.Int31() - rng.Int31()
		}

		buf := NewBufferStream()
		enc := NewEncoder(buf)
		require.NoError(t, enc.Serialize(ArrayOf(items, func(v int32) Value { return Int32(v) })))
		require.NoError(t, enc.Close())

		dec := NewDecoder(NewBufferStreamFrom(buf.Bytes()))
		got, err := DecodeArray(dec, func(d *Decoder) (int32, error) { return d.DecodeInt32() })
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, items, got, "n=%d", n)
	}
}
