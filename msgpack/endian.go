package msgpack

import (
	"encoding/binary"
	"math/bits"
)

// nativeOrder returns the binary.ByteOrder matching the compile-time
// host endianness branch selected by endian_little.go / endian_big.go.
func nativeOrder() binary.ByteOrder {
	if hostLittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ToBigEndian16 converts x from host order to big-endian order. It is
// a no-op on a big-endian host and a byte-reverse on a little-endian
// host. Applying it a second time to its own result restores the
// original value, so the same function serves both encode (host ->
// wire) and decode (wire -> host) directions.
func ToBigEndian16(x uint16) uint16 {
	if hostLittleEndian {
		return bits.ReverseBytes16(x)
	}
	return x
}

// ToBigEndian32 is the 32-bit form of ToBigEndian16.
func ToBigEndian32(x uint32) uint32 {
	if hostLittleEndian {
		return bits.ReverseBytes32(x)
	}
	return x
}

// ToBigEndian64 is the 64-bit form of ToBigEndian16.
func ToBigEndian64(x uint64) uint64 {
	if hostLittleEndian {
		return bits.ReverseBytes64(x)
	}
	return x
}

// ToLittleEndian16 is the inverse branch of ToBigEndian16: identity on
// a little-endian host, byte-reverse on a big-endian host.
func ToLittleEndian16(x uint16) uint16 {
	if hostLittleEndian {
		return x
	}
	return bits.ReverseBytes16(x)
}

// ToLittleEndian32 is the 32-bit form of ToLittleEndian16.
func ToLittleEndian32(x uint32) uint32 {
	if hostLittleEndian {
		return x
	}
	return bits.ReverseBytes32(x)
}

// ToLittleEndian64 is the 64-bit form of ToLittleEndian16.
func ToLittleEndian64(x uint64) uint64 {
	if hostLittleEndian {
		return x
	}
	return bits.ReverseBytes64(x)
}

// putUint16BE writes v into buf[0:2] as 2 big-endian bytes regardless
// of host endianness.
func putUint16BE(buf []byte, v uint16) {
	nativeOrder().PutUint16(buf, ToBigEndian16(v))
}

func putUint32BE(buf []byte, v uint32) {
	nativeOrder().PutUint32(buf, ToBigEndian32(v))
}

func putUint64BE(buf []byte, v uint64) {
	nativeOrder().PutUint64(buf, ToBigEndian64(v))
}

// getUint16BE reads 2 big-endian wire bytes into a host-order value.
func getUint16BE(buf []byte) uint16 {
	return ToBigEndian16(nativeOrder().Uint16(buf))
}

func getUint32BE(buf []byte) uint32 {
	return ToBigEndian32(nativeOrder().Uint32(buf))
}

func getUint64BE(buf []byte) uint64 {
	return ToBigEndian64(nativeOrder().Uint64(buf))
}
