//go:build s390x || ppc64 || mips || mips64

package msgpack

// See endian_little.go: the two files are mutually exclusive build-tag
// branches selecting host endianness at compile time.
const hostLittleEndian = false
