//go:build amd64 || 386 || arm || arm64 || riscv64 || wasm || loong64 || mipsle || mips64le || ppc64le

package msgpack

// hostLittleEndian is resolved at compile time by which of this file
// or endian_big.go the build includes for the target GOARCH. A host
// that is neither covered here nor in endian_big.go fails to compile
// (hostLittleEndian undefined), matching the requirement that hosts
// which are neither big- nor little-endian are rejected at build time.
const hostLittleEndian = true
