package msgpack

// Tag is a single MessagePack format byte. It is the leading byte of
// every encoded value and identifies which family the value belongs
// to, and for the fixed-payload families, part of the payload itself.
type Tag byte

// Canonical format tags. Values MUST NOT be renumbered: changing one
// here changes the wire format for both Encoder and Decoder at once.
const (
	TagBoolFalse Tag = 0xc2
	TagBoolTrue  Tag = 0xc3

	TagFloat32 Tag = 0xca
	TagFloat64 Tag = 0xcb

	TagUint8  Tag = 0xcc
	TagUint16 Tag = 0xcd
	TagUint32 Tag = 0xce
	TagUint64 Tag = 0xcf

	TagInt8  Tag = 0xd0
	TagInt16 Tag = 0xd1
	TagInt32 Tag = 0xd2
	TagInt64 Tag = 0xd3

	TagStr8  Tag = 0xd9
	TagStr16 Tag = 0xda
	TagStr32 Tag = 0xdb

	TagArray16 Tag = 0xdc
	TagArray32 Tag = 0xdd
)

// Bit masks recognizing the in-tag fixed-payload families. A single
// source of truth referenced by both Encoder and Decoder.
const (
	// PosFixintMask: a tag with bit 7 clear is a positive fixint,
	// value in the low 7 bits (0..127).
	PosFixintMask byte = 0x80

	// FixstrMask: a tag matching 101xxxxx is a fixstr, length in the
	// low 5 bits (0..31).
	FixstrMask byte = 0xa0
	fixstrTest byte = 0xe0

	// FixarrMask: a tag matching 1001xxxx is a fixarray, count in the
	// low 4 bits (0..15).
	FixarrMask byte = 0x90
	fixarrTest byte = 0xf0

	// negFixintTest: a tag matching 111xxxxx is a negative fixint,
	// value sign-extended from the low 5 bits (-32..-1).
	negFixintTest byte = 0xe0

	// NegFixintMin is the most negative value a negative fixint can
	// represent.
	NegFixintMin int8 = -32
)

// isPosFixint reports whether t's top bit is clear: tag IS the value.
func isPosFixint(t byte) bool {
	return t&PosFixintMask == 0
}

// isNegFixint reports whether t is a negative fixint tag (111xxxxx).
//
// The mask 0xe0 alone is sufficient here: 0xc0..0xdf tags (the
// multi-byte str/array format bytes) have top-3-bits 110, not 111, so
// they never collide with this test despite also falling under a
// naively-chosen 3-bit mask if one picked the wrong three bits. Tag
// lists, not just masks, are what make family boundaries precise.
func isNegFixint(t byte) bool {
	return t&negFixintTest == negFixintTest
}

func isFixstr(t byte) bool {
	return t&fixstrTest == FixstrMask
}

func isFixarr(t byte) bool {
	return t&fixarrTest == FixarrMask
}
