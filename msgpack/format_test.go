package msgpack

import "testing"

func TestIsPosFixint(t *testing.T) {
	for _, tag := range []byte{0x00, 0x01, 0x7f} {
		if !isPosFixint(tag) {
			t.Errorf("isPosFixint(0x%02x) = false, want true", tag)
		}
	}
	for _, tag := range []byte{0x80, 0xc2, 0xff} {
		if isPosFixint(tag) {
			t.Errorf("isPosFixint(0x%02x) = true, want false", tag)
		}
	}
}

func TestIsNegFixint(t *testing.T) {
	for _, tag := range []byte{0xe0, 0xf0, 0xff} {
		if !isNegFixint(tag) {
			t.Errorf("isNegFixint(0x%02x) = false, want true", tag)
		}
	}
	// 0xc0..0xdf tags (str/array/nil/ext format bytes) must never be
	// mistaken for negative fixints.
	for _, tag := range []byte{0xc2, 0xc3, 0xca, 0xcc, 0xd9, 0xdc, 0xdd} {
		if isNegFixint(tag) {
			t.Errorf("isNegFixint(0x%02x) = true, want false", tag)
		}
	}
}

func TestIsFixstr(t *testing.T) {
	for _, tag := range []byte{0xa0, 0xa5, 0xbf} {
		if !isFixstr(tag) {
			t.Errorf("isFixstr(0x%02x) = false, want true", tag)
		}
	}
	for _, tag := range []byte{0x9f, 0xc0, 0xd9} {
		if isFixstr(tag) {
			t.Errorf("isFixstr(0x%02x) = true, want false", tag)
		}
	}
}

func TestIsFixarr(t *testing.T) {
	for _, tag := range []byte{0x90, 0x95, 0x9f} {
		if !isFixarr(tag) {
			t.Errorf("isFixarr(0x%02x) = false, want true", tag)
		}
	}
	for _, tag := range []byte{0x80, 0xa0, 0xdc} {
		if isFixarr(tag) {
			t.Errorf("isFixarr(0x%02x) = true, want false", tag)
		}
	}
}
