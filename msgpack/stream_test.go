package msgpack

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferStreamWriteThenRead(t *testing.T) {
	buf := NewBufferStream()
	require.NoError(t, buf.WriteByte(0x01))
	n, err := buf.Write([]byte{0x02, 0x03})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 3, buf.Pos())

	r := NewBufferStreamFrom(buf.Bytes())
	require.False(t, r.AtEOF())
	peeked, err := r.Peek()
	require.NoError(t, err)
	require.Equal(t, byte(0x01), peeked)

	b, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0x01), b)

	rest, err := r.Read(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x03}, rest)
	require.True(t, r.AtEOF())
}

func TestBufferStreamUnread(t *testing.T) {
	r := NewBufferStreamFrom([]byte{0xaa})
	b, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0xaa), b)
	require.True(t, r.AtEOF())

	require.NoError(t, r.Unread(b))
	require.False(t, r.AtEOF())
	peeked, err := r.Peek()
	require.NoError(t, err)
	require.Equal(t, byte(0xaa), peeked)
}

func TestBufferStreamReadPastEndIsUnexpectedEOF(t *testing.T) {
	r := NewBufferStreamFrom([]byte{0x01})
	_, err := r.Read(2)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestFileStreamRoundTrip(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stream")
	require.NoError(t, err)
	defer f.Close()

	w := NewFileStream(f)
	enc := NewEncoder(w)
	require.NoError(t, enc.Serialize(Bool(true), Uint32(128), String("abc")))
	require.NoError(t, enc.Close())

	_, err = f.Seek(0, 0)
	require.NoError(t, err)

	r := NewFileStream(f)
	dec := NewDecoder(r)
	var b bool
	var u uint32
	var s string
	require.NoError(t, dec.Deserialize(BoolDest(&b), Uint32Dest(&u), StringDest(&s)))
	require.True(t, b)
	require.Equal(t, uint32(128), u)
	require.Equal(t, "abc", s)
}
