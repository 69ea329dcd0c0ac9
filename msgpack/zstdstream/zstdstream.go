// Package zstdstream wraps a msgpack.Writer/msgpack.Reader pair around
// a zstd-compressed sink/source, so an Encoder/Decoder can transparently
// write to, or read from, a compressed stream without either knowing
// compression is involved.
//
// This is additive to the core wire format described in spec.md: it is
// not part of the MessagePack family dispatch, just an alternate
// transport for the same bytes. klauspost/compress/zstd is the
// compression library arloliu-mebo uses to shrink its encoded
// time-series blocks before they hit disk; the same library serves
// the same role here.
package zstdstream

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/bytewire/msgpack/msgpack"
)

var (
	_ msgpack.Writer = (*Writer)(nil)
	_ msgpack.Reader = (*Reader)(nil)
)

// Writer buffers everything written to it and zstd-compresses the
// whole buffer into a single frame on Flush. zstd frames aren't
// incrementally appendable the way a raw byte sink is, so Flush (and
// therefore Encoder.Close) is the only point data actually reaches
// sink.
type Writer struct {
	buf  bytes.Buffer
	sink io.Writer
	pos  int
}

// NewWriter wraps sink. The caller still owns and closes sink.
func NewWriter(sink io.Writer) *Writer {
	return &Writer{sink: sink}
}

func (w *Writer) WriteByte(b byte) error {
	err := w.buf.WriteByte(b)
	if err == nil {
		w.pos++
	}
	return err
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.buf.Write(p)
	w.pos += n
	return n, err
}

// Pos reports bytes accepted into the pre-compression buffer, which
// is what Encoder.ByteCount is meant to measure (logical bytes
// written), not the compressed size on the wire.
func (w *Writer) Pos() int { return w.pos }

// Flush compresses the buffered bytes into a single zstd frame and
// writes it to sink.
func (w *Writer) Flush() error {
	enc, err := zstd.NewWriter(w.sink)
	if err != nil {
		return fmt.Errorf("zstdstream: open encoder: %w", err)
	}
	if _, err := enc.Write(w.buf.Bytes()); err != nil {
		enc.Close()
		return fmt.Errorf("zstdstream: compress: %w", err)
	}
	return enc.Close()
}

// Reader decompresses src in full up front and serves it as a
// Peek/ReadByte/Read/Unread byte source, the same shape as
// msgpack.BufferStream.
type Reader struct {
	buf      []byte
	pos      int
	pushback []byte
}

// NewReader decompresses all of src immediately; zstd frames are not
// seekable, so there is no way to serve a partial decode lazily
// without re-implementing zstd's own windowing.
func NewReader(src io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("zstdstream: open decoder: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("zstdstream: decompress: %w", err)
	}
	return &Reader{buf: data}, nil
}

func (r *Reader) Peek() (byte, error) {
	if len(r.pushback) > 0 {
		return r.pushback[len(r.pushback)-1], nil
	}
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	return r.buf[r.pos], nil
}

func (r *Reader) ReadByte() (byte, error) {
	if len(r.pushback) > 0 {
		b := r.pushback[len(r.pushback)-1]
		r.pushback = r.pushback[:len(r.pushback)-1]
		return b, nil
	}
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) Read(n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for len(out) < n && len(r.pushback) > 0 {
		out = append(out, r.pushback[len(r.pushback)-1])
		r.pushback = r.pushback[:len(r.pushback)-1]
	}
	remaining := n - len(out)
	if remaining > 0 {
		if r.pos+remaining > len(r.buf) {
			return nil, io.ErrUnexpectedEOF
		}
		out = append(out, r.buf[r.pos:r.pos+remaining]...)
		r.pos += remaining
	}
	return out, nil
}

func (r *Reader) Unread(b byte) error {
	r.pushback = append(r.pushback, b)
	return nil
}

func (r *Reader) Pos() int { return r.pos }

func (r *Reader) AtEOF() bool {
	return len(r.pushback) == 0 && r.pos >= len(r.buf)
}
