package binary

import (
	"bytes"
	"encoding/binary"
)

// Writer provides buffered little-endian writing for header encoding.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer with room for size bytes.
func NewWriter(size int) *Writer {
	buf := &bytes.Buffer{}
	buf.Grow(size)
	return &Writer{buf: buf}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// U8 writes a single byte.
func (w *Writer) U8(b uint8) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// U16 writes a little-endian uint16 (fixed 2 bytes).
func (w *Writer) U16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.buf.Write(buf[:])
}

// U32 writes a little-endian uint32 (fixed 4 bytes).
func (w *Writer) U32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}
