package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Reader wraps an io.Reader with position tracking and fixed-width
// little-endian read methods. Every read names the header field it is
// reading so a short input reports where it stopped.
type Reader struct {
	r   io.Reader
	pos int
	buf [4]byte
}

// NewReader creates a new Reader wrapping the given io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, pos: 0}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

func (r *Reader) fill(field string, dst []byte) error {
	n, err := io.ReadFull(r.r, dst)
	if err != nil {
		pe := &ParseError{
			Field:    field,
			Position: r.pos,
			Want:     len(dst),
			Have:     n,
			Err:      err,
		}
		r.pos += n
		return pe
	}
	r.pos += n
	return nil
}

// ReadBytes reads exactly n raw bytes.
func (r *Reader) ReadBytes(field string, n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.fill(field, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8(field string) (uint8, error) {
	if err := r.fill(field, r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// ReadU16 reads a little-endian uint16 (fixed 2 bytes).
func (r *Reader) ReadU16(field string) (uint16, error) {
	if err := r.fill(field, r.buf[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.buf[:2]), nil
}

// ReadU32 reads a little-endian uint32 (fixed 4 bytes).
func (r *Reader) ReadU32(field string) (uint32, error) {
	if err := r.fill(field, r.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[:4]), nil
}

// ParseError represents a short read of a fixed-width field.
type ParseError struct {
	Err      error
	Field    string
	Position int
	Want     int
	Have     int
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("aout: %s at position %d: need %d bytes, have %d: %v", e.Field, e.Position, e.Want, e.Have, e.Err)
	}
	return fmt.Sprintf("aout: at position %d: need %d bytes, have %d: %v", e.Position, e.Want, e.Have, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
