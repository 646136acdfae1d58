package aout

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/aout/errors"
)

// Segment names.
const (
	SegmentText      = "text"
	SegmentData      = "data"
	SegmentTextReloc = "treloc"
	SegmentDataReloc = "dreloc"
	SegmentSyms      = "syms"
)

// Segment is a byte range of the file following the header.
type Segment struct {
	Name   string `json:"name" yaml:"name"`
	Offset int64  `json:"offset" yaml:"offset"`
	Size   int64  `json:"size" yaml:"size"`
}

// File is an open a.out executable.
type File struct {
	Header   *Header
	r        io.ReaderAt
	size     int64
	segments []Segment
	closer   io.Closer
}

// Open opens the named file and reads its header.
func Open(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Load("open "+name, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Load("stat "+name, err)
	}
	af, err := NewFile(f, st.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	af.closer = f
	Logger().Debug("opened a.out file", zap.String("name", name), zap.Int64("size", st.Size()))
	return af, nil
}

// NewFile reads the header from r and lays out the segments that follow it.
// size is the total length of the file; every segment must fit inside it.
// The header is not validated, but a_hdrlen must cover the decoded fields.
func NewFile(r io.ReaderAt, size int64) (*File, error) {
	h, err := DecodeFrom(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, err
	}
	if int(h.HeaderLen) < h.Size() {
		return nil, errors.HeaderTooShort(h.HeaderLen, h.Size())
	}
	segs := layout(h)
	for _, s := range segs {
		if s.Offset+s.Size > size {
			return nil, errors.SegmentOutOfBounds(s.Name, s.Offset, s.Size, size)
		}
	}
	return &File{Header: h, r: r, size: size, segments: segs}, nil
}

// layout places the segments back to back after a_hdrlen bytes of header.
func layout(h *Header) []Segment {
	off := int64(h.HeaderLen)
	next := func(name string, n uint32) Segment {
		s := Segment{Name: name, Offset: off, Size: int64(n)}
		off += int64(n)
		return s
	}
	segs := []Segment{
		next(SegmentText, h.Text),
		next(SegmentData, h.Data),
	}
	if h.Form() == FormLong {
		segs = append(segs,
			next(SegmentTextReloc, h.TextReloc),
			next(SegmentDataReloc, h.DataReloc),
		)
	}
	return append(segs, next(SegmentSyms, h.Syms))
}

// Close closes the underlying file if it was opened by Open.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	err := f.closer.Close()
	f.closer = nil
	return err
}

// Size returns the total file size.
func (f *File) Size() int64 {
	return f.size
}

// Entry returns the program entry address.
func (f *File) Entry() uint32 {
	return f.Header.Entry
}

// Segments returns the segment layout in file order.
func (f *File) Segments() []Segment {
	out := make([]Segment, len(f.segments))
	copy(out, f.segments)
	return out
}

// Segment returns a reader over the named segment, or nil if the file has
// no such segment.
func (f *File) Segment(name string) *io.SectionReader {
	for _, s := range f.segments {
		if s.Name == name {
			return io.NewSectionReader(f.r, s.Offset, s.Size)
		}
	}
	return nil
}

// Text returns a reader over the text segment.
func (f *File) Text() *io.SectionReader {
	return f.Segment(SegmentText)
}

// Data returns a reader over the initialized data segment.
func (f *File) Data() *io.SectionReader {
	return f.Segment(SegmentData)
}

// Symbols returns a reader over the symbol table.
func (f *File) Symbols() *io.SectionReader {
	return f.Segment(SegmentSyms)
}
