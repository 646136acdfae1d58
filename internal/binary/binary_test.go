package binary

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReaderReadU8(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(bytes.NewReader(data))

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.ReadU8("byte")
		if err != nil {
			t.Fatalf("ReadU8 %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadU8 %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	if r.Position() != 3 {
		t.Errorf("final position: got %d, want 3", r.Position())
	}

	_, err := r.ReadU8("extra")
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestReaderFixedWidth(t *testing.T) {
	data := []byte{0x34, 0x12, 0x78, 0x56, 0x34, 0x12}
	r := NewReader(bytes.NewReader(data))

	v16, err := r.ReadU16("a_version")
	if err != nil {
		t.Fatalf("ReadU16: %v", err)
	}
	if v16 != 0x1234 {
		t.Errorf("ReadU16: got 0x%04x, want 0x1234", v16)
	}

	v32, err := r.ReadU32("a_text")
	if err != nil {
		t.Fatalf("ReadU32: %v", err)
	}
	if v32 != 0x12345678 {
		t.Errorf("ReadU32: got 0x%08x, want 0x12345678", v32)
	}
	if r.Position() != 6 {
		t.Errorf("position: got %d, want 6", r.Position())
	}
}

func TestReaderReadBytes(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x03, 0x20}))

	got, err := r.ReadBytes("a_magic", 2)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x03}) {
		t.Errorf("ReadBytes: got %v, want [1 3]", got)
	}
	if r.Position() != 2 {
		t.Errorf("position: got %d, want 2", r.Position())
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}))
	if _, err := r.ReadU32("a_data"); err != nil {
		t.Fatalf("ReadU32: %v", err)
	}

	_, err := r.ReadU32("a_bss")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if pe.Field != "a_bss" {
		t.Errorf("Field: got %q, want a_bss", pe.Field)
	}
	if pe.Position != 4 {
		t.Errorf("Position: got %d, want 4", pe.Position)
	}
	if pe.Want != 4 || pe.Have != 2 {
		t.Errorf("Want/Have: got %d/%d, want 4/2", pe.Want, pe.Have)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", pe.Err)
	}
	if r.Position() != 6 {
		t.Errorf("position after short read: got %d, want 6", r.Position())
	}
}

func TestParseErrorMessage(t *testing.T) {
	e := &ParseError{Field: "a_syms", Position: 28, Want: 4, Have: 0, Err: io.EOF}
	want := "aout: a_syms at position 28: need 4 bytes, have 0: EOF"
	if e.Error() != want {
		t.Errorf("Error(): got %q, want %q", e.Error(), want)
	}

	e.Field = ""
	want = "aout: at position 28: need 4 bytes, have 0: EOF"
	if e.Error() != want {
		t.Errorf("Error(): got %q, want %q", e.Error(), want)
	}
}

func TestWriter(t *testing.T) {
	w := NewWriter(16)
	w.WriteBytes([]byte{0x01, 0x03})
	w.U8(0x20)
	w.U16(0x1234)
	w.U32(0xdeadbeef)

	want := []byte{0x01, 0x03, 0x20, 0x34, 0x12, 0xef, 0xbe, 0xad, 0xde}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Bytes: got % x, want % x", w.Bytes(), want)
	}
	if w.Len() != len(want) {
		t.Errorf("Len: got %d, want %d", w.Len(), len(want))
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter(10)
	w.U8(0x7f)
	w.U16(0xbeef)
	w.U32(0x00010000)

	r := NewReader(bytes.NewReader(w.Bytes()))
	b, _ := r.ReadU8("a")
	h, _ := r.ReadU16("b")
	wd, err := r.ReadU32("c")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if b != 0x7f || h != 0xbeef || wd != 0x00010000 {
		t.Errorf("round trip: got %#x %#x %#x", b, h, wd)
	}
}
