package aout

import (
	"bytes"
	stderrors "errors"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/aout/errors"
	"github.com/wippyai/aout/internal/binary"
)

// Decode parses a header from the start of data. The long-form words are
// read only when a_hdrlen selects the long form; bytes past the header are
// ignored. Decode does not validate the header.
func Decode(data []byte) (*Header, error) {
	return DecodeFrom(bytes.NewReader(data))
}

// DecodeFrom parses a header from r, consuming exactly Size() bytes.
func DecodeFrom(r io.Reader) (*Header, error) {
	br := binary.NewReader(r)
	h := &Header{}

	magic, err := br.ReadBytes("a_magic", 2)
	if err != nil {
		return nil, decodeError(err)
	}
	copy(h.Magic[:], magic)

	flags, err := br.ReadU8("a_flags")
	if err != nil {
		return nil, decodeError(err)
	}
	h.Flags = Flags(flags)

	cpu, err := br.ReadU8("a_cpu")
	if err != nil {
		return nil, decodeError(err)
	}
	h.CPU = CPU(cpu)

	if h.HeaderLen, err = br.ReadU8("a_hdrlen"); err != nil {
		return nil, decodeError(err)
	}
	if h.Unused, err = br.ReadU8("a_unused"); err != nil {
		return nil, decodeError(err)
	}
	if h.Version, err = br.ReadU16("a_version"); err != nil {
		return nil, decodeError(err)
	}

	if err := readWords(br, []wordField{
		{"a_text", &h.Text},
		{"a_data", &h.Data},
		{"a_bss", &h.BSS},
		{"a_entry", &h.Entry},
		{"a_total", &h.Total},
		{"a_syms", &h.Syms},
	}); err != nil {
		return nil, err
	}

	if h.Form() == FormLong {
		if err := readWords(br, []wordField{
			{"a_trsize", &h.TextReloc},
			{"a_drsize", &h.DataReloc},
			{"a_tbase", &h.TextBase},
			{"a_dbase", &h.DataBase},
		}); err != nil {
			return nil, err
		}
	}

	Logger().Debug("decoded a.out header",
		zap.Stringer("form", h.Form()),
		zap.Stringer("cpu", h.CPU),
		zap.Stringer("flags", h.Flags),
		zap.Uint32("text", h.Text),
		zap.Uint32("data", h.Data),
		zap.Uint32("entry", h.Entry),
	)
	return h, nil
}

// DecodeValidate parses a header and validates it.
// This is a convenience function combining Decode and Validate.
func DecodeValidate(data []byte) (*Header, error) {
	h, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(h); err != nil {
		return nil, err
	}
	return h, nil
}

type wordField struct {
	name string
	dst  *uint32
}

func readWords(br *binary.Reader, fields []wordField) error {
	for _, f := range fields {
		v, err := br.ReadU32(f.name)
		if err != nil {
			return decodeError(err)
		}
		*f.dst = v
	}
	return nil
}

func decodeError(err error) error {
	var pe *binary.ParseError
	if stderrors.As(err, &pe) {
		e := errors.Truncated(errors.PhaseDecode, pe.Field, pe.Position, pe.Want, pe.Have)
		e.Value = pe.Have
		e.Cause = pe.Err
		return e
	}
	return errors.Wrap(errors.PhaseDecode, errors.KindIO, err, "read header")
}
