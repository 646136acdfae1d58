package aout

import (
	"io"

	"github.com/wippyai/aout/errors"
	"github.com/wippyai/aout/internal/binary"
)

// Encode encodes the header in the form selected by a_hdrlen. When a_hdrlen
// is larger than the form's fields, the output is zero-padded to a_hdrlen
// bytes so the text segment can follow it directly.
func (h *Header) Encode() []byte {
	n := h.Size()
	if int(h.HeaderLen) > n {
		n = int(h.HeaderLen)
	}
	w := binary.NewWriter(n)
	h.writeShort(w)
	if h.Form() == FormLong {
		h.writeLong(w)
	}
	if pad := n - w.Len(); pad > 0 {
		w.WriteBytes(make([]byte, pad))
	}
	return w.Bytes()
}

// EncodeShort encodes only the short-form fields, whatever a_hdrlen says.
func (h *Header) EncodeShort() []byte {
	w := binary.NewWriter(ShortHeaderSize)
	h.writeShort(w)
	return w.Bytes()
}

// EncodeLong encodes all sixteen fields, whatever a_hdrlen says.
func (h *Header) EncodeLong() []byte {
	w := binary.NewWriter(LongHeaderSize)
	h.writeShort(w)
	h.writeLong(w)
	return w.Bytes()
}

// WriteTo writes the encoded header to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h.Encode())
	if err != nil {
		return int64(n), errors.Wrap(errors.PhaseEncode, errors.KindIO, err, "write header")
	}
	return int64(n), nil
}

func (h *Header) writeShort(w *binary.Writer) {
	w.WriteBytes(h.Magic[:])
	w.U8(uint8(h.Flags))
	w.U8(uint8(h.CPU))
	w.U8(h.HeaderLen)
	w.U8(h.Unused)
	w.U16(h.Version)
	w.U32(h.Text)
	w.U32(h.Data)
	w.U32(h.BSS)
	w.U32(h.Entry)
	w.U32(h.Total)
	w.U32(h.Syms)
}

func (h *Header) writeLong(w *binary.Writer) {
	w.U32(h.TextReloc)
	w.U32(h.DataReloc)
	w.U32(h.TextBase)
	w.U32(h.DataBase)
}
