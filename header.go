package aout

import "encoding/json"

// Header is the a.out executable header. Field order and widths follow the
// on-disk layout; see the package documentation for offsets.
type Header struct {
	Magic     [2]byte `json:"a_magic" yaml:"a_magic"`
	Flags     Flags   `json:"a_flags" yaml:"a_flags"`
	CPU       CPU     `json:"a_cpu" yaml:"a_cpu"`
	HeaderLen uint8   `json:"a_hdrlen" yaml:"a_hdrlen"`
	Unused    uint8   `json:"a_unused" yaml:"a_unused"`
	Version   uint16  `json:"a_version" yaml:"a_version"`
	Text      uint32  `json:"a_text" yaml:"a_text"`
	Data      uint32  `json:"a_data" yaml:"a_data"`
	BSS       uint32  `json:"a_bss" yaml:"a_bss"`
	Entry     uint32  `json:"a_entry" yaml:"a_entry"`
	Total     uint32  `json:"a_total" yaml:"a_total"`
	Syms      uint32  `json:"a_syms" yaml:"a_syms"`

	// Short form ends here.

	TextReloc uint32 `json:"a_trsize" yaml:"a_trsize"`
	DataReloc uint32 `json:"a_drsize" yaml:"a_drsize"`
	TextBase  uint32 `json:"a_tbase" yaml:"a_tbase"`
	DataBase  uint32 `json:"a_dbase" yaml:"a_dbase"`
}

// wireHeader has Header's fields and tags but none of its methods.
type wireHeader Header

// shortWireHeader is the serialized view of a short-form header.
type shortWireHeader struct {
	Magic     [2]byte `json:"a_magic" yaml:"a_magic"`
	Flags     Flags   `json:"a_flags" yaml:"a_flags"`
	CPU       CPU     `json:"a_cpu" yaml:"a_cpu"`
	HeaderLen uint8   `json:"a_hdrlen" yaml:"a_hdrlen"`
	Unused    uint8   `json:"a_unused" yaml:"a_unused"`
	Version   uint16  `json:"a_version" yaml:"a_version"`
	Text      uint32  `json:"a_text" yaml:"a_text"`
	Data      uint32  `json:"a_data" yaml:"a_data"`
	BSS       uint32  `json:"a_bss" yaml:"a_bss"`
	Entry     uint32  `json:"a_entry" yaml:"a_entry"`
	Total     uint32  `json:"a_total" yaml:"a_total"`
	Syms      uint32  `json:"a_syms" yaml:"a_syms"`
}

// view returns the value to serialize: all sixteen fields in long form,
// the first twelve in short form.
func (h Header) view() any {
	if h.Form() == FormLong {
		return wireHeader(h)
	}
	return shortWireHeader{
		Magic: h.Magic, Flags: h.Flags, CPU: h.CPU, HeaderLen: h.HeaderLen,
		Unused: h.Unused, Version: h.Version, Text: h.Text, Data: h.Data,
		BSS: h.BSS, Entry: h.Entry, Total: h.Total, Syms: h.Syms,
	}
}

// MarshalJSON emits the long-form words only when a_hdrlen selects the long form.
func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.view())
}

// MarshalYAML emits the long-form words only when a_hdrlen selects the long form.
func (h Header) MarshalYAML() (any, error) {
	return h.view(), nil
}

// NewHeader returns a short-form header with the magic number and header
// length filled in.
func NewHeader(cpu CPU, flags Flags) *Header {
	return &Header{
		Magic:     [2]byte{Magic0, Magic1},
		Flags:     flags,
		CPU:       cpu,
		HeaderLen: ShortHeaderSize,
	}
}

// Form reports which form a_hdrlen selects.
func (h *Header) Form() Form {
	if int(h.HeaderLen) >= LongHeaderSize {
		return FormLong
	}
	return FormShort
}

// Size returns the size of the header fields in the current form, 32 or 48.
func (h *Header) Size() int {
	if h.Form() == FormLong {
		return LongHeaderSize
	}
	return ShortHeaderSize
}

// SetForm switches between short and long form by rewriting a_hdrlen.
// Switching to short form clears the long-form words.
func (h *Header) SetForm(f Form) {
	if f == FormLong {
		h.HeaderLen = LongHeaderSize
		return
	}
	h.HeaderLen = ShortHeaderSize
	h.TextReloc, h.DataReloc, h.TextBase, h.DataBase = 0, 0, 0, 0
}

// FieldInfo describes one encoded header field.
type FieldInfo struct {
	Name   string
	Offset int
	Width  int
	Value  uint32
}

// Fields lists the header fields present in the current form, in wire order.
// The magic field's Value holds both bytes, first byte lowest.
func (h *Header) Fields() []FieldInfo {
	fields := []FieldInfo{
		{"a_magic", OffsetMagic, 2, uint32(h.Magic[0]) | uint32(h.Magic[1])<<8},
		{"a_flags", OffsetFlags, 1, uint32(h.Flags)},
		{"a_cpu", OffsetCPU, 1, uint32(h.CPU)},
		{"a_hdrlen", OffsetHeaderLen, 1, uint32(h.HeaderLen)},
		{"a_unused", OffsetUnused, 1, uint32(h.Unused)},
		{"a_version", OffsetVersion, 2, uint32(h.Version)},
		{"a_text", OffsetText, WordSize, h.Text},
		{"a_data", OffsetData, WordSize, h.Data},
		{"a_bss", OffsetBSS, WordSize, h.BSS},
		{"a_entry", OffsetEntry, WordSize, h.Entry},
		{"a_total", OffsetTotal, WordSize, h.Total},
		{"a_syms", OffsetSyms, WordSize, h.Syms},
	}
	if h.Form() == FormLong {
		fields = append(fields,
			FieldInfo{"a_trsize", OffsetTextReloc, WordSize, h.TextReloc},
			FieldInfo{"a_drsize", OffsetDataReloc, WordSize, h.DataReloc},
			FieldInfo{"a_tbase", OffsetTextBase, WordSize, h.TextBase},
			FieldInfo{"a_dbase", OffsetDataBase, WordSize, h.DataBase},
		)
	}
	return fields
}
