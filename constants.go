package aout

import (
	"fmt"
	"strings"
)

// Header sizes in bytes.
const (
	ShortHeaderSize = 32
	LongHeaderSize  = 48
	WordSize        = 4
)

// Magic number bytes.
const (
	Magic0 = 0x01
	Magic1 = 0x03
)

// Field offsets within the encoded header.
const (
	OffsetMagic     = 0
	OffsetFlags     = 2
	OffsetCPU       = 3
	OffsetHeaderLen = 4
	OffsetUnused    = 5
	OffsetVersion   = 6
	OffsetText      = 8
	OffsetData      = 12
	OffsetBSS       = 16
	OffsetEntry     = 20
	OffsetTotal     = 24
	OffsetSyms      = 28

	// Long form only.
	OffsetTextReloc = 32
	OffsetDataReloc = 36
	OffsetTextBase  = 40
	OffsetDataBase  = 44
)

// Flags is the a_flags byte.
type Flags uint8

const (
	FlagUZP   Flags = 0x01 // unmapped zero page
	FlagPAL   Flags = 0x02 // page aligned executable
	FlagNSYM  Flags = 0x04 // new style symbol table
	FlagEXEC  Flags = 0x10 // executable
	FlagSEP   Flags = 0x20 // separate I&D
	FlagPURE  Flags = 0x40 // pure text
	FlagTOVLY Flags = 0x80 // text overlay
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagUZP, "UZP"},
	{FlagPAL, "PAL"},
	{FlagNSYM, "NSYM"},
	{FlagEXEC, "EXEC"},
	{FlagSEP, "SEP"},
	{FlagPURE, "PURE"},
	{FlagTOVLY, "TOVLY"},
}

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// String returns the set flag names joined by '|', or "0" when none are set.
// Bits without a name are appended in hex.
func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var names []string
	rest := f
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("%#04x", uint8(rest)))
	}
	return strings.Join(names, "|")
}

// CPU is the a_cpu byte identifying the target architecture.
type CPU uint8

const (
	CPUNone   CPU = 0x00
	CPUI8086  CPU = 0x04
	CPUM68K   CPU = 0x0B
	CPUNS16K  CPU = 0x0C
	CPUI80386 CPU = 0x10
	CPUSPARC  CPU = 0x17
)

var cpuNames = map[CPU]string{
	CPUNone:   "none",
	CPUI8086:  "i8086",
	CPUM68K:   "m68k",
	CPUNS16K:  "ns16k",
	CPUI80386: "i80386",
	CPUSPARC:  "sparc",
}

// Known reports whether c is a recognized cpu id.
func (c CPU) Known() bool {
	_, ok := cpuNames[c]
	return ok
}

func (c CPU) String() string {
	if name, ok := cpuNames[c]; ok {
		return name
	}
	return fmt.Sprintf("cpu(%#04x)", uint8(c))
}

// Form is the header form selected by a_hdrlen.
type Form uint8

const (
	FormShort Form = iota
	FormLong
)

func (f Form) String() string {
	if f == FormLong {
		return "long"
	}
	return "short"
}
