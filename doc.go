// Package aout implements the a.out executable header used by MINIX and
// early Unix-like systems.
//
// The header is a fixed-size record at the start of an executable. It
// describes the text, data and bss segment sizes, the entry point and the
// symbol table size. Two forms exist. The short form is 32 bytes; the long
// form appends four more words (relocation table sizes and segment base
// addresses) for 48 bytes in total. The form is selected by the a_hdrlen
// byte of the header itself.
//
// # Layout
//
//	offset  field      width
//	0       a_magic    2
//	2       a_flags    1
//	3       a_cpu      1
//	4       a_hdrlen   1
//	5       a_unused   1
//	6       a_version  2
//	8       a_text     4
//	12      a_data     4
//	16      a_bss      4
//	20      a_entry    4
//	24      a_total    4
//	28      a_syms     4
//	        -- short form ends here --
//	32      a_trsize   4
//	36      a_drsize   4
//	40      a_tbase    4
//	44      a_dbase    4
//
// All multi-byte fields are little-endian words of 32 bits. Fields are
// encoded one at a time, so Go struct padding never reaches the wire.
//
// # Decoding
//
//	data, _ := os.ReadFile("a.out")
//	hdr, err := aout.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decode never validates. Use DecodeValidate, or call Validate on the
// result, to reject files with a wrong magic number, header length or cpu.
//
// # Segments
//
// File gives access to the segments that follow the header:
//
//	f, err := aout.Open("a.out")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	text, _ := io.ReadAll(f.Text())
//
// # Package Structure
//
//	aout/                 Header, codec, validation, File
//	├── internal/binary/  Fixed-width little-endian reader and writer
//	├── errors/           Structured error types
//	└── cmd/aoutdump/     Header inspector
package aout
