package aout

import "github.com/wippyai/aout/errors"

// Validate checks the magic number, the header length and the cpu id.
// It returns a *errors.Error in PhaseValidate for the first failure.
func Validate(h *Header) error {
	if h == nil {
		return errors.InvalidInput(errors.PhaseValidate, "nil header")
	}
	if h.Magic[0] != Magic0 || h.Magic[1] != Magic1 {
		return errors.BadMagic(h.Magic)
	}
	if h.HeaderLen != ShortHeaderSize && h.HeaderLen != LongHeaderSize {
		return errors.BadHeaderLength(h.HeaderLen, ShortHeaderSize, LongHeaderSize)
	}
	if !h.CPU.Known() {
		return errors.UnknownCPU(uint8(h.CPU))
	}
	return nil
}

// IsExec reports whether data starts with the a.out magic number.
func IsExec(data []byte) bool {
	return len(data) >= 2 && data[0] == Magic0 && data[1] == Magic1
}
