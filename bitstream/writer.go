package bitstream

import (
	"fmt"

	"github.com/spacemeshos/bitcode/shared"
)

// Write appends the numBits LS bits of v to the stream, most-significant
// bit first. numBits must be in [1, maxbits] and v must fit in numBits
// bits. No bits are persisted on failure.
func (s *Stream) Write(numBits uint, v uint64) error {
	if s.mode != Writing || s.closed {
		return shared.ErrWrongMode
	}
	if numBits < 1 || numBits > s.maxBits {
		return fmt.Errorf("%w: numBits must be in [1, %d], given: %d", shared.ErrBadArgument, s.maxBits, numBits)
	}
	if numBits < 64 && v >= uint64(1)<<numBits {
		return fmt.Errorf("%w: value %d does not fit in %d bits", shared.ErrBadArgument, v, numBits)
	}
	s.push(numBits, v)
	return nil
}

// WriteBit appends a single bit to the stream.
func (s *Stream) WriteBit(bit Bit) error {
	if s.mode != Writing || s.closed {
		return shared.ErrWrongMode
	}
	if bit {
		s.pending |= 1 << (63 - s.alignment)
	}
	s.alignment++
	s.numBits++
	if s.alignment == 64 {
		s.words = append(s.words, s.pending)
		s.pending = 0
		s.alignment = 0
	}
	return nil
}

// push appends the pre-validated numBits LS bits of v.
func (s *Stream) push(numBits uint, v uint64) {
	// Align v's payload to the word's MS bits.
	v <<= 64 - numBits

	s.pending |= v >> s.alignment

	if s.alignment+numBits >= 64 {
		s.words = append(s.words, s.pending)

		// Fill the new pending word's MS bits with v's leftover LS bits.
		used := 64 - s.alignment
		s.pending = v << used
		s.alignment = s.alignment + numBits - 64
	} else {
		s.alignment += numBits
	}

	s.numBits += uint64(numBits)
}

// WriteClose flushes the pending word so that the backing representation
// reflects the stream's length exactly. Further writes fail until
// EraseForWrite.
func (s *Stream) WriteClose() error {
	if s.mode != Writing {
		return shared.ErrWrongMode
	}
	s.writeClose()
	return nil
}

func (s *Stream) writeClose() {
	if s.alignment > 0 {
		s.words = append(s.words, s.pending)
		s.pending = 0
		s.alignment = 0
	}
	s.closed = true
}
