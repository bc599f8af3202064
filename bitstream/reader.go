package bitstream

import (
	"fmt"

	"github.com/spacemeshos/bitcode/shared"
)

// Read consumes the next numBits bits and returns them as a big-endian
// unsigned value. numBits must be in [1, maxbits]. The position does not
// advance on failure.
func (s *Stream) Read(numBits uint) (uint64, error) {
	if s.mode != Reading {
		return 0, shared.ErrWrongMode
	}
	if numBits < 1 || numBits > s.maxBits {
		return 0, fmt.Errorf("%w: numBits must be in [1, %d], given: %d", shared.ErrBadArgument, s.maxBits, numBits)
	}
	if s.position+uint64(numBits) > s.numBits {
		return 0, shared.ErrUnderflow
	}
	v := s.extract(s.position, numBits)
	s.position += uint64(numBits)
	return v, nil
}

// Peek returns the next numBits bits without advancing the position.
// Past the end of the stream the value is zero-extended, as if the buffer
// continued with zeros.
func (s *Stream) Peek(numBits uint) (uint64, error) {
	if s.mode != Reading {
		return 0, shared.ErrWrongMode
	}
	if numBits < 1 || numBits > s.maxBits {
		return 0, fmt.Errorf("%w: numBits must be in [1, %d], given: %d", shared.ErrBadArgument, s.maxBits, numBits)
	}
	avail := numBits
	if rem := s.numBits - s.position; uint64(avail) > rem {
		avail = uint(rem)
	}
	if avail == 0 {
		return 0, nil
	}
	return s.extract(s.position, avail) << (numBits - avail), nil
}

// ReadBit consumes and returns a single bit.
func (s *Stream) ReadBit() (Bit, error) {
	v, err := s.Read(1)
	return v == 1, err
}

// Skip advances the read position by numBits bits.
func (s *Stream) Skip(numBits uint64) error {
	if s.mode != Reading {
		return shared.ErrWrongMode
	}
	if s.position+numBits > s.numBits {
		return shared.ErrUnderflow
	}
	s.position += numBits
	return nil
}

// extract returns numBits bits starting at the given offset. The range
// must lie within the flushed words.
func (s *Stream) extract(position uint64, numBits uint) uint64 {
	w := position >> 6
	off := uint(position & 63)
	if off+numBits <= 64 {
		return s.words[w] << off >> (64 - numBits)
	}
	v := s.words[w] << off >> (64 - numBits)
	spill := off + numBits - 64
	return v | s.words[w+1]>>(64-spill)
}
