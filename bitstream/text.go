package bitstream

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/spacemeshos/bitcode/shared"
)

// String renders the stream's contents as a string of '0'/'1' characters,
// one per bit in position order. It may be called in either mode and does
// not disturb the stream's state.
func (s *Stream) String() string {
	var b strings.Builder
	b.Grow(int(s.numBits))
	for i := uint64(0); i < s.numBits; i++ {
		if s.bitAt(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// FromString replaces the stream's contents with the bits parsed from str.
// The stream is left in reading mode at position 0.
func (s *Stream) FromString(str string) error {
	return s.FromStringN(str, uint64(len(str)))
}

// FromStringN replaces the stream's contents with the first numBits bits
// parsed from str. Characters outside '0'/'1' are rejected.
func (s *Stream) FromStringN(str string, numBits uint64) error {
	if numBits > uint64(len(str)) {
		return fmt.Errorf("%w: numBits %d exceeds string length %d", shared.ErrBadArgument, numBits, len(str))
	}
	for i := 0; i < len(str); i++ {
		if str[i] != '0' && str[i] != '1' {
			return fmt.Errorf("%w: character %q at index %d is not binary", shared.ErrBadArgument, str[i], i)
		}
	}
	s.EraseForWrite()
	for i := uint64(0); i < numBits; i++ {
		if err := s.WriteBit(str[i] == '1'); err != nil {
			return err
		}
	}
	s.RewindForRead()
	return nil
}

// Raw returns the stream's contents packed into bytes, most-significant
// bit first, with the last byte zero-padded, along with the bit length.
// The bit length is not recoverable from the bytes alone and must be
// carried out-of-band.
func (s *Stream) Raw() ([]byte, uint64) {
	numBytes := (s.numBits + 7) / 8
	buf := make([]byte, (numBytes+7)/8*8)
	for i, w := range s.words {
		binary.BigEndian.PutUint64(buf[i*8:], w)
	}
	if s.alignment > 0 {
		binary.BigEndian.PutUint64(buf[len(s.words)*8:], s.pending)
	}
	return buf[:numBytes], s.numBits
}

// FromRaw replaces the stream's contents with numBits bits unpacked from
// raw. It is the inverse of Raw; the stream is left in reading mode at
// position 0.
func (s *Stream) FromRaw(raw []byte, numBits uint64) error {
	if numBits > uint64(len(raw))*8 {
		return fmt.Errorf("%w: numBits %d exceeds payload of %d bytes", shared.ErrBadArgument, numBits, len(raw))
	}
	numWords := int((numBits + 63) / 64)
	words := make([]uint64, numWords)
	for i := 0; i < len(raw) && i/8 < numWords; i++ {
		words[i/8] |= uint64(raw[i]) << (56 - 8*(uint(i)&7))
	}
	// Clear the padding bits of the last word.
	if rem := numBits & 63; rem != 0 {
		words[numWords-1] &= ^uint64(0) << (64 - rem)
	}
	s.words = words
	s.pending = 0
	s.alignment = 0
	s.numBits = numBits
	s.position = 0
	s.closed = true
	s.mode = Reading
	return nil
}
