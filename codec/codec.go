// Package codec implements universal and parametric prefix codes for
// unsigned integers over a bitstream.Stream: unary, Elias gamma/delta/omega,
// Levenstein, Even-Rodeh, Fibonacci (order-2 C1), Golomb, Rice,
// gamma-Golomb, exponential-Golomb, start-stop, BER and varint.
//
// All codes are 0-based: value 0 has a defined codeword. The universal
// codes additionally carry the stream's all-ones sentinel (MaxVal).
// Decoders never advance the stream position on failure.
package codec

import (
	"fmt"

	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/shared"
)

// Encoder appends a single value to a writing stream.
type Encoder func(*bitstream.Stream, uint64) error

// Decoder consumes a single value from a reading stream.
type Decoder func(*bitstream.Stream) (uint64, error)

// PutEach encodes vals in order with enc.
func PutEach(s *bitstream.Stream, enc Encoder, vals []uint64) error {
	for _, v := range vals {
		if err := enc(s, v); err != nil {
			return err
		}
	}
	return nil
}

// GetEach decodes count values with dec and returns them in read order.
// A negative count reads until the end of the stream. On failure the
// values decoded so far are returned along with the error; the position
// is left before the failing codeword.
func GetEach(s *bitstream.Stream, dec Decoder, count int) ([]uint64, error) {
	vals := []uint64{}
	if count < 0 {
		for {
			pos, err := s.Pos()
			if err != nil {
				return vals, err
			}
			if pos == s.Len() {
				return vals, nil
			}
			v, err := dec(s)
			if err != nil {
				return vals, err
			}
			vals = append(vals, v)
		}
	}
	for i := 0; i < count; i++ {
		v, err := dec(s)
		if err != nil {
			return vals, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// checkValue guards the stream's value bound for codes whose domain is
// [0, maxval].
func checkValue(s *bitstream.Stream, v uint64) error {
	if v > s.MaxVal() {
		return fmt.Errorf("%w: value %d exceeds the stream's maxval %d", shared.ErrBadArgument, v, s.MaxVal())
	}
	return nil
}

// restoring runs dec and rewinds the stream to the starting position if it
// fails, so that a failed read never advances the position.
func restoring(s *bitstream.Stream, dec func() (uint64, error)) (uint64, error) {
	start, err := s.Pos()
	if err != nil {
		return 0, err
	}
	v, err := dec()
	if err != nil {
		if serr := s.Seek(start); serr != nil {
			return 0, serr
		}
		return 0, err
	}
	return v, nil
}

// baseOf returns ⌊log2(v)⌋ for v ≥ 1.
func baseOf(v uint64) uint {
	return shared.NumBits(v) - 1
}
