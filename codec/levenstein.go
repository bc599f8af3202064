package codec

import (
	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/shared"
)

type levChunk struct {
	width uint
	val   uint64
}

// PutLevenstein encodes v in the Levenstein code over v+1: the chain
// length C in unary1, then the chain chunks from the innermost out, each
// chunk being a value with its leading one bit dropped.
func PutLevenstein(s *bitstream.Stream, v uint64) error {
	if err := checkValue(s, v); err != nil {
		return err
	}
	var chunks []levChunk
	c := uint64(1)
	var x uint64
	if v == s.MaxVal() {
		// v+1 = 2^maxbits: the outermost chunk is maxbits zeros.
		w := s.MaxBits()
		chunks = append(chunks, levChunk{width: w})
		c++
		x = uint64(w)
	} else {
		x = v + 1
	}
	for x > 1 {
		b := baseOf(x)
		chunks = append(chunks, levChunk{width: b, val: x - uint64(1)<<b})
		x = uint64(b)
		c++
	}
	if err := PutUnary1(s, c); err != nil {
		return err
	}
	for i := len(chunks) - 1; i >= 0; i-- {
		if err := s.Write(chunks[i].width, chunks[i].val); err != nil {
			return err
		}
	}
	return nil
}

// GetLevenstein decodes a Levenstein value.
func GetLevenstein(s *bitstream.Stream) (uint64, error) {
	return restoring(s, func() (uint64, error) { return getLevenstein(s) })
}

func getLevenstein(s *bitstream.Stream) (uint64, error) {
	c, err := getUnary1(s)
	if err != nil {
		return 0, err
	}
	if c == 0 {
		return 0, shared.ErrCorrupt
	}
	w := uint64(s.MaxBits())
	n := uint64(1)
	for i := uint64(1); i < c; i++ {
		if n > w {
			return 0, shared.ErrCorrupt
		}
		r, err := s.Read(uint(n))
		if err != nil {
			return 0, err
		}
		if n == w {
			// 2^maxbits is admissible only as the chain's final value,
			// with an all-zero chunk; it decodes to the sentinel.
			if r != 0 || i != c-1 {
				return 0, shared.ErrCorrupt
			}
			return s.MaxVal(), nil
		}
		n = uint64(1)<<n | r
	}
	return n - 1, nil
}
