package codec

import (
	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/shared"
)

// PutEvenRodeh encodes v in the Even-Rodeh code with the 3-bit seed
// convention: values below 4 are a bare 3-bit field; larger values emit a
// chain of length groups followed by a zero terminator.
func PutEvenRodeh(s *bitstream.Stream, v uint64) error {
	if err := checkValue(s, v); err != nil {
		return err
	}
	if v < 4 {
		return s.Write(3, v)
	}
	var chain []uint64
	for x := v; x >= 4; x = uint64(shared.NumBits(x)) {
		chain = append(chain, x)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if err := s.Write(shared.NumBits(chain[i]), chain[i]); err != nil {
			return err
		}
	}
	return s.Write(1, 0)
}

// GetEvenRodeh decodes an Even-Rodeh value. A terminator cut off by the
// end of the stream is treated as present, matching the zero-padded
// readahead behavior.
func GetEvenRodeh(s *bitstream.Stream) (uint64, error) {
	return restoring(s, func() (uint64, error) { return getEvenRodeh(s) })
}

func getEvenRodeh(s *bitstream.Stream) (uint64, error) {
	n, err := s.Read(3)
	if err != nil {
		return 0, err
	}
	if n < 4 {
		return n, nil
	}
	w := uint64(s.MaxBits())
	for {
		pos, err := s.Pos()
		if err != nil {
			return 0, err
		}
		if pos == s.Len() {
			return n, nil
		}
		bit, err := s.Peek(1)
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			if err := s.Skip(1); err != nil {
				return 0, err
			}
			return n, nil
		}
		if n > w {
			return 0, shared.ErrCorrupt
		}
		n, err = s.Read(uint(n))
		if err != nil {
			return 0, err
		}
	}
}
