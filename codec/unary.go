package codec

import (
	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/shared"
)

// PutUnary encodes v as v zero bits followed by a one bit. There is no
// upper bound on v other than buffer capacity.
func PutUnary(s *bitstream.Stream, v uint64) error {
	w := uint64(s.MaxBits())
	for v >= w {
		if err := s.Write(uint(w), 0); err != nil {
			return err
		}
		v -= w
	}
	return s.Write(uint(v)+1, 1)
}

// GetUnary decodes a unary value: the distance to the next one bit.
func GetUnary(s *bitstream.Stream) (uint64, error) {
	return restoring(s, func() (uint64, error) { return getUnary(s) })
}

func getUnary(s *bitstream.Stream) (uint64, error) {
	w := s.MaxBits()
	var count uint64
	for {
		chunk, err := s.Peek(w)
		if err != nil {
			return 0, err
		}
		if chunk == 0 {
			// All zeros; with end-of-stream padding this may mean the
			// terminator is missing entirely.
			pos, err := s.Pos()
			if err != nil {
				return 0, err
			}
			if pos+uint64(w) >= s.Len() {
				return 0, shared.ErrUnderflow
			}
			if err := s.Skip(uint64(w)); err != nil {
				return 0, err
			}
			count += uint64(w)
			continue
		}
		z := uint64(w - shared.NumBits(chunk))
		if err := s.Skip(z + 1); err != nil {
			return 0, err
		}
		return count + z, nil
	}
}

// PutUnary1 encodes v as v one bits followed by a zero bit.
func PutUnary1(s *bitstream.Stream, v uint64) error {
	w := uint64(s.MaxBits())
	for v >= w {
		if err := s.Write(uint(w), shared.MaxVal(uint(w))); err != nil {
			return err
		}
		v -= w
	}
	return s.Write(uint(v)+1, (uint64(1)<<v-1)<<1)
}

// GetUnary1 decodes a unary1 value: the distance to the next zero bit.
func GetUnary1(s *bitstream.Stream) (uint64, error) {
	return restoring(s, func() (uint64, error) { return getUnary1(s) })
}

func getUnary1(s *bitstream.Stream) (uint64, error) {
	w := s.MaxBits()
	var count uint64
	for {
		chunk, err := s.Peek(w)
		if err != nil {
			return 0, err
		}
		pos, err := s.Pos()
		if err != nil {
			return 0, err
		}
		remaining := s.Len() - pos
		if chunk == shared.MaxVal(w) {
			if remaining <= uint64(w) {
				return 0, shared.ErrUnderflow
			}
			if err := s.Skip(uint64(w)); err != nil {
				return 0, err
			}
			count += uint64(w)
			continue
		}
		// First zero within the chunk; past the end the padding reads as
		// zeros, so the hit must be checked against the real length.
		z := uint64(w - shared.NumBits(^chunk&shared.MaxVal(w)))
		if z >= remaining {
			return 0, shared.ErrUnderflow
		}
		if err := s.Skip(z + 1); err != nil {
			return 0, err
		}
		return count + z, nil
	}
}
