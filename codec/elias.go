package codec

import (
	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/shared"
)

// PutGamma encodes v in Elias gamma: unary(b) followed by the b low bits
// of v+1, where b = ⌊log2(v+1)⌋. The all-ones sentinel is encoded as
// unary(maxbits) with no suffix.
func PutGamma(s *bitstream.Stream, v uint64) error {
	if err := checkValue(s, v); err != nil {
		return err
	}
	if v == s.MaxVal() {
		return PutUnary(s, uint64(s.MaxBits()))
	}
	b := baseOf(v + 1)
	if err := PutUnary(s, uint64(b)); err != nil {
		return err
	}
	if b == 0 {
		return nil
	}
	return s.Write(b, v+1-uint64(1)<<b)
}

// GetGamma decodes an Elias gamma value.
func GetGamma(s *bitstream.Stream) (uint64, error) {
	return restoring(s, func() (uint64, error) { return getGamma(s) })
}

func getGamma(s *bitstream.Stream) (uint64, error) {
	b, err := getUnary(s)
	if err != nil {
		return 0, err
	}
	w := uint64(s.MaxBits())
	if b == w {
		return s.MaxVal(), nil
	}
	if b > w {
		return 0, shared.ErrCorrupt
	}
	if b == 0 {
		return 0, nil
	}
	r, err := s.Read(uint(b))
	if err != nil {
		return 0, err
	}
	return uint64(1)<<b + r - 1, nil
}

// PutDelta encodes v in Elias delta: gamma(b) followed by the b low bits
// of v+1, where b = ⌊log2(v+1)⌋. The all-ones sentinel is encoded as the
// gamma prefix for b = maxbits with no suffix.
func PutDelta(s *bitstream.Stream, v uint64) error {
	if err := checkValue(s, v); err != nil {
		return err
	}
	if v == s.MaxVal() {
		return PutGamma(s, uint64(s.MaxBits()))
	}
	b := baseOf(v + 1)
	if err := PutGamma(s, uint64(b)); err != nil {
		return err
	}
	if b == 0 {
		return nil
	}
	return s.Write(b, v+1-uint64(1)<<b)
}

// GetDelta decodes an Elias delta value.
func GetDelta(s *bitstream.Stream) (uint64, error) {
	return restoring(s, func() (uint64, error) { return getDelta(s) })
}

func getDelta(s *bitstream.Stream) (uint64, error) {
	b, err := getGamma(s)
	if err != nil {
		return 0, err
	}
	w := uint64(s.MaxBits())
	if b == w {
		return s.MaxVal(), nil
	}
	if b > w {
		return 0, shared.ErrCorrupt
	}
	if b == 0 {
		return 0, nil
	}
	r, err := s.Read(uint(b))
	if err != nil {
		return 0, err
	}
	return uint64(1)<<b + r - 1, nil
}

// PutOmega encodes v in Elias omega over v+1: a chain of length groups
// ending in a zero terminator. The all-ones sentinel maps to the chain of
// 2^maxbits, whose final group is a one bit followed by maxbits zeros.
func PutOmega(s *bitstream.Stream, v uint64) error {
	if err := checkValue(s, v); err != nil {
		return err
	}
	if v == s.MaxVal() {
		w := s.MaxBits()
		if err := putOmegaGroups(s, uint64(w)); err != nil {
			return err
		}
		if err := s.Write(1, 1); err != nil {
			return err
		}
		if err := s.Write(w, 0); err != nil {
			return err
		}
		return s.Write(1, 0)
	}
	if err := putOmegaGroups(s, v+1); err != nil {
		return err
	}
	return s.Write(1, 0)
}

// putOmegaGroups writes the recursion groups for n, outermost first.
func putOmegaGroups(s *bitstream.Stream, n uint64) error {
	if n <= 1 {
		return nil
	}
	b := baseOf(n)
	if err := putOmegaGroups(s, uint64(b)); err != nil {
		return err
	}
	return s.Write(b+1, n)
}

// GetOmega decodes an Elias omega value.
func GetOmega(s *bitstream.Stream) (uint64, error) {
	return restoring(s, func() (uint64, error) { return getOmega(s) })
}

func getOmega(s *bitstream.Stream) (uint64, error) {
	w := uint64(s.MaxBits())
	n := uint64(1)
	for {
		bit, err := s.ReadBit()
		if err != nil {
			return 0, err
		}
		if !bit {
			return n - 1, nil
		}
		if n == w {
			// The next group would carry 2^maxbits or more; only the
			// sentinel's exact chain is admissible.
			r, err := s.Read(uint(w))
			if err != nil {
				return 0, err
			}
			if r != 0 {
				return 0, shared.ErrCorrupt
			}
			term, err := s.ReadBit()
			if err != nil {
				return 0, err
			}
			if term {
				return 0, shared.ErrCorrupt
			}
			return s.MaxVal(), nil
		}
		if n > w {
			return 0, shared.ErrCorrupt
		}
		r, err := s.Read(uint(n))
		if err != nil {
			return 0, err
		}
		n = uint64(1)<<n | r
	}
}
