package codec

import (
	"fmt"

	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/shared"
)

// PutGolomb encodes v with Golomb parameter m ≥ 1: the quotient ⌊v/m⌋ in
// unary, then the remainder in truncated binary. Short remainder
// codewords come first and use b−1 bits; the rest use b bits offset by
// 2^b − m, where b = ⌈log2 m⌉.
func PutGolomb(s *bitstream.Stream, m uint64, v uint64) error {
	if err := checkGolombParam(m); err != nil {
		return err
	}
	if err := checkValue(s, v); err != nil {
		return err
	}
	q := v / m
	r := v - q*m
	if err := PutUnary(s, q); err != nil {
		return err
	}
	return putTruncated(s, m, r)
}

// GetGolomb decodes a Golomb value with parameter m.
func GetGolomb(s *bitstream.Stream, m uint64) (uint64, error) {
	if err := checkGolombParam(m); err != nil {
		return 0, err
	}
	return restoring(s, func() (uint64, error) {
		q, err := getUnary(s)
		if err != nil {
			return 0, err
		}
		return finishGolomb(s, m, q)
	})
}

// PutGammaGolomb encodes v as Golomb with parameter m, with the quotient
// carried in Elias gamma instead of unary.
func PutGammaGolomb(s *bitstream.Stream, m uint64, v uint64) error {
	if err := checkGolombParam(m); err != nil {
		return err
	}
	if err := checkValue(s, v); err != nil {
		return err
	}
	q := v / m
	r := v - q*m
	if err := PutGamma(s, q); err != nil {
		return err
	}
	return putTruncated(s, m, r)
}

// GetGammaGolomb decodes a gamma-Golomb value with parameter m.
func GetGammaGolomb(s *bitstream.Stream, m uint64) (uint64, error) {
	if err := checkGolombParam(m); err != nil {
		return 0, err
	}
	return restoring(s, func() (uint64, error) {
		q, err := getGamma(s)
		if err != nil {
			return 0, err
		}
		return finishGolomb(s, m, q)
	})
}

// PutRice encodes v with Rice parameter k: Golomb with m = 2^k, where the
// truncated binary step reduces to the k low bits of v.
func PutRice(s *bitstream.Stream, k uint, v uint64) error {
	if err := checkRiceParam(s, k); err != nil {
		return err
	}
	if err := checkValue(s, v); err != nil {
		return err
	}
	if err := PutUnary(s, v>>k); err != nil {
		return err
	}
	if k == 0 {
		return nil
	}
	return s.Write(k, v&shared.MaxVal(k))
}

// GetRice decodes a Rice value with parameter k.
func GetRice(s *bitstream.Stream, k uint) (uint64, error) {
	if err := checkRiceParam(s, k); err != nil {
		return 0, err
	}
	return restoring(s, func() (uint64, error) {
		q, err := getUnary(s)
		if err != nil {
			return 0, err
		}
		return finishRice(s, k, q)
	})
}

// PutExpGolomb encodes v with exponential-Golomb parameter k: Rice with
// the quotient carried in Elias gamma.
func PutExpGolomb(s *bitstream.Stream, k uint, v uint64) error {
	if err := checkRiceParam(s, k); err != nil {
		return err
	}
	if err := checkValue(s, v); err != nil {
		return err
	}
	if err := PutGamma(s, v>>k); err != nil {
		return err
	}
	if k == 0 {
		return nil
	}
	return s.Write(k, v&shared.MaxVal(k))
}

// GetExpGolomb decodes an exponential-Golomb value with parameter k.
func GetExpGolomb(s *bitstream.Stream, k uint) (uint64, error) {
	if err := checkRiceParam(s, k); err != nil {
		return 0, err
	}
	return restoring(s, func() (uint64, error) {
		q, err := getGamma(s)
		if err != nil {
			return 0, err
		}
		return finishRice(s, k, q)
	})
}

func checkGolombParam(m uint64) error {
	if m < 1 {
		return fmt.Errorf("%w: golomb parameter must be >= 1, given: %d", shared.ErrBadArgument, m)
	}
	return nil
}

func checkRiceParam(s *bitstream.Stream, k uint) error {
	if k > s.MaxBits() {
		return fmt.Errorf("%w: rice parameter must be in [0, %d], given: %d", shared.ErrBadArgument, s.MaxBits(), k)
	}
	return nil
}

// putTruncated writes r ∈ [0, m) in truncated binary.
func putTruncated(s *bitstream.Stream, m uint64, r uint64) error {
	if m == 1 {
		return nil
	}
	b := shared.NumBits(m - 1)
	cut := uint64(1)<<b - m
	if r < cut {
		return s.Write(b-1, r)
	}
	return s.Write(b, r+cut)
}

// getTruncated reads a truncated binary remainder for parameter m.
func getTruncated(s *bitstream.Stream, m uint64) (uint64, error) {
	if m == 1 {
		return 0, nil
	}
	b := shared.NumBits(m - 1)
	cut := uint64(1)<<b - m
	var x uint64
	if b > 1 {
		v, err := s.Read(b - 1)
		if err != nil {
			return 0, err
		}
		x = v
	}
	if x < cut {
		return x, nil
	}
	bit, err := s.Read(1)
	if err != nil {
		return 0, err
	}
	return x<<1 + bit - cut, nil
}

func finishGolomb(s *bitstream.Stream, m uint64, q uint64) (uint64, error) {
	r, err := getTruncated(s, m)
	if err != nil {
		return 0, err
	}
	if q != 0 && q > (s.MaxVal()-r)/m {
		return 0, shared.ErrCorrupt
	}
	return q*m + r, nil
}

func finishRice(s *bitstream.Stream, k uint, q uint64) (uint64, error) {
	var r uint64
	if k > 0 {
		v, err := s.Read(k)
		if err != nil {
			return 0, err
		}
		r = v
	}
	if q > s.MaxVal()>>k {
		return 0, shared.ErrCorrupt
	}
	return q<<k | r, nil
}
