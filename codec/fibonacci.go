package codec

import (
	"sync"

	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/shared"
)

// fibBasis memoizes the Fibonacci basis F[2]=1, F[3]=2, F[4]=3, ... per
// stream width, computed once and immutable thereafter.
type fibBasis struct {
	once sync.Once
	fibs []uint64
}

var fibBases = map[uint]*fibBasis{16: {}, 32: {}, 64: {}}

func fibs(width uint) []uint64 {
	basis := fibBases[width]
	basis.once.Do(func() {
		maxVal := shared.MaxVal(width)
		f := []uint64{1, 2}
		for {
			next := f[len(f)-1] + f[len(f)-2]
			if next < f[len(f)-1] || next > maxVal {
				break
			}
			f = append(f, next)
		}
		basis.fibs = f
	})
	return basis.fibs
}

// PutFib encodes v in the order-2 Fibonacci code (C1 of Fraenkel-Klein):
// the Zeckendorf decomposition of v+1, coefficient bits low index first,
// closed by an extra one bit so the codeword ends in two consecutive ones.
func PutFib(s *bitstream.Stream, v uint64) error {
	if err := checkValue(s, v); err != nil {
		return err
	}
	f := fibs(s.MaxBits())
	marks := make([]bool, len(f))
	top := -1
	var rest uint64
	if v == s.MaxVal() {
		// v+1 = 2^maxbits does not fit the stream's width; peel the top
		// basis element off before the greedy walk.
		marks[len(f)-1] = true
		top = len(f) - 1
		rest = s.MaxVal() - f[len(f)-1] + 1
	} else {
		rest = v + 1
	}
	for i := len(f) - 1; i >= 0; i-- {
		if marks[i] || f[i] > rest {
			continue
		}
		marks[i] = true
		rest -= f[i]
		if top < 0 {
			top = i
		}
	}
	for i := 0; i <= top; i++ {
		if err := s.WriteBit(bitstream.Bit(marks[i])); err != nil {
			return err
		}
	}
	return s.WriteBit(bitstream.One)
}

// GetFib decodes a Fibonacci value: bits are consumed until two
// consecutive ones, and the marked basis elements are summed.
func GetFib(s *bitstream.Stream) (uint64, error) {
	return restoring(s, func() (uint64, error) { return getFib(s) })
}

func getFib(s *bitstream.Stream) (uint64, error) {
	f := fibs(s.MaxBits())
	maxVal := s.MaxVal()
	// acc tracks the accumulated sum minus one, so that the sentinel's
	// 2^maxbits total stays within range.
	var acc uint64
	started := false
	prev := bitstream.Zero
	for i := 0; ; i++ {
		bit, err := s.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit && prev {
			return acc, nil
		}
		if i >= len(f) {
			return 0, shared.ErrCorrupt
		}
		if bit {
			if !started {
				acc = f[i] - 1
				started = true
			} else {
				next := acc + f[i]
				if next < acc || next > maxVal {
					return 0, shared.ErrCorrupt
				}
				acc = next
			}
		}
		prev = bit
	}
}
