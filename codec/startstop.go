package codec

import (
	"fmt"

	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/shared"
)

// StartStop is a start-stop code built from an ordered list of step
// sizes. Step i covers a range of 2^(s_0+...+s_i) values; the selector
// prefix is unary and the suffix width is the cumulative step sum through
// the selected index. The last step is a stop code: values at or past its
// range bound are unrepresentable.
type StartStop struct {
	steps  []uint
	widths []uint
	mins   []uint64
	bound  uint64
	full   bool
}

// NewStartStop builds a start-stop code from the given step list. The
// cumulative step sum may not exceed 64 bits.
func NewStartStop(steps []uint) (*StartStop, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: start-stop requires at least one step", shared.ErrBadArgument)
	}
	ss := &StartStop{
		steps:  append([]uint(nil), steps...),
		widths: make([]uint, len(steps)),
		mins:   make([]uint64, len(steps)),
	}
	var cum uint
	var min uint64
	for i, step := range steps {
		cum += step
		if cum > 64 {
			return nil, fmt.Errorf("%w: cumulative start-stop width %d exceeds 64 bits", shared.ErrBadArgument, cum)
		}
		ss.widths[i] = cum
		ss.mins[i] = min
		if cum == 64 {
			ss.full = true
			continue
		}
		size := uint64(1) << cum
		next := min + size
		if next < min {
			ss.full = true
			continue
		}
		min = next
	}
	ss.bound = min
	return ss, nil
}

// Steps returns the code's step list.
func (ss *StartStop) Steps() []uint {
	return append([]uint(nil), ss.steps...)
}

// Put encodes v, failing with ErrOverflow if v lies at or past the last
// range's bound.
func (ss *StartStop) Put(s *bitstream.Stream, v uint64) error {
	if err := checkValue(s, v); err != nil {
		return err
	}
	for i := range ss.steps {
		if ss.widths[i] > s.MaxBits() {
			return fmt.Errorf("%w: start-stop width %d exceeds the stream's maxbits %d", shared.ErrBadArgument, ss.widths[i], s.MaxBits())
		}
		if !ss.inRange(i, v) {
			continue
		}
		if err := PutUnary(s, uint64(i)); err != nil {
			return err
		}
		if ss.widths[i] == 0 {
			return nil
		}
		return s.Write(ss.widths[i], v-ss.mins[i])
	}
	return fmt.Errorf("%w: value %d is at or past the stop bound %d", shared.ErrOverflow, v, ss.bound)
}

// Get decodes a start-stop value.
func (ss *StartStop) Get(s *bitstream.Stream) (uint64, error) {
	return restoring(s, func() (uint64, error) { return ss.get(s) })
}

func (ss *StartStop) get(s *bitstream.Stream) (uint64, error) {
	i64, err := getUnary(s)
	if err != nil {
		return 0, err
	}
	if i64 >= uint64(len(ss.steps)) {
		return 0, shared.ErrCorrupt
	}
	i := int(i64)
	if ss.widths[i] > s.MaxBits() {
		return 0, fmt.Errorf("%w: start-stop width %d exceeds the stream's maxbits %d", shared.ErrBadArgument, ss.widths[i], s.MaxBits())
	}
	var r uint64
	if ss.widths[i] > 0 {
		v, err := s.Read(ss.widths[i])
		if err != nil {
			return 0, err
		}
		r = v
	}
	v := ss.mins[i] + r
	if v < ss.mins[i] || v > s.MaxVal() {
		return 0, shared.ErrCorrupt
	}
	return v, nil
}

// inRange reports whether v falls into range i.
func (ss *StartStop) inRange(i int, v uint64) bool {
	if v < ss.mins[i] {
		return false
	}
	if ss.widths[i] == 64 {
		return true
	}
	return v-ss.mins[i] < uint64(1)<<ss.widths[i]
}
