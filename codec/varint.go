package codec

import (
	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/shared"
)

// PutBER encodes v in ASN.1 BER base-128: 7-bit groups most-significant
// first, each but the last carrying a continuation bit.
func PutBER(s *bitstream.Stream, v uint64) error {
	if err := checkValue(s, v); err != nil {
		return err
	}
	groups := (shared.NumBits(v) + 6) / 7
	if groups == 0 {
		groups = 1
	}
	for i := groups - 1; i >= 1; i-- {
		if err := s.Write(8, 0x80|v>>(7*i)&0x7F); err != nil {
			return err
		}
	}
	return s.Write(8, v&0x7F)
}

// GetBER decodes a BER base-128 value.
func GetBER(s *bitstream.Stream) (uint64, error) {
	return restoring(s, func() (uint64, error) { return getBER(s) })
}

func getBER(s *bitstream.Stream) (uint64, error) {
	var v uint64
	for groups := 0; ; groups++ {
		if groups == 10 {
			return 0, shared.ErrCorrupt
		}
		g, err := s.Read(8)
		if err != nil {
			return 0, err
		}
		if v > s.MaxVal()>>7 {
			return 0, shared.ErrCorrupt
		}
		v = v<<7 | g&0x7F
		if g&0x80 == 0 {
			if v > s.MaxVal() {
				return 0, shared.ErrCorrupt
			}
			return v, nil
		}
	}
}

// PutVarint encodes v as an LEB128 varint: 7-bit groups least-significant
// first, each but the last carrying a continuation bit.
func PutVarint(s *bitstream.Stream, v uint64) error {
	if err := checkValue(s, v); err != nil {
		return err
	}
	for v >= 0x80 {
		if err := s.Write(8, 0x80|v&0x7F); err != nil {
			return err
		}
		v >>= 7
	}
	return s.Write(8, v)
}

// GetVarint decodes an LEB128 varint.
func GetVarint(s *bitstream.Stream) (uint64, error) {
	return restoring(s, func() (uint64, error) { return getVarint(s) })
}

func getVarint(s *bitstream.Stream) (uint64, error) {
	var v uint64
	for shift := uint(0); ; shift += 7 {
		if shift >= 64 {
			return 0, shared.ErrCorrupt
		}
		g, err := s.Read(8)
		if err != nil {
			return 0, err
		}
		payload := g & 0x7F
		if shift > 0 && payload > s.MaxVal()>>shift {
			return 0, shared.ErrCorrupt
		}
		v |= payload << shift
		if g&0x80 == 0 {
			if v > s.MaxVal() {
				return 0, shared.ErrCorrupt
			}
			return v, nil
		}
	}
}
