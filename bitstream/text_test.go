package bitstream_test

import (
	"strings"
	"testing"

	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/shared"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	req := require.New(t)

	s, err := bitstream.NewMaxBits(32)
	req.NoError(err)
	req.Equal("", s.String())

	req.NoError(s.Write(5, 0x15))
	req.Equal("10101", s.String())

	// String works in both modes.
	s.RewindForRead()
	req.Equal("10101", s.String())
}

func TestFromString(t *testing.T) {
	req := require.New(t)

	cases := []string{
		"",
		"0",
		"1",
		"10101",
		"0000000000000001",
		strings.Repeat("10", 100),
		strings.Repeat("1", 64) + strings.Repeat("0", 64) + "1",
	}

	for _, c := range cases {
		s, err := bitstream.NewMaxBits(32)
		req.NoError(err)
		req.NoError(s.FromString(c))
		req.Equal(c, s.String())
		req.Equal(uint64(len(c)), s.Len())

		// The stream is left readable at position 0.
		pos, err := s.Pos()
		req.NoError(err)
		req.Equal(uint64(0), pos)
	}
}

func TestFromString_Validation(t *testing.T) {
	req := require.New(t)

	s, err := bitstream.NewMaxBits(32)
	req.NoError(err)
	req.ErrorIs(s.FromString("01012"), shared.ErrBadArgument)
	req.ErrorIs(s.FromString("abc"), shared.ErrBadArgument)
	req.ErrorIs(s.FromStringN("01", 3), shared.ErrBadArgument)

	req.NoError(s.FromStringN("10101", 3))
	req.Equal("101", s.String())
}

func TestRaw(t *testing.T) {
	req := require.New(t)

	s, err := bitstream.NewMaxBits(64)
	req.NoError(err)
	req.NoError(s.Write(16, 0xA55A))
	req.NoError(s.Write(4, 0xF))

	raw, numBits := s.Raw()
	req.Equal(uint64(20), numBits)
	req.Equal([]byte{0xA5, 0x5A, 0xF0}, raw)

	// Round trip.
	r, err := bitstream.NewMaxBits(64)
	req.NoError(err)
	req.NoError(r.FromRaw(raw, numBits))
	req.Equal(s.String(), r.String())

	v, err := r.Read(16)
	req.NoError(err)
	req.Equal(uint64(0xA55A), v)
	v, err = r.Read(4)
	req.NoError(err)
	req.Equal(uint64(0xF), v)
}

func TestRaw_RoundTrip(t *testing.T) {
	req := require.New(t)

	for _, c := range []string{
		"",
		"1",
		"10101",
		strings.Repeat("10011", 50),
		strings.Repeat("1", 128),
	} {
		s, err := bitstream.NewMaxBits(32)
		req.NoError(err)
		req.NoError(s.FromString(c))

		raw, numBits := s.Raw()
		req.Equal(uint64(len(c)), numBits)
		req.Len(raw, (len(c)+7)/8)

		r, err := bitstream.NewMaxBits(32)
		req.NoError(err)
		req.NoError(r.FromRaw(raw, numBits))
		req.Equal(c, r.String())
	}
}

func TestFromRaw_Validation(t *testing.T) {
	req := require.New(t)

	s, err := bitstream.NewMaxBits(32)
	req.NoError(err)
	req.ErrorIs(s.FromRaw([]byte{0xFF}, 9), shared.ErrBadArgument)

	// Padding bits beyond the bit length are cleared.
	req.NoError(s.FromRaw([]byte{0xFF}, 3))
	req.Equal("111", s.String())
	raw, numBits := s.Raw()
	req.Equal(uint64(3), numBits)
	req.Equal([]byte{0xE0}, raw)
}

func TestHeader(t *testing.T) {
	req := require.New(t)

	s, err := bitstream.NewMaxBits(32)
	req.NoError(err)
	req.Equal("", s.Header())
	s.SetHeader("generated by test")
	req.NoError(s.Write(3, 5))
	req.Equal("generated by test", s.Header())

	// The header survives mode transitions.
	s.RewindForRead()
	req.Equal("generated by test", s.Header())
}
