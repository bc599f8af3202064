package codec_test

import (
	"strings"
	"testing"

	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/codec"
	"github.com/spacemeshos/bitcode/shared"
	"github.com/stretchr/testify/require"
)

func newStream(t *testing.T, maxBits uint) *bitstream.Stream {
	s, err := bitstream.NewMaxBits(maxBits)
	require.NoError(t, err)
	return s
}

func TestUnary_Strings(t *testing.T) {
	req := require.New(t)

	cases := map[uint64]string{
		0: "1",
		1: "01",
		2: "001",
		5: "000001",
		9: "0000000001",
	}
	for v, expected := range cases {
		s := newStream(t, 64)
		req.NoError(codec.PutUnary(s, v))
		req.Equal(expected, s.String())

		s.RewindForRead()
		decoded, err := codec.GetUnary(s)
		req.NoError(err)
		req.Equal(v, decoded)
	}
}

func TestUnary_RoundTrip(t *testing.T) {
	req := require.New(t)

	for _, maxBits := range []uint{16, 32, 64} {
		s := newStream(t, maxBits)
		// Values past maxbits exercise the chunked zero runs.
		for v := uint64(0); v <= 300; v++ {
			req.NoError(codec.PutUnary(s, v))
		}
		s.RewindForRead()
		for v := uint64(0); v <= 300; v++ {
			decoded, err := codec.GetUnary(s)
			req.NoError(err)
			req.Equal(v, decoded)
		}
	}
}

func TestUnary_MissingTerminator(t *testing.T) {
	req := require.New(t)

	s := newStream(t, 32)
	req.NoError(s.FromString(strings.Repeat("0", 100)))
	_, err := codec.GetUnary(s)
	req.ErrorIs(err, shared.ErrUnderflow)

	// The position is untouched by the failed read.
	pos, err := s.Pos()
	req.NoError(err)
	req.Equal(uint64(0), pos)

	// An empty stream underflows as well.
	s.EraseForWrite()
	s.RewindForRead()
	_, err = codec.GetUnary(s)
	req.ErrorIs(err, shared.ErrUnderflow)
}

func TestUnary1_Strings(t *testing.T) {
	req := require.New(t)

	cases := map[uint64]string{
		0: "0",
		1: "10",
		3: "1110",
		7: "11111110",
	}
	for v, expected := range cases {
		s := newStream(t, 64)
		req.NoError(codec.PutUnary1(s, v))
		req.Equal(expected, s.String())

		s.RewindForRead()
		decoded, err := codec.GetUnary1(s)
		req.NoError(err)
		req.Equal(v, decoded)
	}
}

func TestUnary1_RoundTrip(t *testing.T) {
	req := require.New(t)

	for _, maxBits := range []uint{16, 32, 64} {
		s := newStream(t, maxBits)
		for v := uint64(0); v <= 300; v++ {
			req.NoError(codec.PutUnary1(s, v))
		}
		s.RewindForRead()
		for v := uint64(0); v <= 300; v++ {
			decoded, err := codec.GetUnary1(s)
			req.NoError(err)
			req.Equal(v, decoded)
		}
	}
}

func TestUnary1_MissingTerminator(t *testing.T) {
	req := require.New(t)

	s := newStream(t, 32)
	req.NoError(s.FromString(strings.Repeat("1", 100)))
	_, err := codec.GetUnary1(s)
	req.ErrorIs(err, shared.ErrUnderflow)

	pos, err := s.Pos()
	req.NoError(err)
	req.Equal(uint64(0), pos)
}
