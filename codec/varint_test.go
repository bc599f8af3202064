package codec_test

import (
	"testing"

	"github.com/spacemeshos/bitcode/codec"
	"github.com/spacemeshos/bitcode/shared"
	"github.com/stretchr/testify/require"
)

func TestBER_Strings(t *testing.T) {
	req := require.New(t)

	cases := map[uint64]string{
		0:   "00000000",
		1:   "00000001",
		127: "01111111",
		128: "1000000100000000",
		300: "1000001000101100",
	}
	for v, expected := range cases {
		s := newStream(t, 64)
		req.NoError(codec.PutBER(s, v))
		req.Equal(expected, s.String())

		s.RewindForRead()
		decoded, err := codec.GetBER(s)
		req.NoError(err)
		req.Equal(v, decoded)
	}
}

func TestBER_RoundTrip(t *testing.T) {
	testUniversalRoundTrip(t, codec.PutBER, codec.GetBER)
}

func TestBER_Corrupt(t *testing.T) {
	req := require.New(t)

	// Continuation bits with no final group.
	s := newStream(t, 16)
	req.NoError(s.FromString("10000001" + "10000001"))
	_, err := codec.GetBER(s)
	req.ErrorIs(err, shared.ErrUnderflow)

	// A value past the stream's maxval is rejected.
	s = newStream(t, 16)
	req.NoError(s.FromString("10000100" + "10000000" + "00000000"))
	_, err = codec.GetBER(s)
	req.ErrorIs(err, shared.ErrCorrupt)
}

func TestVarint_Strings(t *testing.T) {
	req := require.New(t)

	cases := map[uint64]string{
		0:   "00000000",
		1:   "00000001",
		127: "01111111",
		128: "1000000000000001",
		300: "1010110000000010",
	}
	for v, expected := range cases {
		s := newStream(t, 64)
		req.NoError(codec.PutVarint(s, v))
		req.Equal(expected, s.String())

		s.RewindForRead()
		decoded, err := codec.GetVarint(s)
		req.NoError(err)
		req.Equal(v, decoded)
	}
}

func TestVarint_RoundTrip(t *testing.T) {
	testUniversalRoundTrip(t, codec.PutVarint, codec.GetVarint)
}

func TestVarint_Corrupt(t *testing.T) {
	req := require.New(t)

	// A value past the stream's maxval is rejected.
	s := newStream(t, 16)
	req.NoError(s.FromString("10000000" + "10000000" + "00000100"))
	_, err := codec.GetVarint(s)
	req.ErrorIs(err, shared.ErrCorrupt)
}
