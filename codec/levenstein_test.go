package codec_test

import (
	"testing"

	"github.com/spacemeshos/bitcode/codec"
	"github.com/spacemeshos/bitcode/shared"
	"github.com/stretchr/testify/require"
)

func TestLevenstein_Strings(t *testing.T) {
	req := require.New(t)

	cases := map[uint64]string{
		0: "10",
		1: "1100",
		2: "1101",
		3: "1110000",
		4: "1110001",
		5: "1110010",
		6: "1110011",
		7: "11101000",
	}
	for v, expected := range cases {
		s := newStream(t, 64)
		req.NoError(codec.PutLevenstein(s, v))
		req.Equal(expected, s.String())

		s.RewindForRead()
		decoded, err := codec.GetLevenstein(s)
		req.NoError(err)
		req.Equal(v, decoded)
	}
}

func TestLevenstein_RoundTrip(t *testing.T) {
	testUniversalRoundTrip(t, codec.PutLevenstein, codec.GetLevenstein)
}

func TestLevenstein_Corrupt(t *testing.T) {
	req := require.New(t)

	// A bare zero prefix carries no chain.
	s := newStream(t, 16)
	req.NoError(s.FromString("0"))
	_, err := codec.GetLevenstein(s)
	req.ErrorIs(err, shared.ErrCorrupt)

	// A chain reaching past 2^maxbits is rejected.
	s = newStream(t, 16)
	req.NoError(s.FromString("111110" + "0" + "10" + "000000" + "0000000000000001"))
	_, err = codec.GetLevenstein(s)
	req.ErrorIs(err, shared.ErrCorrupt)

	pos, err := s.Pos()
	req.NoError(err)
	req.Equal(uint64(0), pos)
}
