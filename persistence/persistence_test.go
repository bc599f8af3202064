package persistence_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/codec"
	"github.com/spacemeshos/bitcode/persistence"
	"github.com/spacemeshos/bitcode/shared"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	req := require.New(t)

	s, err := bitstream.NewMaxBits(64)
	req.NoError(err)
	for v := uint64(0); v <= 129; v++ {
		req.NoError(codec.PutGamma(s, v))
	}
	s.RewindForRead()

	filename := filepath.Join(t.TempDir(), "gamma.bits")
	req.NoError(persistence.WriteStore(filename, s))

	r, err := persistence.ReadStore(filename, 0, 64)
	req.NoError(err)
	req.Equal(s.Len(), r.Len())
	req.Equal(s.String(), r.String())

	for v := uint64(0); v <= 129; v++ {
		decoded, err := codec.GetGamma(r)
		req.NoError(err)
		req.Equal(v, decoded)
	}
}

func TestStore_Header(t *testing.T) {
	req := require.New(t)

	s, err := bitstream.NewMaxBits(32)
	req.NoError(err)
	s.SetHeader("encoded with gamma\nmaxbits 32")
	req.NoError(s.Write(5, 0x15))
	s.RewindForRead()

	filename := filepath.Join(t.TempDir(), "header.bits")
	req.NoError(persistence.WriteStore(filename, s))

	// The header line count travels out-of-band.
	r, err := persistence.ReadStore(filename, 2, 32)
	req.NoError(err)
	req.Equal("encoded with gamma\nmaxbits 32", r.Header())
	req.Equal("10101", r.String())

	// Asking for more header lines than present is rejected.
	_, err = persistence.ReadStore(filename, 3, 32)
	req.ErrorIs(err, shared.ErrCorrupt)
}

func TestStore_Empty(t *testing.T) {
	req := require.New(t)

	s, err := bitstream.NewMaxBits(32)
	req.NoError(err)
	s.RewindForRead()

	filename := filepath.Join(t.TempDir(), "empty.bits")
	req.NoError(persistence.WriteStore(filename, s))

	r, err := persistence.ReadStore(filename, 0, 32)
	req.NoError(err)
	req.Equal(uint64(0), r.Len())
}

func TestStore_Corrupt(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()

	// Payload shorter than the length prefix.
	short := filepath.Join(dir, "short.bits")
	req.NoError(os.WriteFile(short, []byte{0, 1, 2}, shared.OwnerReadWrite))
	_, err := persistence.ReadStore(short, 0, 32)
	req.ErrorIs(err, shared.ErrCorrupt)

	// Payload size disagreeing with the declared bit length.
	mismatched := filepath.Join(dir, "mismatched.bits")
	buf := make([]byte, 8, 10)
	binary.BigEndian.PutUint64(buf, 100)
	buf = append(buf, 0xFF)
	req.NoError(os.WriteFile(mismatched, buf, shared.OwnerReadWrite))
	_, err = persistence.ReadStore(mismatched, 0, 32)
	req.ErrorIs(err, shared.ErrCorrupt)
}

func TestMeta_RoundTrip(t *testing.T) {
	req := require.New(t)

	s, err := bitstream.NewMaxBits(32)
	req.NoError(err)
	for v := uint64(0); v <= 100; v++ {
		req.NoError(codec.PutFib(s, v))
	}
	s.RewindForRead()

	filename := filepath.Join(t.TempDir(), "fib.meta")
	req.NoError(persistence.PersistMeta(filename, s))

	meta, err := persistence.FetchMeta(filename)
	req.NoError(err)
	req.Equal(uint32(32), meta.MaxBits)
	req.Equal(s.Len(), meta.NumBits)

	raw, numBits := s.Raw()
	req.NoError(meta.Verify(raw, numBits))

	// A flipped payload bit fails verification.
	raw[0] ^= 0x80
	req.ErrorIs(meta.Verify(raw, numBits), shared.ErrCorrupt)
	raw[0] ^= 0x80

	// A length mismatch fails verification.
	req.ErrorIs(meta.Verify(raw, numBits+1), shared.ErrCorrupt)
}

func TestFetchMeta_Missing(t *testing.T) {
	req := require.New(t)

	_, err := persistence.FetchMeta(filepath.Join(t.TempDir(), "nothing.meta"))
	req.Error(err)
}
