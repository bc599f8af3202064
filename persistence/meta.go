package persistence

import (
	"bytes"
	"fmt"
	"os"

	"github.com/nullstyle/go-xdr/xdr3"
	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/shared"
	"github.com/spacemeshos/sha256-simd"
)

// Meta describes a raw payload whose bit length travels out-of-band: the
// stream's width, its exact bit length, and a digest of the packed bytes.
type Meta struct {
	MaxBits uint32
	NumBits uint64
	Digest  []byte
}

// PersistMeta writes the stream's metadata sidecar to the given filename.
func PersistMeta(filename string, s *bitstream.Stream) error {
	raw, numBits := s.Raw()
	digest := sha256.Sum256(raw)
	meta := &Meta{
		MaxBits: uint32(s.MaxBits()),
		NumBits: numBits,
		Digest:  digest[:],
	}

	var w bytes.Buffer
	if _, err := xdr.Marshal(&w, &meta); err != nil {
		return fmt.Errorf("serialization failure: %w", err)
	}
	if err := os.WriteFile(filename, w.Bytes(), shared.OwnerReadWrite); err != nil {
		return fmt.Errorf("write to disk failure: %w", err)
	}
	return nil
}

// FetchMeta reads a metadata sidecar written by PersistMeta.
func FetchMeta(filename string) (*Meta, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read file failure: %w", err)
	}
	meta := &Meta{}
	if _, err := xdr.Unmarshal(bytes.NewReader(data), meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// Verify checks a raw payload against the sidecar's length and digest.
func (m *Meta) Verify(raw []byte, numBits uint64) error {
	if numBits != m.NumBits {
		return fmt.Errorf("%w: payload holds %d bits, metadata declares %d", shared.ErrCorrupt, numBits, m.NumBits)
	}
	digest := sha256.Sum256(raw)
	if !bytes.Equal(digest[:], m.Digest) {
		return fmt.Errorf("%w: payload digest mismatch", shared.ErrCorrupt)
	}
	return nil
}
