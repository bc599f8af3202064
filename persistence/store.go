// Package persistence reads and writes bit streams as files: a store
// format carrying the bit length in-band, and an xdr metadata sidecar for
// raw payloads whose bit length travels out-of-band.
package persistence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/shared"
)

// A store file consists of the stream's header lines (each terminated by
// '\n'), followed by a binary payload whose first eight bytes carry the
// bit length as a big-endian unsigned 64-bit integer, followed by the
// packed bits. The header line count is not encoded and must be supplied
// on read.
const storeLenSize = 8

var logger shared.Logger = shared.NoopLogger{}

// SetLogger sets the logger for store operations.
func SetLogger(l shared.Logger) {
	logger = l
}

// WriteStore writes the stream to a store file.
func WriteStore(filename string, s *bitstream.Stream) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, shared.OwnerReadWrite)
	if err != nil {
		return fmt.Errorf("failed to open store file: %w", err)
	}
	w := bufio.NewWriter(f)

	if header := s.Header(); header != "" {
		for _, line := range strings.Split(header, "\n") {
			if _, err := w.WriteString(line); err != nil {
				f.Close()
				return err
			}
			if err := w.WriteByte('\n'); err != nil {
				f.Close()
				return err
			}
		}
	}

	raw, numBits := s.Raw()
	var lenBuf [storeLenSize]byte
	binary.BigEndian.PutUint64(lenBuf[:], numBits)
	if _, err := w.Write(lenBuf[:]); err != nil {
		f.Close()
		return err
	}
	if _, err := w.Write(raw); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush store writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Debug("stored %d bits to %v", numBits, filename)
	return nil
}

// ReadStore reads a store file written by WriteStore. The first
// headerLines lines are consumed verbatim into the stream's header; the
// payload must hold exactly the number of bytes implied by its length
// prefix. The returned stream is in reading mode at position 0.
func ReadStore(filename string, headerLines int, maxBits uint) (*bitstream.Stream, error) {
	f, err := os.OpenFile(filename, os.O_RDONLY, shared.OwnerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	lines := make([]string, 0, headerLines)
	for i := 0; i < headerLines; i++ {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: store file is missing header line %d", shared.ErrCorrupt, i+1)
		}
		lines = append(lines, strings.TrimSuffix(line, "\n"))
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(payload) < storeLenSize {
		return nil, fmt.Errorf("%w: store payload is shorter than its length prefix", shared.ErrCorrupt)
	}
	numBits := binary.BigEndian.Uint64(payload[:storeLenSize])
	raw := payload[storeLenSize:]
	if uint64(len(raw)) != (numBits+7)/8 {
		return nil, fmt.Errorf("%w: store payload holds %d bytes, expected %d for %d bits",
			shared.ErrCorrupt, len(raw), (numBits+7)/8, numBits)
	}

	s, err := bitstream.NewMaxBits(maxBits)
	if err != nil {
		return nil, err
	}
	if err := s.FromRaw(raw, numBits); err != nil {
		return nil, err
	}
	s.SetHeader(strings.Join(lines, "\n"))

	logger.Debug("loaded %d bits from %v", numBits, filename)
	return s, nil
}
