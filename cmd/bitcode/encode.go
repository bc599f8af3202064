package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/persistence"
	"github.com/spacemeshos/bitcode/registry"
)

var (
	encodeOut    string
	encodeValues string
	encodeMeta   bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode [input file...]",
	Short: "Encode unsigned integers into a store file",
	Long: `Encode reads unsigned integers, one per line, from each input file and
writes the encoded bit stream to "<input>.bits" (or to --out for a single
input). With --values, the given comma-separated integers are encoded
instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := registry.Parse(cfg.Code)
		if err != nil {
			return err
		}

		if encodeValues != "" {
			if encodeOut == "" {
				return fmt.Errorf("--out is required with --values")
			}
			vals, err := parseValues(strings.Split(encodeValues, ","))
			if err != nil {
				return err
			}
			return encodeTo(code, vals, encodeOut)
		}

		if len(args) == 0 {
			return fmt.Errorf("no input files and no --values given")
		}
		if encodeOut != "" && len(args) > 1 {
			return fmt.Errorf("--out requires a single input file")
		}

		var eg errgroup.Group
		for _, name := range args {
			name := name
			out := encodeOut
			if out == "" {
				out = name + ".bits"
			}
			eg.Go(func() error {
				vals, err := readValueFile(name)
				if err != nil {
					return err
				}
				return encodeTo(code, vals, out)
			})
		}
		return eg.Wait()
	},
}

func encodeTo(code *registry.Code, vals []uint64, out string) error {
	s, err := bitstream.NewMaxBits(cfg.MaxBits)
	if err != nil {
		return err
	}
	if err := code.PutAll(s, vals); err != nil {
		return err
	}
	s.RewindForRead()

	if err := persistence.WriteStore(out, s); err != nil {
		return err
	}
	if encodeMeta {
		if err := persistence.PersistMeta(out+".meta", s); err != nil {
			return err
		}
	}
	logger.Info("encoded",
		zap.String("out", out),
		zap.String("code", code.Spec),
		zap.Int("values", len(vals)),
		zap.Uint64("bits", s.Len()),
	)
	return nil
}

func readValueFile(name string) ([]uint64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fields []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields = append(fields, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return parseValues(fields)
}

func parseValues(fields []string) ([]uint64, error) {
	vals := make([]uint64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", field, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVarP(&encodeOut, "out", "o", "", "output file path")
	encodeCmd.Flags().StringVar(&encodeValues, "values", "", "comma-separated values to encode instead of reading input files")
	encodeCmd.Flags().BoolVar(&encodeMeta, "meta", false, "also write a metadata sidecar with the payload digest")
}
