package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spacemeshos/sha256-simd"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/bitcode/persistence"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <store file>",
	Short: "Print a store file's header, length and payload digest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		s, err := persistence.ReadStore(args[0], cfg.HeaderLines, cfg.MaxBits)
		if err != nil {
			return err
		}
		raw, numBits := s.Raw()
		digest := sha256.Sum256(raw)

		fmt.Printf("file:    %v (%v)\n", args[0], bytefmt.ByteSize(uint64(info.Size())))
		if header := s.Header(); header != "" {
			fmt.Printf("header:  %v\n", header)
		}
		fmt.Printf("bits:    %v\n", numBits)
		fmt.Printf("payload: %v\n", bytefmt.ByteSize(uint64(len(raw))))
		fmt.Printf("digest:  %v\n", hex.EncodeToString(digest[:]))

		if meta, err := persistence.FetchMeta(args[0] + ".meta"); err == nil {
			if err := meta.Verify(raw, numBits); err != nil {
				return err
			}
			fmt.Printf("meta:    verified (maxbits %v)\n", meta.MaxBits)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
