package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitcode/persistence"
	"github.com/spacemeshos/bitcode/registry"
)

var decodeCount int

var decodeCmd = &cobra.Command{
	Use:   "decode <store file>",
	Short: "Decode a store file back into unsigned integers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := registry.Parse(cfg.Code)
		if err != nil {
			return err
		}
		s, err := persistence.ReadStore(args[0], cfg.HeaderLines, cfg.MaxBits)
		if err != nil {
			return err
		}

		vals, err := code.GetAll(s, decodeCount)
		if err != nil {
			return err
		}
		logger.Debug("decoded",
			zap.String("in", args[0]),
			zap.String("code", code.Spec),
			zap.Int("values", len(vals)),
		)
		for _, v := range vals {
			fmt.Println(v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().IntVar(&decodeCount, "count", -1, "number of values to decode; -1 reads until the end of the stream")
}
