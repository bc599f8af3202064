package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/persistence"
	"github.com/spacemeshos/bitcode/registry"
)

var transcodeTo string

var transcodeCmd = &cobra.Command{
	Use:   "transcode <store file> <output file>",
	Short: "Re-encode a store file under a different code",
	Long: `Transcode decodes every value of a store file with the configured --code
and writes a new store file encoded with the --to code.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := registry.Parse(cfg.Code)
		if err != nil {
			return err
		}
		to, err := registry.Parse(transcodeTo)
		if err != nil {
			return err
		}

		in, err := persistence.ReadStore(args[0], cfg.HeaderLines, cfg.MaxBits)
		if err != nil {
			return err
		}
		vals, err := from.GetAll(in, -1)
		if err != nil {
			return err
		}

		out, err := bitstream.NewMaxBits(cfg.MaxBits)
		if err != nil {
			return err
		}
		if err := to.PutAll(out, vals); err != nil {
			return err
		}
		out.RewindForRead()
		out.SetHeader(in.Header())
		if err := persistence.WriteStore(args[1], out); err != nil {
			return err
		}

		logger.Info("transcoded",
			zap.String("in", args[0]),
			zap.String("out", args[1]),
			zap.String("from", from.Spec),
			zap.String("to", to.Spec),
			zap.Int("values", len(vals)),
			zap.Uint64("inBits", in.Len()),
			zap.Uint64("outBits", out.Len()),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transcodeCmd)

	transcodeCmd.Flags().StringVar(&transcodeTo, "to", "", "target code specification")
	transcodeCmd.MarkFlagRequired("to")
}
