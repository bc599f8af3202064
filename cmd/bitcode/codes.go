package main

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/registry"
)

// sampleSpecs supplies a representative parameter for the parametric
// codes so their codeword lengths can be tabulated.
var sampleSpecs = map[string]string{
	"golomb":      "golomb(10)",
	"rice":        "rice(3)",
	"gammagolomb": "gammagolomb(10)",
	"expgolomb":   "expgolomb(3)",
	"startstop":   "startstop(3-2-11)",
}

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List the registered codes and their codeword lengths",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"name", "spec", "bits(0)", "bits(1)", "bits(100)", "bits(10000)"})

		for _, name := range registry.Default.Names() {
			spec := name
			if sample, ok := sampleSpecs[name]; ok {
				spec = sample
			}
			code, err := registry.Parse(spec)
			if err != nil {
				return err
			}
			row := []string{name, spec}
			for _, v := range []uint64{0, 1, 100, 10000} {
				row = append(row, codewordLen(code, v))
			}
			table.Append(row)
		}
		table.Render()
		return nil
	},
}

// codewordLen returns the codeword length of v in bits, or "-" if v is
// not representable.
func codewordLen(code *registry.Code, v uint64) string {
	s, err := bitstream.NewMaxBits(cfg.MaxBits)
	if err != nil {
		return "-"
	}
	if err := code.Put(s, v); err != nil {
		return "-"
	}
	return strconv.FormatUint(s.Len(), 10)
}

func init() {
	rootCmd.AddCommand(codesCmd)
}
