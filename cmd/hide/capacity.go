package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/andresmejia3/hide/pkg/imageio"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var capPattern patternFlags

var capacityCmd = &cobra.Command{
	Use:   "capacity [image-path]",
	Short: "Calculate the payload capacity of an image under a pattern",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		img, err := imageio.Load(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load image")
		}

		pattern := capPattern.toPattern()
		resolved, err := pattern.Resolve(img.Channels)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to resolve pattern")
		}

		wtr := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(wtr, "Channels\tBit Frequency\tByte Spacing\tRedundancy\tCapacity (Bytes)")
		fmt.Fprintln(wtr, "--------\t-------------\t------------\t----------\t----------------")
		fmt.Fprintf(wtr, "%s\t%d\t%d\t%s/%d\t%d\n",
			resolved.Channels, resolved.BitFrequency, resolved.ByteSpacing,
			resolved.AdvancedRedundancy, resolved.RepetitiveRedundancy,
			resolved.MaxDataSize(img.PixelCount()))
		wtr.Flush()
	},
}

func init() {
	rootCmd.AddCommand(capacityCmd)
	registerPatternFlags(capacityCmd, &capPattern)
}
