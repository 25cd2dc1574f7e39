package main

import (
	"fmt"

	"github.com/andresmejia3/hide/pkg/imageio"
	"github.com/andresmejia3/hide/pkg/stego"
	"github.com/spf13/cobra"
)

var infoPattern patternFlags

var infoCmd = &cobra.Command{
	Use:   "info [image_path]",
	Short: "Inspect a stego image's effective pattern placement",
	Long:  `Resolves a pattern against an image and reports its effective channel/header placement, reading the header's encoded length back if present, without decoding or verifying the payload.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := imageio.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load image %s: %w", args[0], err)
		}

		pattern := infoPattern.toPattern()
		info, err := stego.GetInfo(img, pattern)
		if err != nil {
			return fmt.Errorf("failed to get info from %s: %w", args[0], err)
		}

		fmt.Println("Stego Pattern Information:")
		fmt.Println("--------------------------")
		fmt.Printf("Data Channels:       %s\n", info.Channels)
		fmt.Printf("Bit Frequency:       %d\n", info.BitFrequency)
		fmt.Printf("Hash Check:          %s\n", fallback(info.HashCheck, "none"))
		fmt.Printf("Compression:         %s\n", info.Compression)
		fmt.Printf("Advanced Redundancy: %s\n", info.AdvancedRedundancy)
		fmt.Printf("Repetition Factor:   %d\n", info.RepetitiveRedundancy)
		fmt.Printf("Header Channels:     %s\n", info.HeaderChannels)
		fmt.Printf("Header Position:     %s\n", info.HeaderPosition)
		fmt.Printf("Max Capacity:        %d bytes\n", info.MaxDataSize)
		if info.HasHeaderLength {
			fmt.Printf("Encoded Payload Size: %d bytes\n", info.EncodedDataSize)
		}
		return nil
	},
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	rootCmd.AddCommand(infoCmd)
	registerPatternFlags(infoCmd, &infoPattern)
}
