package main

import (
	"crypto/rand"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	gBytes int
	gOut   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random payload file, for capacity testing",
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Int("bytes", gBytes).Str("output", gOut).Msg("generating random payload")

		buf := make([]byte, gBytes)
		if _, err := rand.Read(buf); err != nil {
			log.Fatal().Err(err).Msg("failed to generate random payload")
		}

		if err := os.WriteFile(gOut, buf, 0o644); err != nil {
			log.Fatal().Err(err).Msg("failed to write payload file")
		}

		log.Info().Msg("payload generated")
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&gBytes, "num-bytes", "n", 1024, "Number of random bytes to generate")
	generateCmd.Flags().StringVarP(&gOut, "output", "o", "", "Path to write the payload file (required)")
	generateCmd.MarkFlagRequired("output")
}
