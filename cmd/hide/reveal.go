package main

import (
	"os"

	"github.com/andresmejia3/hide/pkg/imageio"
	"github.com/andresmejia3/hide/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	rImage              string
	rPass               string
	rKey                string
	rOut                string
	rFallbackEncodedLen int

	rPattern patternFlags
)

var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Reveal a message, file or raw bytes hidden in an image",
	Run: func(cmd *cobra.Command, args []string) {
		if rPass != "" && rKey != "" {
			log.Fatal().Msg("passphrase and key-path cannot both be provided")
		}

		img, err := imageio.Load(rImage)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load image")
		}

		pattern := rPattern.toPattern()

		decoded, err := stego.Decode(img, pattern, rFallbackEncodedLen)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to reveal payload")
		}

		writer := os.Stdout
		if rOut != "" {
			f, err := os.Create(rOut)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to create output file")
			}
			defer f.Close()
			writer = f
		}

		switch decoded.Type {
		case 0:
			writer.Write(maybeDecrypt([]byte(decoded.Text)))
		case 1:
			writer.Write(maybeDecrypt(decoded.Content))
		default:
			writer.Write(maybeDecrypt(decoded.Raw))
		}
	},
}

func init() {
	rootCmd.AddCommand(revealCmd)

	revealCmd.Flags().StringVarP(&rImage, "image-path", "i", "", "Path to image (required)")
	revealCmd.MarkFlagRequired("image-path")
	revealCmd.Flags().StringVarP(&rPass, "passphrase", "p", "", "Passphrase to decrypt the payload")
	revealCmd.Flags().StringVarP(&rKey, "key-path", "k", "", "Path to .pem file containing your private key")
	revealCmd.Flags().StringVarP(&rOut, "output", "o", "", "Output path for revealed payload (optional, defaults to stdout)")
	revealCmd.Flags().IntVar(&rFallbackEncodedLen, "encoded-length", 0, "Encoded payload length, required only when --header=false or --header-data-size=false")

	registerPatternFlags(revealCmd, &rPattern)
}

func maybeDecrypt(data []byte) []byte {
	switch {
	case rKey != "":
		out, err := stego.DecryptRSA(data, rKey)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to RSA-decrypt payload")
		}
		return out
	case rPass != "":
		out, err := stego.Decrypt(data, rPass)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to decrypt payload")
		}
		return out
	default:
		return data
	}
}
