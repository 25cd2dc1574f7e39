package main

import (
	"os"
	"path/filepath"

	"github.com/andresmejia3/hide/pkg/imageio"
	"github.com/andresmejia3/hide/pkg/raster"
	"github.com/andresmejia3/hide/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cImage string
	cPass  string
	cKey   string
	cMsg   string
	cFile  string
	cOut   string
	cRaw   bool

	cPattern patternFlags
)

var concealCmd = &cobra.Command{
	Use:   "conceal",
	Short: "Conceal a message, file or raw bytes in an image",
	Run: func(cmd *cobra.Command, args []string) {
		if cPass != "" && cKey != "" {
			log.Fatal().Msg("passphrase and key-path cannot both be provided")
		}
		if cMsg != "" && cFile != "" {
			log.Fatal().Msg("message and file flags cannot both be provided")
		}
		if cOut == "" {
			log.Fatal().Msg("output path is required")
		}

		img, err := imageio.Load(cImage)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load image")
		}

		pattern := cPattern.toPattern()

		out, err := conceal(img, pattern)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to conceal payload")
		}

		if err := imageio.Save(cOut, out); err != nil {
			log.Fatal().Err(err).Msg("failed to save output image")
		}

		log.Info().Str("output", cOut).Msg("payload concealed")
	},
}

func conceal(img *raster.Raster, pattern *stego.Pattern) (*raster.Raster, error) {
	switch {
	case cFile != "":
		content, err := os.ReadFile(cFile)
		if err != nil {
			return nil, err
		}
		return stego.EncodeFile(img, pattern, filepath.Base(cFile), maybeEncrypt(content))
	case cRaw:
		return stego.EncodeRaw(img, pattern, maybeEncrypt([]byte(cMsg)))
	default:
		return stego.EncodeText(img, pattern, string(maybeEncrypt([]byte(cMsg))))
	}
}

func init() {
	rootCmd.AddCommand(concealCmd)

	concealCmd.Flags().StringVarP(&cImage, "image-path", "i", "", "Path to image (required)")
	concealCmd.MarkFlagRequired("image-path")
	concealCmd.Flags().StringVarP(&cPass, "passphrase", "p", "", "Passphrase to encrypt the payload before concealing")
	concealCmd.Flags().StringVarP(&cKey, "key-path", "k", "", "Path to .pem file containing recipient's public key")
	concealCmd.Flags().StringVarP(&cMsg, "message", "m", "", "Message you want to conceal")
	concealCmd.Flags().StringVarP(&cFile, "file", "f", "", "Path to file to conceal (cannot be combined with --message)")
	concealCmd.Flags().StringVarP(&cOut, "output", "o", "", "Output path for the image (required)")
	concealCmd.Flags().BoolVar(&cRaw, "raw", false, "Treat --message as raw bytes instead of UTF-8 text")

	registerPatternFlags(concealCmd, &cPattern)
}

func maybeEncrypt(data []byte) []byte {
	switch {
	case cKey != "":
		out, err := stego.EncryptRSA(data, cKey)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to RSA-encrypt payload")
		}
		return out
	case cPass != "":
		out, err := stego.Encrypt(data, cPass)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to encrypt payload")
		}
		return out
	default:
		return data
	}
}
