// Package imageio translates between on-disk image containers (PNG, BMP,
// PGM, PPM) and the pkg/raster data model the steganography core operates
// on. It is the "external collaborator" the core's spec keeps out of scope:
// no package in pkg/stego imports image, image/png or golang.org/x/image.
package imageio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andresmejia3/hide/pkg/raster"
)

// Load reads an image file and returns its pixels as a Raster. The
// container format is inferred from the file extension.
func Load(path string) (*raster.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format(path) {
	case "png":
		return decodePNG(f)
	case "bmp":
		return decodeBMP(f)
	case "pgm":
		return decodePGM(f)
	case "ppm":
		return decodePPM(f)
	default:
		return nil, fmt.Errorf("imageio: %w: %s", errUnsupportedFormat, path)
	}
}

// Save writes a Raster to path, encoding it in the container format implied
// by the file extension.
func Save(path string, r *raster.Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format(path) {
	case "png":
		return encodePNG(f, r)
	case "bmp":
		return encodeBMP(f, r)
	case "pgm":
		return encodePGM(f, r)
	case "ppm":
		return encodePPM(f, r)
	default:
		return fmt.Errorf("imageio: %w: %s", errUnsupportedFormat, path)
	}
}

func format(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return strings.TrimPrefix(ext, ".")
}
