package imageio

import (
	"io"

	"golang.org/x/image/bmp"

	"github.com/andresmejia3/hide/pkg/raster"
)

// BMP support is wired through golang.org/x/image/bmp rather than a
// hand-rolled reader, since the stdlib does not cover this container and
// the ecosystem package does.
func decodeBMP(r io.Reader) (*raster.Raster, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, err
	}
	return rasterFromImage(img), nil
}

func encodeBMP(w io.Writer, r *raster.Raster) error {
	return bmp.Encode(w, imageFromRaster(r))
}
