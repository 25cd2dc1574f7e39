package imageio

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/andresmejia3/hide/pkg/raster"
)

// decodePNG reads a PNG and flattens it into an RGBA raster, matching the
// teacher's own default of operating on four-channel NRGBA pixels.
func decodePNG(r io.Reader) (*raster.Raster, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, err
	}
	return rasterFromImage(img), nil
}

func encodePNG(w io.Writer, r *raster.Raster) error {
	return png.Encode(w, imageFromRaster(r))
}

// rasterFromImage converts any stdlib image.Image into an "RGBA"-channel
// Raster, one pixel per tuple, matching the channel order the bit codec and
// pattern resolver expect (spec section 3).
func rasterFromImage(img image.Image) *raster.Raster {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	r := &raster.Raster{
		Width:    width,
		Height:   height,
		Channels: "RGBA",
		Pix:      make([][]uint8, width*height),
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			r.Pix[i] = []uint8{c.R, c.G, c.B, c.A}
			i++
		}
	}
	return r
}

// imageFromRaster renders a Raster back to an NRGBA image.Image, expanding
// any narrower channel layout (e.g. "L", "RGB") by filling missing channels
// (alpha defaults to opaque, color defaults to the single luminance value).
func imageFromRaster(r *raster.Raster) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			px := r.Pix[y*r.Width+x]
			nc := pixelToNRGBA(px, r.Channels)
			out.SetNRGBA(x, y, nc)
		}
	}
	return out
}

func pixelToNRGBA(px []uint8, channels string) color.NRGBA {
	get := func(letter byte) (uint8, bool) {
		for i := 0; i < len(channels); i++ {
			if channels[i] == letter {
				return px[i], true
			}
		}
		return 0, false
	}

	if l, ok := get('L'); ok {
		return color.NRGBA{R: l, G: l, B: l, A: 255}
	}

	c := color.NRGBA{A: 255}
	if v, ok := get('R'); ok {
		c.R = v
	}
	if v, ok := get('G'); ok {
		c.G = v
	}
	if v, ok := get('B'); ok {
		c.B = v
	}
	if v, ok := get('A'); ok {
		c.A = v
	}
	return c
}
