package imageio

import (
	"bytes"
	"testing"

	"github.com/andresmejia3/hide/pkg/raster"
)

func TestPNGEncodeDecodeRoundTrip(t *testing.T) {
	r, _ := raster.New(5, 5, "RGBA")
	for i, px := range r.Pix {
		v := uint8(i * 7)
		px[0], px[1], px[2], px[3] = v, v+1, v+2, 255
	}

	var buf bytes.Buffer
	if err := encodePNG(&buf, r); err != nil {
		t.Fatalf("encodePNG failed: %v", err)
	}

	decoded, err := decodePNG(&buf)
	if err != nil {
		t.Fatalf("decodePNG failed: %v", err)
	}

	if decoded.Width != r.Width || decoded.Height != r.Height {
		t.Fatalf("dimension mismatch: got %dx%d, want %dx%d", decoded.Width, decoded.Height, r.Width, r.Height)
	}
	if !decoded.Equal(r) {
		t.Error("PNG round trip did not preserve pixel values")
	}
}

func TestPixelToNRGBAFillsMissingChannels(t *testing.T) {
	c := pixelToNRGBA([]uint8{200}, "L")
	if c.R != 200 || c.G != 200 || c.B != 200 || c.A != 255 {
		t.Errorf("expected luminance broadcast to RGB with opaque alpha, got %+v", c)
	}

	c = pixelToNRGBA([]uint8{10, 20, 30}, "RGB")
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Errorf("expected RGB with default opaque alpha, got %+v", c)
	}
}
