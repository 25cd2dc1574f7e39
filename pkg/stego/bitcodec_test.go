package stego

import (
	"bytes"
	"testing"

	"github.com/andresmejia3/hide/pkg/raster"
)

func TestEncodeDecodeBitsRoundTrip(t *testing.T) {
	tests := []struct {
		name         string
		channels     string
		bitFrequency int
		offset       int
		spacing      int
	}{
		{"single bit, all channels", "RGBA", 1, 0, 1},
		{"two bits per slot", "RGB", 2, 0, 1},
		{"byte spacing of 2", "RGBA", 1, 0, 2},
		{"nonzero offset", "RG", 1, 3, 1},
		{"full byte per slot", "RGBA", 8, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, _ := raster.New(20, 20, "RGBA")
			data := []byte("the quick brown fox")

			if err := EncodeBits(img, data, tt.channels, tt.bitFrequency, tt.offset, tt.spacing); err != nil {
				t.Fatalf("EncodeBits failed: %v", err)
			}

			out, err := DecodeBits(img, len(data), tt.channels, tt.bitFrequency, tt.offset, tt.spacing)
			if err != nil {
				t.Fatalf("DecodeBits failed: %v", err)
			}

			if !bytes.Equal(data, out) {
				t.Errorf("round trip mismatch: got %q, want %q", out, data)
			}
		})
	}
}

func TestEncodeBitsCapacityExceeded(t *testing.T) {
	img, _ := raster.New(2, 2, "RGBA")
	data := make([]byte, 100)

	if err := EncodeBits(img, data, "RGBA", 1, 0, 1); err != ErrCapacityExceeded {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestEncodeBitsDoesNotTouchUnvisitedSlots(t *testing.T) {
	img, _ := raster.New(10, 10, "RGBA")
	for _, px := range img.Pix {
		px[0], px[1], px[2], px[3] = 0xAA, 0xAA, 0xAA, 0xAA
	}

	// Only channel G is written, with a single byte of data.
	if err := EncodeBits(img, []byte{0xFF}, "G", 8, 0, 1); err != nil {
		t.Fatalf("EncodeBits failed: %v", err)
	}

	for i, px := range img.Pix {
		if px[0] != 0xAA || px[2] != 0xAA || px[3] != 0xAA {
			t.Fatalf("pixel %d: unselected channel mutated: %v", i, px)
		}
	}
	// Pixels beyond the first should be untouched entirely.
	for i := 1; i < len(img.Pix); i++ {
		if img.Pix[i][1] != 0xAA {
			t.Fatalf("pixel %d: channel G mutated beyond data length", i)
		}
	}
}

func TestEncodeBitsRespectsByteSpacingPerChannel(t *testing.T) {
	img, _ := raster.New(30, 1, "RGBA")

	if err := EncodeBits(img, []byte{0xFF}, "R", 1, 0, 3); err != nil {
		t.Fatalf("EncodeBits failed: %v", err)
	}

	touchedAt := map[int]bool{}
	for i, px := range img.Pix {
		if px[0]&1 != 0 {
			touchedAt[i] = true
		}
	}
	for _, i := range []int{0, 3, 6, 9, 12, 15, 18, 21} {
		if !touchedAt[i] {
			t.Errorf("expected pixel %d (stride-eligible) to carry a bit", i)
		}
	}
	for _, i := range []int{1, 2, 4, 5} {
		if touchedAt[i] {
			t.Errorf("pixel %d should not have been written (not stride-eligible)", i)
		}
	}
}
