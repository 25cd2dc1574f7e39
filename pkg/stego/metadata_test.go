package stego

import (
	"testing"

	"github.com/andresmejia3/hide/pkg/raster"
)

func TestGetInfoReadsHeaderLength(t *testing.T) {
	img, _ := raster.New(60, 60, "RGBA")
	pattern := NewPattern()

	out, err := EncodeText(img, pattern, "info please")
	if err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}

	info, err := GetInfo(out, pattern)
	if err != nil {
		t.Fatalf("GetInfo failed: %v", err)
	}
	if !info.HasHeaderLength {
		t.Fatal("expected header to carry the encoded length")
	}
	if info.EncodedDataSize <= 0 {
		t.Errorf("expected a positive encoded data size, got %d", info.EncodedDataSize)
	}
	if info.MaxDataSize <= 0 {
		t.Error("expected a positive max data size")
	}
}

func TestGetInfoWithoutHeader(t *testing.T) {
	img, _ := raster.New(20, 20, "RGBA")
	pattern := NewPattern()
	pattern.HeaderEnabled = false

	info, err := GetInfo(img, pattern)
	if err != nil {
		t.Fatalf("GetInfo failed: %v", err)
	}
	if info.HasHeaderLength {
		t.Error("expected no header length when the header is disabled")
	}
}
