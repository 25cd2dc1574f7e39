package raster

import "testing"

func TestNewZeroesPixels(t *testing.T) {
	r, err := New(3, 2, "RGB")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if r.PixelCount() != 6 {
		t.Errorf("expected 6 pixels, got %d", r.PixelCount())
	}
	for _, px := range r.Pix {
		for _, v := range px {
			if v != 0 {
				t.Fatalf("expected zeroed pixel, got %v", px)
			}
		}
	}
}

func TestNewRejectsEmptyChannels(t *testing.T) {
	if _, err := New(1, 1, ""); err == nil {
		t.Error("expected an error for an empty channel layout")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r, _ := New(2, 2, "RGBA")
	clone := r.Clone()
	clone.Pix[0][0] = 200

	if r.Pix[0][0] == 200 {
		t.Error("Clone shares underlying storage with the original")
	}
	if !r.Equal(r.Clone()) {
		t.Error("a raster should equal its own clone")
	}
	if r.Equal(clone) {
		t.Error("mutated clone should no longer equal the original")
	}
}

func TestHasChannel(t *testing.T) {
	r, _ := New(1, 1, "RGBA")
	if !r.HasChannel('g') {
		t.Error("expected case-insensitive channel lookup to find G")
	}
	if r.HasChannel('L') {
		t.Error("did not expect channel L in an RGBA raster")
	}
}
