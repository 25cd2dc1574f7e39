package stego

import (
	"math"
	"testing"

	"github.com/andresmejia3/hide/pkg/raster"
)

func TestAnalyzeMetrics(t *testing.T) {
	// Case 1: Identical Images -> MSE 0, PSNR +Inf, all-black heatmap.
	img1, _ := raster.New(10, 10, "RGBA")

	result, err := Analyze(img1, img1.Clone())
	if err != nil {
		t.Fatalf("Analyze failed for identical images: %v", err)
	}
	if result.MSE != 0 {
		t.Errorf("Expected MSE 0 for identical images, got %f", result.MSE)
	}
	if !math.IsInf(result.PSNR, 1) {
		t.Errorf("Expected PSNR +Inf for identical images, got %f", result.PSNR)
	}
	for _, px := range result.Heatmap.Pix {
		if px[0] != 0 || px[1] != 0 || px[2] != 0 {
			t.Fatalf("expected an all-black heatmap, got %v", px)
		}
	}

	// Case 2: change 1 pixel in 1 channel (R) by 10, rest identical.
	// MSE = sum(diff^2) / (pixels * channels-excluding-alpha)
	// MSE = (10^2) / (100 * 3) = 100 / 300.
	img2 := img1.Clone()
	img2.Pix[0][0] = 10

	result, err = Analyze(img1, img2)
	if err != nil {
		t.Fatalf("Analyze failed for modified image: %v", err)
	}

	expectedMSE := 100.0 / 300.0
	if math.Abs(result.MSE-expectedMSE) > 0.0001 {
		t.Errorf("MSE calculation incorrect. Got %f, want %f", result.MSE, expectedMSE)
	}

	expectedPSNR := 10 * math.Log10((255*255)/expectedMSE)
	if math.Abs(result.PSNR-expectedPSNR) > 0.0001 {
		t.Errorf("PSNR calculation incorrect. Got %f, want %f", result.PSNR, expectedPSNR)
	}

	if result.Heatmap.Pix[0][0] == 0 && result.Heatmap.Pix[0][1] == 0 {
		t.Error("expected the heatmap to mark the modified pixel")
	}
}

func TestAnalyzeDimensionMismatch(t *testing.T) {
	a, _ := raster.New(2, 2, "RGBA")
	b, _ := raster.New(3, 3, "RGBA")
	if _, err := Analyze(a, b); err == nil {
		t.Error("expected an error for mismatched dimensions")
	}
}
