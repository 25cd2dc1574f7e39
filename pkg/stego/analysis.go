package stego

import (
	"fmt"
	"math"

	"github.com/andresmejia3/hide/pkg/raster"
)

// AnalysisResult holds metrics about the comparison between two rasters.
type AnalysisResult struct {
	MSE  float64 // Mean Squared Error
	PSNR float64 // Peak Signal-to-Noise Ratio (dB)

	// Heatmap is a per-pixel "RGB" raster: black where unchanged, a
	// green-to-red gradient scaled by the magnitude of the change
	// elsewhere, matching the teacher's original visualization.
	Heatmap *raster.Raster
}

// Analyze compares an original raster with a stego raster of identical
// dimensions, reporting MSE/PSNR over their shared channels and rendering a
// difference heatmap.
func Analyze(original, stego *raster.Raster) (*AnalysisResult, error) {
	if original.Width != stego.Width || original.Height != stego.Height {
		return nil, fmt.Errorf("stego: image dimensions do not match: %dx%d vs %dx%d",
			original.Width, original.Height, stego.Width, stego.Height)
	}

	heatmap, err := raster.New(original.Width, original.Height, "RGB")
	if err != nil {
		return nil, err
	}

	var sumSquaredError float64
	var channelCount int

	for i, px := range original.Pix {
		other := stego.Pix[i]

		var diffSum float64
		modified := false

		for c := 0; c < len(px) && c < len(other); c++ {
			letter := original.Channels[c]
			if letter == 'A' {
				continue // alpha excluded from MSE, matching the teacher
			}
			channelCount++

			diff := float64(px[c]) - float64(other[c])
			sumSquaredError += diff * diff
			diffSum += math.Abs(diff)

			if px[c] != other[c] {
				modified = true
			}
		}

		if modified {
			intensity := uint8(math.Min(255, diffSum*50))
			heatmap.Pix[i] = []uint8{intensity, 255 - intensity, 0}
		} else {
			heatmap.Pix[i] = []uint8{0, 0, 0}
		}
	}

	if channelCount == 0 {
		channelCount = 1
	}
	mse := sumSquaredError / float64(channelCount)

	var psnr float64
	if mse == 0 {
		psnr = math.Inf(1)
	} else {
		psnr = 10 * math.Log10((255*255)/mse)
	}

	return &AnalysisResult{MSE: mse, PSNR: psnr, Heatmap: heatmap}, nil
}
