package stego

import (
	"github.com/andresmejia3/hide/pkg/raster"
)

// Info summarizes a resolved pattern's effective placement for a given
// image, plus, when the header is enabled and carries a length, the
// post-pipeline payload size read back from the image.
type Info struct {
	Channels             string
	HeaderChannels       string
	HeaderPosition       string
	BitFrequency         int
	HashCheck            string
	Compression          string
	AdvancedRedundancy   string
	RepetitiveRedundancy int
	MaxDataSize          int

	HasHeaderLength bool
	EncodedDataSize int
}

// GetInfo resolves pattern against img and, if the pattern's header carries
// the encoded payload length, reads it back without attempting to decode or
// verify the payload itself.
func GetInfo(img *raster.Raster, pattern *Pattern) (*Info, error) {
	resolved, err := pattern.Resolve(img.Channels)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Channels:             resolved.Channels,
		HeaderChannels:       resolved.HeaderChannels,
		HeaderPosition:       resolved.HeaderPosition,
		BitFrequency:         resolved.BitFrequency,
		HashCheck:            resolved.HashCheck,
		Compression:          resolved.Compression,
		AdvancedRedundancy:   resolved.AdvancedRedundancy,
		RepetitiveRedundancy: resolved.RepetitiveRedundancy,
		MaxDataSize:          resolved.MaxDataSize(img.PixelCount()),
	}

	if resolved.HeaderEnabled && resolved.HeaderWriteDataSize {
		payloadLen, _, err := decodeHeader(img, resolved)
		if err != nil {
			return info, err
		}
		info.HasHeaderLength = true
		info.EncodedDataSize = payloadLen
	}

	return info, nil
}
