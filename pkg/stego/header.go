package stego

import (
	"encoding/binary"

	"github.com/andresmejia3/hide/pkg/raster"
)

// headerSize is the plaintext header's length in bytes: a 4-byte big-endian
// payload length plus a 1-byte flag (spec section 4.6).
const headerSize = 5

const headerFlagPatternEmbedded byte = 1 << 0

// buildHeader packs the post-pipeline payload length and the
// pattern-embedded flag into the fixed 5-byte plaintext header.
func buildHeader(payloadLen int, r *Resolved) []byte {
	h := make([]byte, headerSize)
	binary.BigEndian.PutUint32(h[0:4], uint32(payloadLen))
	if r.HeaderWritePattern {
		h[4] |= headerFlagPatternEmbedded
	}
	return h
}

// parseHeader unpacks the 5-byte plaintext header.
func parseHeader(h []byte) (payloadLen int, patternEmbedded bool) {
	payloadLen = int(binary.BigEndian.Uint32(h[0:4]))
	patternEmbedded = h[4]&headerFlagPatternEmbedded != 0
	return
}

// headerEncodedLength returns how many bytes the header occupies on the wire
// once run through its own redundancy pipeline, so the decoder can carve it
// off the data channel/slot stream deterministically (the header pipeline
// never compresses or hashes, spec section 4.6).
func headerEncodedLength(r *Resolved) (int, error) {
	params := headerParamsFromResolved(r)
	encoded, err := ApplyRedundancy(make([]byte, headerSize), params)
	if err != nil {
		return 0, err
	}
	return len(encoded), nil
}

// encodeHeader runs the 5-byte plaintext header through its own redundancy
// pipeline (no compression, no hash) and writes it at its resolved position
// using its own channel/bit_frequency/byte_spacing, starting at pixel 0 for
// "image_start" or at the pattern's offset for "before_data".
func encodeHeader(r *raster.Raster, resolved *Resolved, payloadLen int) error {
	plain := buildHeader(payloadLen, resolved)

	encoded, err := ApplyRedundancy(plain, headerParamsFromResolved(resolved))
	if err != nil {
		return err
	}

	return EncodeBits(r, encoded, resolved.HeaderChannels, resolved.HeaderBitFrequency, headerStartOffset(resolved), resolved.HeaderByteSpacing)
}

// decodeHeader reads and reconstructs the header at its resolved position.
func decodeHeader(r *raster.Raster, resolved *Resolved) (payloadLen int, patternEmbedded bool, err error) {
	wireLen, err := headerEncodedLength(resolved)
	if err != nil {
		return 0, false, err
	}

	encoded, err := DecodeBits(r, wireLen, resolved.HeaderChannels, resolved.HeaderBitFrequency, headerStartOffset(resolved), resolved.HeaderByteSpacing)
	if err != nil {
		return 0, false, err
	}

	plain, err := ReconstructRedundancy(encoded, headerParamsFromResolved(resolved))
	if err != nil {
		return 0, false, err
	}
	if len(plain) < headerSize {
		return 0, false, ErrRSDecodeFailed
	}

	payloadLen, patternEmbedded = parseHeader(plain[:headerSize])
	return payloadLen, patternEmbedded, nil
}

// headerStartOffset returns the pixel offset the header's own bit-codec
// stream starts from: pixel 0 for "image_start" (the header leads the whole
// image, ahead of the pattern's own offset), or the pattern's offset for
// "before_data" (the header sits immediately ahead of where data begins).
func headerStartOffset(resolved *Resolved) int {
	if resolved.HeaderPosition == "image_start" {
		return 0
	}
	return resolved.Offset
}

// dataOffset returns the bit-codec pixel offset the data pipeline should
// start from. Whenever the header's channel selection shares any channel
// with the data's, the two pipelines walk overlapping slots, so data must
// start only after the header's own pixel span ends -- under either
// header_position, not only "image_start" (spec section 8.7).
func dataOffset(resolved *Resolved, headerWireLen int) int {
	if !resolved.HeaderEnabled || !resolved.HeaderWriteDataSize {
		return resolved.Offset
	}
	if !channelsIntersect(resolved.HeaderChannels, resolved.Channels) {
		return resolved.Offset
	}

	dataStart := headerStartOffset(resolved) + headerPixelSpan(resolved, headerWireLen)
	if dataStart > resolved.Offset {
		return dataStart
	}
	return resolved.Offset
}
