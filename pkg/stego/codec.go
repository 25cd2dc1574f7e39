// Package stego implements the codec core: a declarative Pattern, resolved
// against a pixel raster, drives a bit codec, redundancy pipeline,
// compression layer, integrity layer and header framer to hide and recover
// an arbitrary payload in pixel LSBs. The codec itself has no file I/O and
// no flag parsing; pkg/imageio and cmd/hide are its callers. The optional
// encryption helpers in encryption.go are the exception: they read and
// write PEM key files.
package stego

import (
	"github.com/andresmejia3/hide/pkg/raster"
)

// Data-type tags discriminate the plaintext payload's shape, written as the
// first byte before the integrity/compression/redundancy pipeline runs
// (spec section 4.7).
const (
	dataTypeText byte = 0
	dataTypeFile byte = 1
	dataTypeRaw  byte = 2
)

const fileNameFieldSize = 64

// EncodeText hides a UTF-8 string in img under pattern, returning a new
// raster (img is not mutated).
func EncodeText(img *raster.Raster, pattern *Pattern, text string) (*raster.Raster, error) {
	return Encode(img, pattern, append([]byte{dataTypeText}, []byte(text)...))
}

// EncodeFile hides a named file's bytes in img under pattern.
func EncodeFile(img *raster.Raster, pattern *Pattern, name string, content []byte) (*raster.Raster, error) {
	nameField := make([]byte, fileNameFieldSize)
	copy(nameField, []byte(name))

	payload := make([]byte, 0, 1+fileNameFieldSize+len(content))
	payload = append(payload, dataTypeFile)
	payload = append(payload, nameField...)
	payload = append(payload, content...)

	return Encode(img, pattern, payload)
}

// EncodeRaw hides arbitrary bytes (no interpretation) in img under pattern.
func EncodeRaw(img *raster.Raster, pattern *Pattern, data []byte) (*raster.Raster, error) {
	return Encode(img, pattern, append([]byte{dataTypeRaw}, data...))
}

// DecodedPayload is the result of Decode: a data-type tag plus, depending on
// the tag, a text string, a file name and content, or raw bytes.
type DecodedPayload struct {
	Type     byte
	Text     string
	FileName string
	Content  []byte
	Raw      []byte
}

// Encode assembles the full pipeline over a tagged plaintext buffer (hash
// append, then compress, then redundancy-encode, then bit-pack; the header
// is built from the post-pipeline length and written at its own position),
// per spec section 4.7.
func Encode(img *raster.Raster, pattern *Pattern, tagged []byte) (*raster.Raster, error) {
	if img == nil {
		return nil, ErrNoImageLoaded
	}
	if pattern == nil {
		return nil, ErrNoPatternLoaded
	}

	resolved, err := pattern.Resolve(img.Channels)
	if err != nil {
		return nil, err
	}

	plain := tagged
	if resolved.HashCheck != "" {
		digest, err := ComputeHash(tagged, resolved.HashCheck)
		if err != nil {
			return nil, err
		}
		plain = append(append([]byte{}, tagged...), digest...)
	}

	compressed, err := Compress(plain, normalizeCompressionOrDefault(resolved.Compression), resolved.CompressionStrength)
	if err != nil {
		return nil, err
	}

	encoded, err := ApplyRedundancy(compressed, dataParamsFromResolved(resolved))
	if err != nil {
		return nil, err
	}

	out := img.Clone()

	maxSize := resolved.MaxDataSize(out.PixelCount())
	if len(compressed) > maxSize {
		return nil, &DataSizeTooLargeError{DataSize: len(compressed), MaxDataSize: maxSize}
	}

	var headerWireLen int
	if resolved.HeaderEnabled && resolved.HeaderWriteDataSize {
		headerWireLen, err = headerEncodedLength(resolved)
		if err != nil {
			return nil, err
		}
		if err := encodeHeader(out, resolved, len(encoded)); err != nil {
			return nil, err
		}
	}

	offset := dataOffset(resolved, headerWireLen)
	if err := EncodeBits(out, encoded, resolved.Channels, resolved.BitFrequency, offset, resolved.ByteSpacing); err != nil {
		return nil, err
	}

	return out, nil
}

// Decode reverses Encode, returning the tagged payload interpreted into a
// DecodedPayload. If the pattern did not write a header carrying the
// payload's encoded length, fallbackEncodedLen must be supplied by the
// caller (e.g. from a pattern embedded out of band).
func Decode(img *raster.Raster, pattern *Pattern, fallbackEncodedLen int) (*DecodedPayload, error) {
	if img == nil {
		return nil, ErrNoImageLoaded
	}
	if pattern == nil {
		return nil, ErrNoPatternLoaded
	}

	resolved, err := pattern.Resolve(img.Channels)
	if err != nil {
		return nil, err
	}

	var headerWireLen int
	encodedLen := fallbackEncodedLen

	if resolved.HeaderEnabled && resolved.HeaderWriteDataSize {
		headerWireLen, err = headerEncodedLength(resolved)
		if err != nil {
			return nil, err
		}
		payloadLen, _, err := decodeHeader(img, resolved)
		if err != nil {
			return nil, err
		}
		encodedLen = payloadLen
	}

	offset := dataOffset(resolved, headerWireLen)

	encoded, err := DecodeBits(img, encodedLen, resolved.Channels, resolved.BitFrequency, offset, resolved.ByteSpacing)
	if err != nil {
		return nil, err
	}

	compressed, err := ReconstructRedundancy(encoded, dataParamsFromResolved(resolved))
	if err != nil {
		return nil, err
	}

	plain, err := Decompress(compressed, normalizeCompressionOrDefault(resolved.Compression))
	if err != nil {
		return nil, err
	}

	tagged := plain
	if resolved.HashCheck != "" {
		size, err := HashSize(resolved.HashCheck)
		if err != nil {
			return nil, err
		}
		if len(plain) < size {
			return nil, ErrDataIntegrityCheckFailed
		}
		tagged = plain[:len(plain)-size]
		wantDigest := plain[len(plain)-size:]

		gotDigest, err := ComputeHash(tagged, resolved.HashCheck)
		if err != nil {
			return nil, err
		}
		if !bytesEqual(gotDigest, wantDigest) {
			return nil, ErrDataIntegrityCheckFailed
		}
	}

	return parsePayload(tagged)
}

func parsePayload(tagged []byte) (*DecodedPayload, error) {
	if len(tagged) == 0 {
		return nil, ErrInvalidDataTypeEncounteredDecoding
	}

	switch tagged[0] {
	case dataTypeText:
		return &DecodedPayload{Type: dataTypeText, Text: string(tagged[1:])}, nil
	case dataTypeFile:
		if len(tagged) < 1+fileNameFieldSize {
			return nil, ErrInvalidDataTypeEncounteredDecoding
		}
		nameField := tagged[1 : 1+fileNameFieldSize]
		name := trimNullPadding(nameField)
		content := tagged[1+fileNameFieldSize:]
		return &DecodedPayload{Type: dataTypeFile, FileName: name, Content: content}, nil
	case dataTypeRaw:
		return &DecodedPayload{Type: dataTypeRaw, Raw: tagged[1:]}, nil
	default:
		return nil, ErrInvalidDataTypeEncounteredDecoding
	}
}

func trimNullPadding(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func normalizeCompressionOrDefault(mode string) string {
	normalized, err := normalizeCompression(mode)
	if err != nil {
		return "none"
	}
	return normalized
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
