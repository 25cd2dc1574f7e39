package stego

import (
	"strings"
)

// Pattern is the raw, declarative configuration object a caller builds before
// resolving it against a concrete image. Every option from the recognized
// keys table is represented as a plain, statically-typed field; "auto"/"all"
// sentinels are plain strings resolved by Resolve, per the tagged-variant
// design note: Resolve converts raw input into concrete decisions once, and
// all downstream code works only with a Resolved pattern.
type Pattern struct {
	Offset int

	// Channels is "", "all" or "auto" (meaning: every channel in the image),
	// or an explicit, case-insensitive subset of channel letters.
	Channels string

	BitFrequency int
	ByteSpacing  int

	// HashCheck is "" or "false"/"none" (disabled), or the name of a
	// supported digest algorithm (see hashRegistry in integrity.go).
	HashCheck string

	// Compression is "none" or "zlib".
	Compression         string
	CompressionStrength int

	// AdvancedRedundancy is "reed_solomon", "hamming" or "none".
	AdvancedRedundancy                 string
	AdvancedRedundancyCorrectionFactor float64

	RepetitiveRedundancy int
	// RepetitiveRedundancyMode is "byte_per_byte" or "block".
	RepetitiveRedundancyMode string

	HeaderEnabled       bool
	HeaderWriteDataSize bool
	HeaderWritePattern  bool

	// HeaderChannels is "auto" by default; see Resolve for the discoverability rule.
	HeaderChannels string
	// HeaderPosition is "auto", "image_start" or "before_data".
	HeaderPosition string

	HeaderBitFrequency int
	HeaderByteSpacing  int

	HeaderRepetitiveRedundancy              int
	HeaderAdvancedRedundancy                 string
	HeaderAdvancedRedundancyCorrectionFactor float64
}

// NewPattern returns a Pattern populated with the defaults from the options
// table: bit_frequency=1, byte_spacing=1, hash_check="sha256",
// compression="none", advanced_redundancy="reed_solomon" with a 0.1
// correction factor, header enabled and carrying only the data size.
func NewPattern() *Pattern {
	return &Pattern{
		Offset:                             0,
		Channels:                           "RGBA",
		BitFrequency:                       1,
		ByteSpacing:                        1,
		HashCheck:                          "sha256",
		Compression:                        "none",
		CompressionStrength:                6,
		AdvancedRedundancy:                 "reed_solomon",
		AdvancedRedundancyCorrectionFactor: 0.1,
		RepetitiveRedundancy:               1,
		RepetitiveRedundancyMode:           "byte_per_byte",
		HeaderEnabled:                      true,
		HeaderWriteDataSize:                true,
		HeaderWritePattern:                 false,
		HeaderChannels:                     "auto",
		HeaderPosition:                     "auto",
		HeaderBitFrequency:                 1,
		HeaderByteSpacing:                  1,
		HeaderRepetitiveRedundancy:         5,
		HeaderAdvancedRedundancy:           "reed_solomon",
		HeaderAdvancedRedundancyCorrectionFactor: 0.1,
	}
}

// Resolved is a Pattern with every auto/all/empty field materialized against
// a concrete image channel layout. header_channels and header_position are
// now concrete, and Channels is an uppercase subset of the image layout.
type Resolved struct {
	Offset int

	Channels     string
	BitFrequency int
	ByteSpacing  int

	HashCheck string // "" means disabled

	Compression         string
	CompressionStrength int

	AdvancedRedundancy                 string
	AdvancedRedundancyCorrectionFactor float64

	RepetitiveRedundancy     int
	RepetitiveRedundancyMode string

	HeaderEnabled       bool
	HeaderWriteDataSize bool
	HeaderWritePattern  bool

	HeaderChannels string
	HeaderPosition string // "image_start" or "before_data"

	HeaderBitFrequency int
	HeaderByteSpacing  int

	HeaderRepetitiveRedundancy              int
	HeaderAdvancedRedundancy                 string
	HeaderAdvancedRedundancyCorrectionFactor float64
}

// isAutoLike reports whether a raw channel selector means "all channels".
func isAutoLike(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "auto":
		return true
	default:
		return false
	}
}

func subsetOf(candidate, universe string) bool {
	for i := 0; i < len(candidate); i++ {
		if strings.IndexByte(universe, candidate[i]) < 0 {
			return false
		}
	}
	return true
}

// Resolve validates the raw pattern against the image's channel layout and
// produces a Resolved pattern, per spec section 4.5 (Pattern Resolver).
func (p *Pattern) Resolve(imageChannels string) (*Resolved, error) {
	imageChannels = strings.ToUpper(imageChannels)
	if imageChannels == "" {
		return nil, ErrNoImageChannels
	}

	if err := p.validateScalars(); err != nil {
		return nil, err
	}

	// Data channels.
	var channels string
	if isAutoLike(p.Channels) {
		channels = imageChannels
	} else {
		channels = strings.ToUpper(p.Channels)
	}
	if channels == "" || !subsetOf(channels, imageChannels) {
		return nil, &InvalidChannelsError{Channels: channels, ImageChannels: imageChannels, Initial: p.Channels}
	}

	// Header channels. "auto" picks the most-hidden single channel when the
	// header is discoverable: enabled, writing the data size, and either
	// writing the pattern flag or explicitly positioned at the image start.
	// The "positioned at image start" check reads the raw HeaderPosition
	// field as the caller set it (not yet auto-resolved) -- matching the
	// reference implementation.
	rawHeaderPosition := strings.ToLower(strings.TrimSpace(p.HeaderPosition))
	discoverable := p.HeaderEnabled && p.HeaderWriteDataSize && (p.HeaderWritePattern || rawHeaderPosition == "image_start")

	var headerChannels string
	switch {
	case strings.ToLower(strings.TrimSpace(p.HeaderChannels)) == "auto":
		if discoverable {
			switch {
			case strings.IndexByte(imageChannels, 'A') >= 0:
				headerChannels = "A"
			case strings.IndexByte(imageChannels, 'B') >= 0:
				headerChannels = "B"
			default:
				headerChannels = imageChannels[:1]
			}
		} else {
			headerChannels = channels
		}
	case isAutoLike(p.HeaderChannels):
		headerChannels = imageChannels
	default:
		headerChannels = strings.ToUpper(p.HeaderChannels)
	}
	if headerChannels == "" || !subsetOf(headerChannels, imageChannels) {
		return nil, &InvalidHeaderChannelsError{HeaderChannels: headerChannels, ImageChannels: imageChannels}
	}

	// Header position.
	var headerPosition string
	if rawHeaderPosition == "auto" {
		if p.HeaderEnabled && p.HeaderWriteDataSize && p.HeaderWritePattern {
			headerPosition = "image_start"
		} else {
			headerPosition = "before_data"
		}
	} else {
		headerPosition = rawHeaderPosition
	}

	hashCheck, err := normalizeHashCheck(p.HashCheck)
	if err != nil {
		return nil, err
	}

	compression, err := normalizeCompression(p.Compression)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Offset:                             p.Offset,
		Channels:                           channels,
		BitFrequency:                       p.BitFrequency,
		ByteSpacing:                        p.ByteSpacing,
		HashCheck:                          hashCheck,
		Compression:                        compression,
		CompressionStrength:                p.CompressionStrength,
		AdvancedRedundancy:                 strings.ToLower(p.AdvancedRedundancy),
		AdvancedRedundancyCorrectionFactor: p.AdvancedRedundancyCorrectionFactor,
		RepetitiveRedundancy:               p.RepetitiveRedundancy,
		RepetitiveRedundancyMode:           strings.ToLower(p.RepetitiveRedundancyMode),
		HeaderEnabled:                      p.HeaderEnabled,
		HeaderWriteDataSize:                p.HeaderWriteDataSize,
		HeaderWritePattern:                 p.HeaderWritePattern,
		HeaderChannels:                     headerChannels,
		HeaderPosition:                     headerPosition,
		HeaderBitFrequency:                 p.HeaderBitFrequency,
		HeaderByteSpacing:                  p.HeaderByteSpacing,
		HeaderRepetitiveRedundancy:         p.HeaderRepetitiveRedundancy,
		HeaderAdvancedRedundancy:           strings.ToLower(p.HeaderAdvancedRedundancy),
		HeaderAdvancedRedundancyCorrectionFactor: p.HeaderAdvancedRedundancyCorrectionFactor,
	}, nil
}

func (p *Pattern) validateScalars() error {
	if p.BitFrequency < 1 || p.BitFrequency > 8 {
		return &PatternInvariantError{Field: "bit_frequency", Reason: "must be in 1..8"}
	}
	if p.ByteSpacing < 1 {
		return &PatternInvariantError{Field: "byte_spacing", Reason: "must be >= 1"}
	}
	if p.Offset < 0 {
		return &PatternInvariantError{Field: "offset", Reason: "must be >= 0"}
	}
	if p.AdvancedRedundancyCorrectionFactor <= 0 || p.AdvancedRedundancyCorrectionFactor > 1 {
		return &PatternInvariantError{Field: "advanced_redundancy_correction_factor", Reason: "must be in (0, 1]"}
	}
	if p.HeaderAdvancedRedundancyCorrectionFactor <= 0 || p.HeaderAdvancedRedundancyCorrectionFactor > 1 {
		return &PatternInvariantError{Field: "header_advanced_redundancy_correction_factor", Reason: "must be in (0, 1]"}
	}
	if p.RepetitiveRedundancy < 1 {
		return &PatternInvariantError{Field: "repetitive_redundancy", Reason: "must be >= 1"}
	}
	switch strings.ToLower(p.RepetitiveRedundancyMode) {
	case "byte_per_byte", "block":
	default:
		return ErrInvalidRepetitiveRedundancyMode
	}
	switch strings.ToLower(p.AdvancedRedundancy) {
	case "reed_solomon", "rs", "hamming", "ham", "none", "no":
	default:
		return ErrInvalidAdvancedRedundancyMode
	}
	return nil
}

// ToPattern converts a Resolved pattern back into raw Pattern fields with the
// same explicit values. Used to check the resolver's idempotence: calling
// Resolve on the result of a previous Resolve (expressed as a Pattern again)
// must produce an identical Resolved value.
func (r *Resolved) ToPattern() *Pattern {
	hashCheck := r.HashCheck
	if hashCheck == "" {
		hashCheck = "none"
	}
	return &Pattern{
		Offset:                             r.Offset,
		Channels:                           r.Channels,
		BitFrequency:                       r.BitFrequency,
		ByteSpacing:                        r.ByteSpacing,
		HashCheck:                          hashCheck,
		Compression:                        r.Compression,
		CompressionStrength:                r.CompressionStrength,
		AdvancedRedundancy:                 r.AdvancedRedundancy,
		AdvancedRedundancyCorrectionFactor: r.AdvancedRedundancyCorrectionFactor,
		RepetitiveRedundancy:               r.RepetitiveRedundancy,
		RepetitiveRedundancyMode:           r.RepetitiveRedundancyMode,
		HeaderEnabled:                      r.HeaderEnabled,
		HeaderWriteDataSize:                r.HeaderWriteDataSize,
		HeaderWritePattern:                 r.HeaderWritePattern,
		HeaderChannels:                     r.HeaderChannels,
		HeaderPosition:                     r.HeaderPosition,
		HeaderBitFrequency:                 r.HeaderBitFrequency,
		HeaderByteSpacing:                  r.HeaderByteSpacing,
		HeaderRepetitiveRedundancy:         r.HeaderRepetitiveRedundancy,
		HeaderAdvancedRedundancy:           r.HeaderAdvancedRedundancy,
		HeaderAdvancedRedundancyCorrectionFactor: r.HeaderAdvancedRedundancyCorrectionFactor,
	}
}

// channelsIntersect reports whether two channel selections share any letter.
func channelsIntersect(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if strings.IndexByte(b, a[i]) >= 0 {
			return true
		}
	}
	return false
}

// headerPixelSpan returns how many pixels the header's own bit-codec stream
// needs to write headerWireLen bytes, given its channel count, bit frequency
// and byte_spacing.
func headerPixelSpan(r *Resolved, headerWireLen int) int {
	headerBitsPerPixel := len(r.HeaderChannels) * r.HeaderBitFrequency
	if headerBitsPerPixel <= 0 {
		return 0
	}
	totalBits := headerWireLen * 8 * r.HeaderByteSpacing
	return (totalBits + headerBitsPerPixel - 1) / headerBitsPerPixel
}

// MaxDataSize computes the maximum payload size (in bytes, after hashing and
// compression but before redundancy encoding) a resolved pattern can carry
// in a raster with the given pixel count, per spec section 4.5.
func (r *Resolved) MaxDataSize(pixelCount int) int {
	bitsPerPixel := len(r.Channels) * r.BitFrequency
	bitsPerByte := 8 * r.ByteSpacing

	usablePixels := pixelCount
	if r.HeaderEnabled && r.HeaderWriteDataSize && channelsIntersect(r.HeaderChannels, r.Channels) {
		if headerWireLen, err := headerEncodedLength(r); err == nil {
			usablePixels -= headerPixelSpan(r, headerWireLen)
		}
	}
	if usablePixels < 0 {
		usablePixels = 0
	}

	usableBytes := (usablePixels * bitsPerPixel) / bitsPerByte

	if r.AdvancedRedundancy == "reed_solomon" || r.AdvancedRedundancy == "rs" {
		usableBytes -= rsRedundantSymbolCount(usableBytes, r.AdvancedRedundancyCorrectionFactor)
	}
	if usableBytes < 0 {
		usableBytes = 0
	}

	if r.RepetitiveRedundancy > 1 {
		usableBytes /= r.RepetitiveRedundancy
	}

	return usableBytes
}
