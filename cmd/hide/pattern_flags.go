package main

import (
	"github.com/andresmejia3/hide/pkg/stego"
	"github.com/spf13/cobra"
)

// patternFlags holds the raw CLI representation of a stego.Pattern. Several
// subcommands (conceal, reveal, capacity, info, verify) share the same
// pattern surface, so the flag registration and the Pattern construction
// live here once instead of being duplicated per command.
type patternFlags struct {
	offset int

	channels     string
	bitFrequency int
	byteSpacing  int

	hashCheck string

	compression         string
	compressionStrength int

	advancedRedundancy                 string
	advancedRedundancyCorrectionFactor float64

	repetitiveRedundancy     int
	repetitiveRedundancyMode string

	headerEnabled       bool
	headerWriteDataSize bool
	headerWritePattern  bool
	headerChannels      string
	headerPosition      string
	headerBitFrequency  int
	headerByteSpacing   int
	headerRedundancy    int

	headerAdvancedRedundancy                 string
	headerAdvancedRedundancyCorrectionFactor float64
}

func registerPatternFlags(cmd *cobra.Command, f *patternFlags) {
	defaults := stego.NewPattern()

	cmd.Flags().IntVar(&f.offset, "offset", defaults.Offset, "Pixel offset before the data slot stream begins")
	cmd.Flags().StringVar(&f.channels, "channels", defaults.Channels, "Channel letters to write into, or \"auto\" for all image channels")
	cmd.Flags().IntVar(&f.bitFrequency, "bit-frequency", defaults.BitFrequency, "Bits written per visited channel (1-8)")
	cmd.Flags().IntVar(&f.byteSpacing, "byte-spacing", defaults.ByteSpacing, "Write-slot stride per channel letter")
	cmd.Flags().StringVar(&f.hashCheck, "hash-check", defaults.HashCheck, "Digest algorithm for integrity checking, or \"none\"")
	cmd.Flags().StringVar(&f.compression, "compression", defaults.Compression, "\"zlib\" or \"none\"")
	cmd.Flags().IntVar(&f.compressionStrength, "compression-strength", defaults.CompressionStrength, "zlib compression level (0-9)")
	cmd.Flags().StringVar(&f.advancedRedundancy, "redundancy", defaults.AdvancedRedundancy, "\"reed_solomon\" or \"none\"")
	cmd.Flags().Float64Var(&f.advancedRedundancyCorrectionFactor, "correction-factor", defaults.AdvancedRedundancyCorrectionFactor, "Reed-Solomon correction factor in (0, 1]")
	cmd.Flags().IntVar(&f.repetitiveRedundancy, "repeat", defaults.RepetitiveRedundancy, "Repetition factor for majority-vote redundancy")
	cmd.Flags().StringVar(&f.repetitiveRedundancyMode, "repeat-mode", defaults.RepetitiveRedundancyMode, "\"byte_per_byte\" or \"block\"")
	cmd.Flags().BoolVar(&f.headerEnabled, "header", defaults.HeaderEnabled, "Write a header carrying the payload's encoded length")
	cmd.Flags().BoolVar(&f.headerWriteDataSize, "header-data-size", defaults.HeaderWriteDataSize, "Header carries the encoded payload length")
	cmd.Flags().BoolVar(&f.headerWritePattern, "header-write-pattern", defaults.HeaderWritePattern, "Reserve the header's pattern-embedded flag bit")
	cmd.Flags().StringVar(&f.headerChannels, "header-channels", defaults.HeaderChannels, "Channel letters for the header, or \"auto\"")
	cmd.Flags().StringVar(&f.headerPosition, "header-position", defaults.HeaderPosition, "\"auto\", \"image_start\" or \"before_data\"")
	cmd.Flags().IntVar(&f.headerBitFrequency, "header-bit-frequency", defaults.HeaderBitFrequency, "Bits written per visited header channel")
	cmd.Flags().IntVar(&f.headerByteSpacing, "header-byte-spacing", defaults.HeaderByteSpacing, "Write-slot stride for the header")
	cmd.Flags().IntVar(&f.headerRedundancy, "header-repeat", defaults.HeaderRepetitiveRedundancy, "Repetition factor for the header")
	cmd.Flags().StringVar(&f.headerAdvancedRedundancy, "header-redundancy", defaults.HeaderAdvancedRedundancy, "\"reed_solomon\" or \"none\", for the header")
	cmd.Flags().Float64Var(&f.headerAdvancedRedundancyCorrectionFactor, "header-correction-factor", defaults.HeaderAdvancedRedundancyCorrectionFactor, "Reed-Solomon correction factor for the header, in (0, 1]")
}

func (f *patternFlags) toPattern() *stego.Pattern {
	p := stego.NewPattern()
	p.Offset = f.offset
	p.Channels = f.channels
	p.BitFrequency = f.bitFrequency
	p.ByteSpacing = f.byteSpacing
	p.HashCheck = f.hashCheck
	p.Compression = f.compression
	p.CompressionStrength = f.compressionStrength
	p.AdvancedRedundancy = f.advancedRedundancy
	p.AdvancedRedundancyCorrectionFactor = f.advancedRedundancyCorrectionFactor
	p.RepetitiveRedundancy = f.repetitiveRedundancy
	p.RepetitiveRedundancyMode = f.repetitiveRedundancyMode
	p.HeaderEnabled = f.headerEnabled
	p.HeaderWriteDataSize = f.headerWriteDataSize
	p.HeaderWritePattern = f.headerWritePattern
	p.HeaderChannels = f.headerChannels
	p.HeaderPosition = f.headerPosition
	p.HeaderBitFrequency = f.headerBitFrequency
	p.HeaderByteSpacing = f.headerByteSpacing
	p.HeaderRepetitiveRedundancy = f.headerRedundancy
	p.HeaderAdvancedRedundancy = f.headerAdvancedRedundancy
	p.HeaderAdvancedRedundancyCorrectionFactor = f.headerAdvancedRedundancyCorrectionFactor
	return p
}
