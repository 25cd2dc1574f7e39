package stego

import "testing"

func TestResolveDefaultsChannelsToImage(t *testing.T) {
	p := NewPattern()
	resolved, err := p.Resolve("RGB")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Channels != "RGB" {
		t.Errorf("expected channels RGB, got %s", resolved.Channels)
	}
}

func TestResolveExplicitChannelsSubset(t *testing.T) {
	p := NewPattern()
	p.Channels = "rg"
	resolved, err := p.Resolve("RGBA")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Channels != "RG" {
		t.Errorf("expected channels RG, got %s", resolved.Channels)
	}
}

func TestResolveRejectsChannelsNotInImage(t *testing.T) {
	p := NewPattern()
	p.Channels = "X"
	if _, err := p.Resolve("RGBA"); err == nil {
		t.Error("expected an error for a channel letter absent from the image")
	} else if _, ok := err.(*InvalidChannelsError); !ok {
		t.Errorf("expected *InvalidChannelsError, got %T", err)
	}
}

func TestResolveRejectsEmptyImageChannels(t *testing.T) {
	p := NewPattern()
	if _, err := p.Resolve(""); err != ErrNoImageChannels {
		t.Errorf("expected ErrNoImageChannels, got %v", err)
	}
}

func TestResolveScalarInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Pattern)
	}{
		{"bit frequency too low", func(p *Pattern) { p.BitFrequency = 0 }},
		{"bit frequency too high", func(p *Pattern) { p.BitFrequency = 9 }},
		{"byte spacing zero", func(p *Pattern) { p.ByteSpacing = 0 }},
		{"negative offset", func(p *Pattern) { p.Offset = -1 }},
		{"correction factor zero", func(p *Pattern) { p.AdvancedRedundancyCorrectionFactor = 0 }},
		{"correction factor over one", func(p *Pattern) { p.AdvancedRedundancyCorrectionFactor = 1.5 }},
		{"repetition below one", func(p *Pattern) { p.RepetitiveRedundancy = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPattern()
			tt.mutate(p)
			if _, err := p.Resolve("RGBA"); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestResolveHeaderDiscoverableAutoPicksHiddenChannel(t *testing.T) {
	p := NewPattern()
	p.HeaderEnabled = true
	p.HeaderWriteDataSize = true
	p.HeaderWritePattern = true
	p.HeaderChannels = "auto"

	resolved, err := p.Resolve("RGBA")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.HeaderChannels != "A" {
		t.Errorf("expected header channel A when discoverable and present, got %s", resolved.HeaderChannels)
	}
	if resolved.HeaderPosition != "image_start" {
		t.Errorf("expected header position image_start, got %s", resolved.HeaderPosition)
	}
}

func TestResolveHeaderNotDiscoverableFallsBackToDataChannels(t *testing.T) {
	p := NewPattern()
	p.Channels = "RGB"
	p.HeaderEnabled = true
	p.HeaderWriteDataSize = true
	p.HeaderWritePattern = false
	p.HeaderPosition = "before_data"
	p.HeaderChannels = "auto"

	resolved, err := p.Resolve("RGBA")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.HeaderChannels != resolved.Channels {
		t.Errorf("expected header channels to fall back to data channels %s, got %s", resolved.Channels, resolved.HeaderChannels)
	}
	if resolved.HeaderPosition != "before_data" {
		t.Errorf("expected header position before_data, got %s", resolved.HeaderPosition)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	p := NewPattern()
	p.HeaderWritePattern = true

	first, err := p.Resolve("RGBA")
	if err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}

	second, err := first.ToPattern().Resolve("RGBA")
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}

	if *first != *second {
		t.Errorf("Resolve is not idempotent: %+v != %+v", first, second)
	}
}

func TestMaxDataSizeShrinksWithRedundancy(t *testing.T) {
	p := NewPattern()
	p.AdvancedRedundancy = "none"
	p.HeaderEnabled = false

	resolved, err := p.Resolve("RGBA")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	plain := resolved.MaxDataSize(1000)

	resolved.RepetitiveRedundancy = 4
	repeated := resolved.MaxDataSize(1000)

	if repeated*4 > plain+4 {
		t.Errorf("expected repetition to shrink capacity roughly 4x: plain=%d repeated=%d", plain, repeated)
	}
	if repeated == 0 {
		t.Error("expected nonzero capacity")
	}
}
