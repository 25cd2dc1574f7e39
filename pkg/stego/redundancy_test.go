package stego

import (
	"bytes"
	"testing"
)

func TestRepeatBytePerByteAndMajorityVoteRoundTrip(t *testing.T) {
	data := []byte("hello redundancy")
	repeated := repeatBytePerByte(data, 5)
	if len(repeated) != len(data)*5 {
		t.Fatalf("unexpected repeated length: %d", len(repeated))
	}

	reconstructed := majorityVoteReconstruct(repeated, 5)
	if !bytes.Equal(reconstructed, data) {
		t.Errorf("reconstruction mismatch: got %q, want %q", reconstructed, data)
	}
}

func TestMajorityVoteToleratesMinorityCorruption(t *testing.T) {
	data := []byte{0x42}
	repeated := repeatBytePerByte(data, 5)
	// Corrupt 2 of 5 copies; majority of 3 should still win.
	repeated[1] = 0x00
	repeated[3] = 0x00

	reconstructed := majorityVoteReconstruct(repeated, 5)
	if !bytes.Equal(reconstructed, data) {
		t.Errorf("expected majority vote to recover original byte, got %v", reconstructed)
	}
}

func TestBlockModeTransposeRoundTrip(t *testing.T) {
	data := []byte("abcdef")
	k := 3
	blockForm := repeatBlock(data, k)

	transposed := transposeBlockToBytePerByte(blockForm, k)
	reconstructed := majorityVoteReconstruct(transposed, k)

	if !bytes.Equal(reconstructed, data) {
		t.Errorf("block transpose round trip mismatch: got %q, want %q", reconstructed, data)
	}
}

func TestApplyAndReconstructRedundancyRoundTrip(t *testing.T) {
	params := RedundancyParams{
		RepetitiveRedundancy:               1,
		RepetitiveRedundancyMode:           "byte_per_byte",
		AdvancedRedundancy:                 "reed_solomon",
		AdvancedRedundancyCorrectionFactor: 0.1,
	}

	data := []byte("reed-solomon protected payload, long enough to span multiple chunks perhaps")

	encoded, err := ApplyRedundancy(data, params)
	if err != nil {
		t.Fatalf("ApplyRedundancy failed: %v", err)
	}
	if len(encoded) <= len(data) {
		t.Error("expected reed-solomon encoding to grow the payload")
	}

	decoded, err := ReconstructRedundancy(encoded, params)
	if err != nil {
		t.Fatalf("ReconstructRedundancy failed: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("round trip mismatch: got %q, want %q", decoded, data)
	}
}

func TestReedSolomonCorrectsInjectedErrors(t *testing.T) {
	data := []byte("correct me if I am wrong about these bytes")

	encoded, err := rsEncode(data, 0.3)
	if err != nil {
		t.Fatalf("rsEncode failed: %v", err)
	}

	// Flip a couple of bytes to simulate channel noise.
	encoded[2] ^= 0xFF
	encoded[5] ^= 0x01

	decoded, err := rsDecode(encoded, 0.3)
	if err != nil {
		t.Fatalf("rsDecode failed to correct injected errors: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("corrected payload mismatch: got %q, want %q", decoded, data)
	}
}

func TestRSChunkDataSizeMatchesFormula(t *testing.T) {
	got := rsChunkDataSize(0.1)
	want := 212 // floor(255 / 1.2)
	if got != want {
		t.Errorf("rsChunkDataSize(0.1) = %d, want %d", got, want)
	}
}

func TestRSRedundantSymbolCountNonNegative(t *testing.T) {
	if n := rsRedundantSymbolCount(1000, 0.1); n <= 0 {
		t.Errorf("expected positive redundant symbol estimate, got %d", n)
	}
	if n := rsRedundantSymbolCount(0, 0.1); n != 0 {
		t.Errorf("expected zero redundant symbols for empty input, got %d", n)
	}
}
