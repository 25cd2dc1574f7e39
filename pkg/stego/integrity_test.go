package stego

import "testing"

func TestNormalizeHashCheck(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"none", "", false},
		{"auto", "sha256", false},
		{"SHA256", "sha256", false},
		{"blake2b-256", "blake2b-256", false},
		{"sha3-256", "sha3-256", false},
		{"not-a-real-algorithm", "", true},
	}

	for _, tt := range tests {
		got, err := normalizeHashCheck(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("normalizeHashCheck(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("normalizeHashCheck(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestComputeHashEveryRegisteredAlgorithm(t *testing.T) {
	for name := range hashRegistry {
		digest, err := ComputeHash([]byte("payload"), name)
		if err != nil {
			t.Errorf("ComputeHash(%q) failed: %v", name, err)
			continue
		}
		if len(digest) == 0 {
			t.Errorf("ComputeHash(%q) returned an empty digest", name)
		}
	}
}

func TestComputeHashDisabledErrors(t *testing.T) {
	if _, err := ComputeHash([]byte("x"), ""); err != ErrShouldNotComputeHash {
		t.Errorf("expected ErrShouldNotComputeHash, got %v", err)
	}
}
