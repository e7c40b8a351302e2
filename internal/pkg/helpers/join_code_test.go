package helpers

import (
	"strings"
	"testing"
)

func TestGenerateJoinCodeShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateJoinCode()
		if err != nil {
			t.Fatalf("GenerateJoinCode: %v", err)
		}
		if len(code) != JoinCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), JoinCodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(joinCodeAlphabet, r) {
				t.Fatalf("code %q contains %q, outside the allowed alphabet", code, r)
			}
		}
	}
}

func TestGenerateJoinCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateJoinCode()
		if err != nil {
			t.Fatalf("GenerateJoinCode: %v", err)
		}
		seen[code] = true
	}
	// 50 draws from 36^6 possibilities colliding down to a handful would
	// mean the generator is broken.
	if len(seen) < 45 {
		t.Errorf("only %d distinct codes out of 50 draws", len(seen))
	}
}
