package id

import (
	"encoding/hex"
	"testing"
)

// Public ids double as path parameters and as the hex32-validated fields on
// request bodies, so the shape has to hold exactly.
func TestNewID32_Shape(t *testing.T) {
	for i := 0; i < 50; i++ {
		got := NewID32()
		if len(got) != 32 {
			t.Fatalf("len(%q) = %d, want 32", got, len(got))
		}
		for _, r := range got {
			if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
				t.Fatalf("id %q contains %q, want lowercase hex only", got, r)
			}
		}
		raw, err := hex.DecodeString(got)
		if err != nil {
			t.Fatalf("decode %q: %v", got, err)
		}
		if len(raw) != 16 {
			t.Fatalf("decoded %d bytes, want 16", len(raw))
		}
	}
}

func TestNewID32_NoCollisions(t *testing.T) {
	const n = 500
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		got := NewID32()
		if _, dup := seen[got]; dup {
			t.Fatalf("collision at mint %d: %q", i, got)
		}
		seen[got] = struct{}{}
	}
}
