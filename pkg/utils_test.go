package pkg

import (
	"strings"
	"testing"
)

func TestRandString(t *testing.T) {
	got := RandString(8)
	if len(got) != 8 {
		t.Fatalf("len = %d, want 8", len(got))
	}
	for _, c := range got {
		if !strings.ContainsRune(codeAlphabet, c) {
			t.Fatalf("character %q outside the join-code alphabet", c)
		}
	}
}
