package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSafeFilenamePart(t *testing.T) {
	cases := map[string]string{
		"":               "NA",
		" Leanne Graham": "Leanne_Graham",
		"a/b:c*d":        "a_b_c_d",
	}
	for in, want := range cases {
		if got := SafeFilenamePart(in); got != want {
			t.Fatalf("SafeFilenamePart(%q) = %q want %q", in, got, want)
		}
	}
}

func TestSafeFilenamePartKeepsRunesWhole(t *testing.T) {
	in := strings.Repeat("é", 45)
	got := SafeFilenamePart(in)
	if !utf8.ValidString(got) || utf8.RuneCountInString(got) != 40 {
		t.Fatalf("SafeFilenamePart cut a rune: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Romaguera-Crona", 8); got != "Romag..." {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("short", 8); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("abcdef", 2); got != "ab" {
		t.Fatalf("got %q", got)
	}
}

func TestFallback(t *testing.T) {
	if got := Fallback("  ", "-"); got != "-" {
		t.Fatalf("got %q", got)
	}
	if got := Fallback(" x ", "-"); got != "x" {
		t.Fatalf("got %q", got)
	}
}
