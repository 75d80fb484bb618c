package validation

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"valid", "reader@example.com", true},
		{"padded", "  reader@example.com ", true},
		{"no at", "reader.example.com", false},
		{"no tld", "reader@example", false},
		{"inner space", "read er@example.com", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateEmail(tt.email); got != tt.want {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail(" Reader@Example.COM "); got != "reader@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestTrimAndLimit(t *testing.T) {
	if got := TrimAndLimit("  héllo wörld  ", 5); got != "héllo" {
		t.Errorf("TrimAndLimit = %q", got)
	}
	if got := TrimAndLimit(" keep ", 0); got != "keep" {
		t.Errorf("TrimAndLimit without limit = %q", got)
	}
}

func TestText(t *testing.T) {
	if _, ok := Text("   \n\t "); ok {
		t.Error("Whitespace-only text should be empty")
	}
	got, ok := Text(strings.Repeat("a", MaxTextLength+10))
	if !ok || len(got) != MaxTextLength {
		t.Errorf("Text should be capped at %d, got %d", MaxTextLength, len(got))
	}
}

func TestName(t *testing.T) {
	if got := Name("   ", "Reader"); got != "Reader" {
		t.Errorf("Name fallback = %q", got)
	}
	if got := Name(" Kay ", "Reader"); got != "Kay" {
		t.Errorf("Name = %q", got)
	}
}

func TestItemID(t *testing.T) {
	valid := []string{"season-1", "book_2", "vol.3", "A1"}
	invalid := []string{"", "has space", "semi;colon", "slash/path", strings.Repeat("x", 129)}

	for _, s := range valid {
		if !ItemID(s) {
			t.Errorf("ItemID(%q) should be valid", s)
		}
	}
	for _, s := range invalid {
		if ItemID(s) {
			t.Errorf("ItemID(%q) should be invalid", s)
		}
	}
}
