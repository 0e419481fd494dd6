package internal

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateItemID(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	id := GenerateItemID("hola", now)
	if !strings.HasPrefix(id, "1700000000123_") {
		t.Errorf("Expected ID to start with timestamp, got %s", id)
	}

	parts := strings.Split(id, "_")
	if len(parts) != 2 || len(parts[1]) != 8 {
		t.Errorf("Expected format millis_hash8, got %s", id)
	}

	if GenerateItemID("hola", now) != id {
		t.Error("Expected same word and time to produce the same ID")
	}
	if GenerateItemID("adiós", now) == id {
		t.Error("Expected different words to produce different IDs")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"Where is the subway?", "Where_is_the_subway_"},
		{"ябълка", "ябълка"},
		{"日本語", "日本語"},
		{"a/b\\c", "a_b_c"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
