package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Native", flags.Native, "en"},
		{"Target", flags.Target, ""},
		{"DeckName", flags.DeckName, "LingoPop"},
		{"Backend", flags.Backend, "gemini"},
		{"Storage", flags.Storage, "file"},
		{"LogLevel", flags.LogLevel, "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	boolTests := []struct {
		name  string
		value bool
	}{
		{"SaveLookup", flags.SaveLookup},
		{"SkipImages", flags.SkipImages},
		{"NoAudio", flags.NoAudio},
		{"Archive", flags.Archive},
		{"ListModels", flags.ListModels},
		{"AllowRemove", flags.AllowRemove},
		{"GenerateAnki", flags.GenerateAnki},
		{"AnkiCSV", flags.AnkiCSV},
		{"Fallback", flags.Fallback},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value {
				t.Errorf("%s should default to false", tt.name)
			}
		})
	}
}
