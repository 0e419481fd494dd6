// Package language holds the static catalog of supported languages and the
// speech voice used for each of them.
package language

import (
	"fmt"
	"strings"
)

// Language describes a supported language
type Language struct {
	Code      string
	Name      string
	Flag      string
	VoiceName string // Prebuilt TTS voice used when speaking this language
}

// String renders the language for menus
func (l Language) String() string {
	return fmt.Sprintf("%s %s", l.Flag, l.Name)
}

var supported = []Language{
	{Code: "en", Name: "English", Flag: "🇺🇸", VoiceName: "Puck"},
	{Code: "zh", Name: "Chinese (Mandarin)", Flag: "🇨🇳", VoiceName: "Zephyr"},
	{Code: "es", Name: "Spanish", Flag: "🇪🇸", VoiceName: "Kore"},
	{Code: "hi", Name: "Hindi", Flag: "🇮🇳", VoiceName: "Kore"},
	{Code: "ar", Name: "Arabic", Flag: "🇸🇦", VoiceName: "Fenrir"},
	{Code: "fr", Name: "French", Flag: "🇫🇷", VoiceName: "Charon"},
	{Code: "bn", Name: "Bengali", Flag: "🇧🇩", VoiceName: "Puck"},
	{Code: "pt", Name: "Portuguese", Flag: "🇧🇷", VoiceName: "Puck"},
	{Code: "ru", Name: "Russian", Flag: "🇷🇺", VoiceName: "Fenrir"},
	{Code: "ja", Name: "Japanese", Flag: "🇯🇵", VoiceName: "Kore"},
	{Code: "it", Name: "Italian", Flag: "🇮🇹", VoiceName: "Puck"},
}

// DefaultVoice is used when no language voice applies
const DefaultVoice = "Puck"

// All returns a copy of the catalog in display order
func All() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// ByCode finds a language by its code, case-insensitively
func ByCode(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range supported {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Resolve accepts either a code or a display name
func Resolve(s string) (Language, error) {
	if l, ok := ByCode(s); ok {
		return l, nil
	}
	s = strings.TrimSpace(s)
	for _, l := range supported {
		if strings.EqualFold(l.Name, s) {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("unsupported language: %q", s)
}
