package audio

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxSpeechLength is the longest input accepted by the speech backends
const MaxSpeechLength = 4096

// ValidateSpeechText rejects text that cannot be spoken
func ValidateSpeechText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if n := utf8.RuneCountInString(text); n > MaxSpeechLength {
		return fmt.Errorf("text too long: %d characters (max %d)", n, MaxSpeechLength)
	}

	return nil
}
