package gateway

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/lingopop/internal/dictionary"
)

// Gateway is the set of AI capabilities the app depends on
type Gateway interface {
	// Lookup returns a structured dictionary result or a *LookupError
	Lookup(ctx context.Context, term, nativeLang, targetLang string) (*dictionary.Result, error)

	// GenerateConceptImage returns a data URI; ok is false on any failure
	GenerateConceptImage(ctx context.Context, term string) (dataURI string, ok bool)

	// SynthesizeSpeech returns raw mono 24kHz s16le PCM
	SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error)

	// GenerateStory returns a story in the target language followed by a translation
	GenerateStory(ctx context.Context, words []string, nativeLang, targetLang string) (string, error)

	// SendChatMessage returns the tutor reply; an empty reply is not an error
	SendChatMessage(ctx context.Context, history []dictionary.ChatMessage, message, contextTerm, nativeLang string) (string, error)

	// Name returns the backend name
	Name() string
}

// ErrLookup matches every *LookupError via errors.Is
var ErrLookup = errors.New("lookup failed")

// ErrNoAudio is returned when the backend produced no audio data
var ErrNoAudio = errors.New("no audio data returned")

// LookupError reports a failed or unparsable lookup
type LookupError struct {
	Term string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup of %q failed: %v", e.Term, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrLookup) true for any LookupError
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// Default model names for the Gemini backend
const (
	DefaultGeminiTextModel  = "gemini-2.5-flash"
	DefaultGeminiImageModel = "gemini-2.5-flash-image"
	DefaultGeminiTTSModel   = "gemini-2.5-flash-preview-tts"
)

// Default model names for the OpenAI backend
const (
	DefaultOpenAITextModel  = "gpt-4o-mini"
	DefaultOpenAIImageModel = "dall-e-3"
	DefaultOpenAITTSModel   = "gpt-4o-mini-tts"
)

// StoryFallback is returned when the backend answers a story request with nothing
const StoryFallback = "Could not generate story."

// dataURI builds an inline image reference
func dataURI(mimeType, b64 string) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + b64
}
