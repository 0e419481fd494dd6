package review

import (
	"context"
	"errors"
	"sync"

	"codeberg.org/snonux/lingopop/internal/gateway"
	"codeberg.org/snonux/lingopop/internal/logger"
)

// MinStoryWords is the notebook size needed before a story can be generated
const MinStoryWords = 3

// StoryFailureMessage replaces the story when generation fails
const StoryFailureMessage = "Failed to weave a tale. Try again!"

// ErrTooFewWords is returned when the notebook is too small for a story
var ErrTooFewWords = errors.New("save at least 3 words to generate a story")

// WordSource supplies the saved words
type WordSource interface {
	Words() []string
	Len() int
}

// Story generates short stories from the saved words
type Story struct {
	mu         sync.Mutex
	text       string
	generating bool

	gateway    gateway.Gateway
	words      WordSource
	nativeLang string
	targetLang string
	logger     *logger.Logger
}

// NewStory creates a story generator for the language pair
func NewStory(gw gateway.Gateway, words WordSource, nativeLang, targetLang string, log *logger.Logger) *Story {
	if log == nil {
		log = logger.NewNop()
	}
	return &Story{
		gateway:    gw,
		words:      words,
		nativeLang: nativeLang,
		targetLang: targetLang,
		logger:     log,
	}
}

// Available reports whether enough words are saved
func (s *Story) Available() bool {
	return s.words.Len() >= MinStoryWords
}

// Text returns the last generated story
func (s *Story) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Generating reports whether a request is in flight
func (s *Story) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

// Generate replaces the story with a new one. Below MinStoryWords it does
// nothing and returns ErrTooFewWords. A backend failure stores
// StoryFailureMessage and is not returned.
func (s *Story) Generate(ctx context.Context) (string, error) {
	if !s.Available() {
		return "", ErrTooFewWords
	}

	s.mu.Lock()
	s.text = ""
	s.generating = true
	s.mu.Unlock()

	text, err := s.gateway.GenerateStory(ctx, s.words.Words(), s.nativeLang, s.targetLang)
	if err != nil {
		s.logger.Warn("Story generation failed", "error", err)
		text = StoryFailureMessage
	}

	s.mu.Lock()
	s.text = text
	s.generating = false
	s.mu.Unlock()

	return text, nil
}
