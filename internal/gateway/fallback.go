package gateway

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/lingopop/internal/dictionary"
	"codeberg.org/snonux/lingopop/internal/logger"
)

// Fallback tries the primary backend first and the secondary on failure
type Fallback struct {
	primary   Gateway
	secondary Gateway
	logger    *logger.Logger
}

// NewFallback creates a gateway that falls back to secondary if primary fails
func NewFallback(primary, secondary Gateway, log *logger.Logger) *Fallback {
	if log == nil {
		log = logger.NewNop()
	}
	return &Fallback{primary: primary, secondary: secondary, logger: log}
}

// Name returns both backend names
func (f *Fallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", f.primary.Name(), f.secondary.Name())
}

func (f *Fallback) logFallback(op string, err error) {
	f.logger.Warn("Primary backend failed, falling back",
		"operation", op,
		"primary", f.primary.Name(),
		"secondary", f.secondary.Name(),
		"error", err)
}

// Lookup tries primary then secondary
func (f *Fallback) Lookup(ctx context.Context, term, nativeLang, targetLang string) (*dictionary.Result, error) {
	result, err := f.primary.Lookup(ctx, term, nativeLang, targetLang)
	if err == nil || errors.Is(err, context.Canceled) {
		return result, err
	}
	f.logFallback("lookup", err)
	return f.secondary.Lookup(ctx, term, nativeLang, targetLang)
}

// GenerateConceptImage falls back when the primary returns no image
func (f *Fallback) GenerateConceptImage(ctx context.Context, term string) (string, bool) {
	if uri, ok := f.primary.GenerateConceptImage(ctx, term); ok {
		return uri, true
	}
	f.logger.Debug("Primary backend returned no image, falling back", "term", term)
	return f.secondary.GenerateConceptImage(ctx, term)
}

// SynthesizeSpeech tries primary then secondary
func (f *Fallback) SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	data, err := f.primary.SynthesizeSpeech(ctx, text, voice)
	if err == nil || errors.Is(err, context.Canceled) {
		return data, err
	}
	f.logFallback("speech", err)
	return f.secondary.SynthesizeSpeech(ctx, text, voice)
}

// GenerateStory tries primary then secondary
func (f *Fallback) GenerateStory(ctx context.Context, words []string, nativeLang, targetLang string) (string, error) {
	story, err := f.primary.GenerateStory(ctx, words, nativeLang, targetLang)
	if err == nil || errors.Is(err, context.Canceled) {
		return story, err
	}
	f.logFallback("story", err)
	return f.secondary.GenerateStory(ctx, words, nativeLang, targetLang)
}

// SendChatMessage tries primary then secondary
func (f *Fallback) SendChatMessage(ctx context.Context, history []dictionary.ChatMessage, message, contextTerm, nativeLang string) (string, error) {
	reply, err := f.primary.SendChatMessage(ctx, history, message, contextTerm, nativeLang)
	if err == nil || errors.Is(err, context.Canceled) {
		return reply, err
	}
	f.logFallback("chat", err)
	return f.secondary.SendChatMessage(ctx, history, message, contextTerm, nativeLang)
}
