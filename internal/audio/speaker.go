package audio

import (
	"context"
	"fmt"

	"codeberg.org/snonux/lingopop/internal/logger"
)

// Synthesizer produces raw PCM speech
type Synthesizer interface {
	SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error)
}

// Speaker speaks text with the cache, the synthesizer and a player
type Speaker struct {
	synth  Synthesizer
	player Player
	cache  *Cache
	logger *logger.Logger
}

// NewSpeaker creates a speaker; cache may be nil
func NewSpeaker(synth Synthesizer, player Player, cache *Cache, log *logger.Logger) *Speaker {
	if log == nil {
		log = logger.NewNop()
	}
	return &Speaker{synth: synth, player: player, cache: cache, logger: log}
}

// Say speaks text with voice. Failures are logged, never returned.
func (s *Speaker) Say(ctx context.Context, text, voice string) {
	if err := s.speak(ctx, text, voice); err != nil {
		s.logger.Warn("Speech failed", "text", text, "voice", voice, "error", err)
	}
}

func (s *Speaker) speak(ctx context.Context, text, voice string) error {
	if err := ValidateSpeechText(text); err != nil {
		return err
	}

	pcm, err := s.load(ctx, text, voice)
	if err != nil {
		return err
	}

	return s.player.Play(ctx, DecodePCM(pcm))
}

func (s *Speaker) load(ctx context.Context, text, voice string) ([]byte, error) {
	if s.cache != nil {
		if pcm, ok := s.cache.Get(text, voice); ok {
			s.logger.Debug("Speech cache hit", "text", text, "voice", voice)
			return pcm, nil
		}
	}

	pcm, err := s.synth.SynthesizeSpeech(ctx, text, voice)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Put(text, voice, pcm); err != nil {
			s.logger.Debug("Failed to cache speech", "error", err)
		}
	}
	return pcm, nil
}
