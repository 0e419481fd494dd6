package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/lingopop/internal/dictionary"
	"codeberg.org/snonux/lingopop/internal/logger"
)

// BreakerConfig tunes the circuit breaker
type BreakerConfig struct {
	// Failures is the number of consecutive failures that opens the circuit
	Failures uint32
	// Timeout is how long the circuit stays open before a trial request
	Timeout time.Duration
}

// DefaultBreakerConfig returns the default breaker settings
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Failures: 5,
		Timeout:  30 * time.Second,
	}
}

// errNoImage marks an absent image so the image breaker counts it
var errNoImage = errors.New("no image returned")

// Breaker wraps a Gateway with one circuit breaker per capability so that
// a failing image model does not block lookups.
type Breaker struct {
	next   Gateway
	text   *gobreaker.CircuitBreaker
	image  *gobreaker.CircuitBreaker
	speech *gobreaker.CircuitBreaker
	logger *logger.Logger
}

// NewBreaker creates a breaker decorator around next
func NewBreaker(next Gateway, config BreakerConfig, log *logger.Logger) *Breaker {
	if log == nil {
		log = logger.NewNop()
	}
	if config.Failures == 0 {
		config.Failures = DefaultBreakerConfig().Failures
	}

	b := &Breaker{next: next, logger: log}
	b.text = b.newCircuit(next.Name()+"-text", config)
	b.image = b.newCircuit(next.Name()+"-image", config)
	b.speech = b.newCircuit(next.Name()+"-speech", config)
	return b
}

func (b *Breaker) newCircuit(name string, config BreakerConfig) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.Failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// Name returns the wrapped backend name
func (b *Breaker) Name() string {
	return b.next.Name()
}

// Lookup runs through the text circuit
func (b *Breaker) Lookup(ctx context.Context, term, nativeLang, targetLang string) (*dictionary.Result, error) {
	out, err := b.text.Execute(func() (interface{}, error) {
		return b.next.Lookup(ctx, term, nativeLang, targetLang)
	})
	if err != nil {
		var le *LookupError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &LookupError{Term: term, Err: err}
	}
	return out.(*dictionary.Result), nil
}

// GenerateConceptImage runs through the image circuit. Absence counts as a
// failure unless ctx was cancelled.
func (b *Breaker) GenerateConceptImage(ctx context.Context, term string) (string, bool) {
	out, err := b.image.Execute(func() (interface{}, error) {
		uri, ok := b.next.GenerateConceptImage(ctx, term)
		if !ok {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			return "", errNoImage
		}
		return uri, nil
	})
	if err != nil {
		if !errors.Is(err, errNoImage) && !errors.Is(err, context.Canceled) {
			b.logger.Debug("Image request rejected", "term", term, "error", err)
		}
		return "", false
	}
	return out.(string), true
}

// SynthesizeSpeech runs through the speech circuit
func (b *Breaker) SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	out, err := b.speech.Execute(func() (interface{}, error) {
		return b.next.SynthesizeSpeech(ctx, text, voice)
	})
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

// GenerateStory runs through the text circuit
func (b *Breaker) GenerateStory(ctx context.Context, words []string, nativeLang, targetLang string) (string, error) {
	out, err := b.text.Execute(func() (interface{}, error) {
		return b.next.GenerateStory(ctx, words, nativeLang, targetLang)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// SendChatMessage runs through the text circuit
func (b *Breaker) SendChatMessage(ctx context.Context, history []dictionary.ChatMessage, message, contextTerm, nativeLang string) (string, error) {
	out, err := b.text.Execute(func() (interface{}, error) {
		return b.next.SendChatMessage(ctx, history, message, contextTerm, nativeLang)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
