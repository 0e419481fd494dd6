package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/lingopop/internal/testutil"
)

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	mock := testutil.NewMockGateway()
	mock.LookupErrors["metro"] = &LookupError{Term: "metro", Err: errors.New("backend down")}

	b := NewBreaker(mock, BreakerConfig{Failures: 2, Timeout: time.Minute}, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := b.Lookup(ctx, "metro", "English", "Spanish")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLookup)
	}

	_, err := b.Lookup(ctx, "metro", "English", "Spanish")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLookup, "open circuit is still reported as a lookup failure")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, mock.CallCount("Lookup"), "open circuit must not reach the backend")
}

func TestBreakerCircuitsAreIndependent(t *testing.T) {
	mock := testutil.NewMockGateway()
	mock.NoImages = true

	b := NewBreaker(mock, BreakerConfig{Failures: 1, Timeout: time.Minute}, nil)
	ctx := context.Background()

	_, ok := b.GenerateConceptImage(ctx, "gato")
	assert.False(t, ok)
	_, ok = b.GenerateConceptImage(ctx, "gato")
	assert.False(t, ok)
	assert.Equal(t, 1, mock.CallCount("Image"), "image circuit should be open")

	result, err := b.Lookup(ctx, "gato", "English", "Spanish")
	require.NoError(t, err)
	assert.Equal(t, "gato", result.Word)

	pcm, err := b.SynthesizeSpeech(ctx, "gato", "Kore")
	require.NoError(t, err)
	assert.NotEmpty(t, pcm)
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	mock := testutil.NewMockGateway()
	mock.StoryErr = context.Canceled

	b := NewBreaker(mock, BreakerConfig{Failures: 1, Timeout: time.Minute}, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := b.GenerateStory(ctx, []string{"a", "b", "c"}, "English", "Spanish")
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, 3, mock.CallCount("Story"))
}

func TestBreakerIgnoresCancelledImages(t *testing.T) {
	mock := testutil.NewMockGateway()
	gate := mock.SetImageGate("gato")

	b := NewBreaker(mock, BreakerConfig{Failures: 1, Timeout: time.Minute}, nil)

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, ok := b.GenerateConceptImage(ctx, "gato")
		assert.False(t, ok)
	}
	assert.Equal(t, 3, mock.CallCount("Image"), "cancelled requests must not open the circuit")

	close(gate)
	uri, ok := b.GenerateConceptImage(context.Background(), "gato")
	assert.True(t, ok)
	assert.Equal(t, testutil.ImageURIFor("gato"), uri)
	assert.Equal(t, gobreaker.StateClosed, b.image.State())
}

func TestBreakerPassesThrough(t *testing.T) {
	mock := testutil.NewMockGateway()
	mock.ChatReply = "¡Claro!"

	b := NewBreaker(mock, DefaultBreakerConfig(), nil)
	assert.Equal(t, "mock", b.Name())

	reply, err := b.SendChatMessage(context.Background(), nil, "hi", "hola", "English")
	require.NoError(t, err)
	assert.Equal(t, "¡Claro!", reply)

	uri, ok := b.GenerateConceptImage(context.Background(), "hola")
	assert.True(t, ok)
	assert.Equal(t, testutil.ImageURIFor("hola"), uri)
}
