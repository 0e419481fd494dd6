package audio

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/lingopop/internal/testutil"
)

type recordingPlayer struct {
	mu      sync.Mutex
	buffers []*Buffer
	err     error
}

func (p *recordingPlayer) Play(ctx context.Context, buf *Buffer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.buffers = append(p.buffers, buf)
	return nil
}

func TestSpeakerSay(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.Speech = testutil.GeneratePCM(240)
	player := &recordingPlayer{}

	s := NewSpeaker(gw, player, nil, nil)
	s.Say(context.Background(), "hola", "Kore")

	require.Len(t, player.buffers, 1)
	assert.Len(t, player.buffers[0].Samples, 240)
	assert.Equal(t, []string{"TTS: hola (voice=Kore)"}, gw.Calls())
}

func TestSpeakerUsesCache(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)

	gw := testutil.NewMockGateway()
	player := &recordingPlayer{}
	s := NewSpeaker(gw, player, cache, nil)

	s.Say(context.Background(), "metro", "Puck")
	s.Say(context.Background(), "metro", "Puck")

	assert.Equal(t, 1, gw.CallCount("TTS"))
	assert.Len(t, player.buffers, 2)
}

func TestSpeakerFailuresAreSilent(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.SpeechErr = errors.New("quota exceeded")
	player := &recordingPlayer{}
	s := NewSpeaker(gw, player, nil, nil)

	assert.NotPanics(t, func() { s.Say(context.Background(), "hola", "Kore") })
	assert.Empty(t, player.buffers)

	err := s.speak(context.Background(), "hola", "Kore")
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestSpeakerSkipsBlankText(t *testing.T) {
	gw := testutil.NewMockGateway()
	s := NewSpeaker(gw, &recordingPlayer{}, nil, nil)

	err := s.speak(context.Background(), "  ", "Kore")
	assert.Error(t, err)
	assert.Empty(t, gw.Calls())
}

func TestSpeakerPlayerError(t *testing.T) {
	gw := testutil.NewMockGateway()
	s := NewSpeaker(gw, &recordingPlayer{err: ErrNoPlayer}, nil, nil)

	err := s.speak(context.Background(), "hola", "Kore")
	assert.ErrorIs(t, err, ErrNoPlayer)
}
