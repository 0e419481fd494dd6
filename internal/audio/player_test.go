package audio

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/lingopop/internal/logger"
)

func TestExecPlayerFindCommand(t *testing.T) {
	installed := map[string]bool{"aplay": true, "play": true}
	p := &ExecPlayer{
		Commands: DefaultPlayerCommands(),
		lookPath: func(name string) (string, error) {
			if installed[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		},
	}

	if len(p.Commands) == 1 {
		t.Skip("single candidate platform")
	}

	cmd, path, err := p.findCommand()
	require.NoError(t, err)
	assert.Equal(t, "aplay", cmd.Name)
	assert.Equal(t, "/usr/bin/aplay", path)
}

func TestExecPlayerNoCommand(t *testing.T) {
	p := &ExecPlayer{
		Commands: DefaultPlayerCommands(),
		lookPath: func(string) (string, error) { return "", errors.New("not found") },
		logger:   logger.NewNop(),
	}

	err := p.Play(context.Background(), DecodePCM(make([]byte, 100)))
	assert.ErrorIs(t, err, ErrNoPlayer)
}

func TestExecPlayerRejectsEmptyBuffer(t *testing.T) {
	p := NewExecPlayer(nil)
	assert.Error(t, p.Play(context.Background(), nil))
	assert.Error(t, p.Play(context.Background(), &Buffer{}))
}

func TestExecPlayerStarts(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}

	p := NewExecPlayer(nil)
	p.Commands = []PlayerCommand{{Name: "true"}}
	p.TempDir = t.TempDir()

	err := p.Play(context.Background(), DecodePCM(make([]byte, 480)))
	assert.NoError(t, err)
}
