package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"codeberg.org/snonux/lingopop/internal/logger"
)

// ErrNoPlayer is returned when no platform audio player is installed
var ErrNoPlayer = errors.New("no audio player found; install afplay, paplay, aplay, ffplay or sox")

// Player plays a decoded buffer
type Player interface {
	Play(ctx context.Context, buf *Buffer) error
}

// PlayerCommand is one candidate platform player
type PlayerCommand struct {
	Name string
	Args []string
}

// DefaultPlayerCommands returns the candidates for the current platform in order of preference
func DefaultPlayerCommands() []PlayerCommand {
	if runtime.GOOS == "darwin" {
		return []PlayerCommand{{Name: "afplay"}}
	}
	return []PlayerCommand{
		{Name: "paplay"},
		{Name: "aplay", Args: []string{"-q"}},
		{Name: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
		{Name: "play", Args: []string{"-q"}},
	}
}

// ExecPlayer writes a temporary WAV file and starts an external player on it.
// Play returns once the player has started; overlapping plays are allowed.
type ExecPlayer struct {
	Commands []PlayerCommand
	TempDir  string

	lookPath func(string) (string, error)
	logger   *logger.Logger
}

// NewExecPlayer creates a player using the platform defaults
func NewExecPlayer(log *logger.Logger) *ExecPlayer {
	if log == nil {
		log = logger.NewNop()
	}
	return &ExecPlayer{
		Commands: DefaultPlayerCommands(),
		lookPath: exec.LookPath,
		logger:   log,
	}
}

// findCommand returns the first installed candidate
func (p *ExecPlayer) findCommand() (PlayerCommand, string, error) {
	lookPath := p.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, c := range p.Commands {
		if path, err := lookPath(c.Name); err == nil {
			return c, path, nil
		}
	}
	return PlayerCommand{}, "", ErrNoPlayer
}

// Play starts playback in the background
func (p *ExecPlayer) Play(ctx context.Context, buf *Buffer) error {
	if buf == nil || len(buf.Samples) == 0 {
		return fmt.Errorf("nothing to play")
	}

	command, path, err := p.findCommand()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(p.TempDir, "lingopop-*.wav")
	if err != nil {
		return fmt.Errorf("failed to create temp audio file: %w", err)
	}
	if _, err := tmp.Write(buf.WAV()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp audio file: %w", err)
	}

	args := append(append([]string{}, command.Args...), tmp.Name())
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to start %s: %w", command.Name, err)
	}

	p.logger.Debug("Playback started", "player", command.Name, "duration", buf.Duration().String())

	go func() {
		if err := cmd.Wait(); err != nil {
			p.logger.Debug("Player exited with error", "player", command.Name, "error", err)
		}
		os.Remove(tmp.Name())
	}()

	return nil
}
