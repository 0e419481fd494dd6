package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"codeberg.org/snonux/lingopop/internal/anki"
	"codeberg.org/snonux/lingopop/internal/gateway"
	"codeberg.org/snonux/lingopop/internal/language"
	"codeberg.org/snonux/lingopop/internal/logger"
	"codeberg.org/snonux/lingopop/internal/session"
)

// QuickPhrases are offered as one-tap searches in the search view
var QuickPhrases = []string{"Hello", "Delicious food", "Where is the subway?", "I love you"}

// Shell runs the interactive loop
type Shell struct {
	ctrl    *session.Controller
	gateway gateway.Gateway
	in      *bufio.Scanner
	out     io.Writer
	logger  *logger.Logger
}

// New creates a shell reading from in and writing to out
func New(ctrl *session.Controller, gw gateway.Gateway, in io.Reader, out io.Writer, log *logger.Logger) *Shell {
	if log == nil {
		log = logger.NewNop()
	}
	return &Shell{
		ctrl:    ctrl,
		gateway: gw,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  log,
	}
}

// AlertPrinter reports controller alerts on a writer
type AlertPrinter struct {
	Out io.Writer
}

// Alert prints message
func (a AlertPrinter) Alert(message string) {
	fmt.Fprintf(a.Out, "(!) %s\n", message)
}

// Run reads commands until EOF, /quit or ctx is cancelled. Background
// work is stopped before it returns.
func (s *Shell) Run(ctx context.Context) error {
	defer s.ctrl.Close()

	fmt.Fprintln(s.out, "Welcome to LingoPop! Type /help for commands.")

	if s.ctrl.Snapshot().View == session.ViewOnboarding {
		if !s.onboard() {
			return nil
		}
	}
	s.printSearchHint()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, ok := s.readLine(s.prompt())
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		quit, err := s.dispatch(ctx, line)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		if quit {
			fmt.Fprintln(s.out, "Bye!")
			return nil
		}
	}
}

func (s *Shell) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) prompt() string {
	state := s.ctrl.Snapshot()
	if state.Native == nil || state.Target == nil {
		return "> "
	}
	return fmt.Sprintf("%s->%s > ", state.Native.Code, state.Target.Code)
}

// onboard asks for both languages; false means input ended
func (s *Shell) onboard() bool {
	fmt.Fprintln(s.out, "Choose your languages:")
	for i, l := range language.All() {
		fmt.Fprintf(s.out, "  %2d. %s (%s)\n", i+1, l, l.Code)
	}

	native, ok := s.askLanguage("I speak: ")
	if !ok {
		return false
	}
	target, ok := s.askLanguage("I want to learn: ")
	if !ok {
		return false
	}

	if err := s.ctrl.SelectLanguages(native, target); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return false
	}
	fmt.Fprintf(s.out, "Learning %s from %s.\n", target, native)
	return true
}

func (s *Shell) askLanguage(prompt string) (language.Language, bool) {
	for {
		line, ok := s.readLine(prompt)
		if !ok {
			return language.Language{}, false
		}
		l, err := resolveLanguage(line)
		if err == nil {
			return l, true
		}
		fmt.Fprintf(s.out, "%v. Enter a number, code or name.\n", err)
	}
}

// resolveLanguage accepts a catalog number, a code or a name
func resolveLanguage(input string) (language.Language, error) {
	if n, err := strconv.Atoi(input); err == nil {
		all := language.All()
		if n < 1 || n > len(all) {
			return language.Language{}, fmt.Errorf("no language number %d", n)
		}
		return all[n-1], nil
	}
	return language.Resolve(input)
}

func (s *Shell) dispatch(ctx context.Context, line string) (bool, error) {
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, "/") {
		return false, s.search(ctx, line)
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "q", "quit", "exit":
		return true, nil
	case "h", "help":
		s.printHelp()
	case "quick":
		return false, s.quick(ctx, arg)
	case "show":
		s.renderResult()
	case "save":
		return false, s.save(ctx)
	case "speak":
		return false, s.speak(ctx, arg)
	case "chat":
		return false, s.chat(ctx)
	case "image":
		return false, s.image(arg)
	case "notebook", "nb":
		return false, s.notebook(ctx)
	case "home":
		s.ctrl.GoHome()
		s.printSearchHint()
	case "lang":
		return false, s.changeLanguages(arg)
	default:
		return false, fmt.Errorf("unknown command /%s (try /help)", cmd)
	}
	return false, nil
}

func (s *Shell) search(ctx context.Context, term string) error {
	fmt.Fprintf(s.out, "Looking up %q...\n", term)
	if err := s.ctrl.Search(ctx, term); err != nil {
		if errors.Is(err, session.ErrNoLanguages) {
			return err
		}
		// the notifier already told the user
		s.logger.Debug("Search failed", "term", term, "error", err)
		return nil
	}
	s.renderResult()
	return nil
}

func (s *Shell) quick(ctx context.Context, arg string) error {
	if arg == "" {
		s.printQuickPhrases()
		return nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(QuickPhrases) {
		return fmt.Errorf("pick a quick phrase between 1 and %d", len(QuickPhrases))
	}
	return s.search(ctx, QuickPhrases[n-1])
}

func (s *Shell) save(ctx context.Context) error {
	item, added, err := s.ctrl.SaveCurrent(ctx)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(s.out, "Saved %q to your notebook.\n", item.Word)
	} else {
		fmt.Fprintf(s.out, "%q is already in your notebook.\n", item.Word)
	}
	return nil
}

// speak says the headword, an example by number, or the given text
func (s *Shell) speak(ctx context.Context, arg string) error {
	text := arg
	if n, err := strconv.Atoi(arg); err == nil || arg == "" {
		result := s.ctrl.Snapshot().Result
		if result == nil {
			return session.ErrNoResult
		}
		switch {
		case arg == "":
			text = result.Word
		case n >= 1 && n <= len(result.Examples):
			text = result.Examples[n-1].Text
		default:
			return fmt.Errorf("no example %d", n)
		}
	}

	fmt.Fprintf(s.out, "Speaking: %s\n", text)
	s.ctrl.Speak(ctx, text)
	return nil
}

func (s *Shell) chat(ctx context.Context) error {
	c, err := s.ctrl.OpenChat()
	if err != nil {
		return err
	}
	defer s.ctrl.CloseChat()

	fmt.Fprintf(s.out, "Chatting about %q. Type /done to go back.\n", c.Term())
	for _, msg := range c.Messages() {
		fmt.Fprintf(s.out, "tutor> %s\n", msg.Text)
	}

	for {
		line, ok := s.readLine("you> ")
		if !ok || line == "/done" || line == "/back" {
			return nil
		}
		if reply := c.Send(ctx, line); reply != "" {
			fmt.Fprintf(s.out, "tutor> %s\n", reply)
		}
	}
}

// image waits for the concept image and optionally writes it to a file
func (s *Shell) image(arg string) error {
	s.ctrl.WaitEnrichment()

	result := s.ctrl.Snapshot().Result
	if result == nil {
		return session.ErrNoResult
	}
	if result.ImageURL == "" {
		fmt.Fprintln(s.out, "No image available for this word.")
		return nil
	}

	mime, data, err := anki.ParseDataURI(result.ImageURL)
	if err != nil {
		return err
	}

	path, ok := strings.CutPrefix(arg, "save")
	path = strings.TrimSpace(path)
	if !ok || path == "" {
		fmt.Fprintf(s.out, "Image ready (%s, %d KB). Use /image save <file> to keep it.\n", mime, (len(data)+1023)/1024)
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	fmt.Fprintf(s.out, "Image saved to %s\n", path)
	return nil
}

func (s *Shell) changeLanguages(arg string) error {
	if arg == "" {
		s.onboard()
		return nil
	}

	fields := strings.Fields(arg)
	if len(fields) != 2 {
		return fmt.Errorf("usage: /lang <native> <target>")
	}
	native, err := resolveLanguage(fields[0])
	if err != nil {
		return err
	}
	target, err := resolveLanguage(fields[1])
	if err != nil {
		return err
	}
	if err := s.ctrl.SelectLanguages(native, target); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Learning %s from %s.\n", target, native)
	return nil
}
