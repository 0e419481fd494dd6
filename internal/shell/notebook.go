package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/snonux/lingopop/internal/dictionary"
	"codeberg.org/snonux/lingopop/internal/review"
)

// notebook runs the notebook sub-loop until "back" or EOF
func (s *Shell) notebook(ctx context.Context) error {
	s.ctrl.OpenNotebook()
	defer s.ctrl.CloseNotebook()

	state := s.ctrl.Snapshot()
	if state.Native == nil || state.Target == nil {
		return errors.New("choose your languages first")
	}
	nb := s.ctrl.Notebook()
	story := review.NewStory(s.gateway, nb, state.Native.Name, state.Target.Name, s.logger)

	s.listNotebook()
	for {
		line, ok := s.readLine("notebook (list, cards, story, show n, speak n, remove w, back)> ")
		if !ok {
			return nil
		}

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		var err error
		switch strings.ToLower(strings.TrimPrefix(cmd, "/")) {
		case "", "list":
			s.listNotebook()
		case "cards":
			s.flashcards(ctx)
		case "story":
			s.story(ctx, story)
		case "show":
			err = s.showItem(arg)
		case "speak":
			err = s.speakItem(ctx, arg)
		case "remove", "rm":
			err = s.remove(ctx, arg)
		case "back", "done", "q", "quit":
			return nil
		default:
			err = fmt.Errorf("unknown notebook command %q", cmd)
		}
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

func (s *Shell) listNotebook() {
	items := s.ctrl.Notebook().Items()
	if len(items) == 0 {
		fmt.Fprintln(s.out, "Your notebook is empty. Save some words first!")
		return
	}
	fmt.Fprintf(s.out, "My Notebook (%d words):\n", len(items))
	for i, item := range items {
		fmt.Fprintf(s.out, "  %d. %s: %s\n", i+1, item.Word, truncate(item.Definition, 60))
	}
}

// itemAt resolves a 1-based list number or a word
func (s *Shell) itemAt(arg string) (dictionary.NotebookItem, error) {
	items := s.ctrl.Notebook().Items()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(items) {
			return dictionary.NotebookItem{}, fmt.Errorf("no notebook entry %d", n)
		}
		return items[n-1], nil
	}
	for _, item := range items {
		if item.Word == arg {
			return item, nil
		}
	}
	return dictionary.NotebookItem{}, fmt.Errorf("%q is not in your notebook", arg)
}

func (s *Shell) showItem(arg string) error {
	item, err := s.itemAt(arg)
	if err != nil {
		return err
	}
	renderEntry(s.out, &item.Result, fmt.Sprintf(" (saved %s)", item.Created().Format("2006-01-02")))
	return nil
}

func (s *Shell) speakItem(ctx context.Context, arg string) error {
	item, err := s.itemAt(arg)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Speaking: %s\n", item.Word)
	s.ctrl.Speak(ctx, item.Word)
	return nil
}

func (s *Shell) remove(ctx context.Context, arg string) error {
	nb := s.ctrl.Notebook()
	if !nb.RemoveAllowed() {
		return errors.New("removing words is disabled (enable notebook.allow_remove)")
	}
	item, err := s.itemAt(arg)
	if err != nil {
		return err
	}
	removed, err := nb.Remove(ctx, item.Word)
	if err != nil {
		return err
	}
	if removed {
		fmt.Fprintf(s.out, "Removed %q.\n", item.Word)
	}
	return nil
}

// flashcards runs the card review loop
func (s *Shell) flashcards(ctx context.Context) {
	cards := review.NewFlashcards(s.ctrl.Notebook().Items())
	if cards.Len() == 0 {
		fmt.Fprintln(s.out, "No cards yet. Save some words first!")
		return
	}

	for {
		s.renderCard(cards)
		line, ok := s.readLine("cards [f]lip [n]ext [p]rev [s]peak [q]uit> ")
		if !ok {
			return
		}
		switch strings.ToLower(line) {
		case "f", "flip", "":
			cards.Flip()
		case "n", "next":
			cards.Next()
		case "p", "prev":
			cards.Prev()
		case "s", "speak":
			if item, ok := cards.Current(); ok {
				s.ctrl.Speak(ctx, item.Word)
			}
		case "q", "quit", "back":
			return
		}
	}
}

func (s *Shell) renderCard(cards *review.Flashcards) {
	item, ok := cards.Current()
	if !ok {
		return
	}

	fmt.Fprintf(s.out, "\n[%d/%d] %s\n", cards.Index()+1, cards.Len(), item.Word)
	if !cards.Flipped() {
		if item.ImageURL != "" {
			fmt.Fprintln(s.out, "(has a picture)")
		}
		return
	}

	fmt.Fprintf(s.out, "  %s\n", item.Definition)
	if ex := item.FirstExample(); ex.Text != "" {
		fmt.Fprintf(s.out, "  \"%s\"\n", ex.Text)
		if ex.Translation != "" && ex.Translation != ex.Text {
			fmt.Fprintf(s.out, "  %s\n", ex.Translation)
		}
	}
	if item.FriendlyExplanation != "" {
		fmt.Fprintf(s.out, "  Tip: %s\n", item.FriendlyExplanation)
	}
}

func (s *Shell) story(ctx context.Context, story *review.Story) {
	if !story.Available() {
		fmt.Fprintf(s.out, "Save at least %d words to unlock Story Mode.\n", review.MinStoryWords)
		return
	}

	fmt.Fprintln(s.out, "Weaving a story from your words...")
	text, err := story.Generate(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "\n%s\n\n", text)
}
