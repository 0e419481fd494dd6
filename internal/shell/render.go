package shell

import (
	"fmt"
	"io"
	"strings"

	"codeberg.org/snonux/lingopop/internal/dictionary"
)

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `Type any word or phrase to look it up.
  /quick [n]        list or search a quick phrase
  /show             show the current result again
  /save             save the current result to the notebook
  /speak [n|text]   say the word, example n, or any text
  /chat             ask the tutor about the current word
  /image [save f]   wait for the concept image, optionally save it
  /notebook         open the notebook (cards, story, remove)
  /lang [n t]       change native and target language
  /home             back to search
  /quit             leave
`)
}

func (s *Shell) printSearchHint() {
	fmt.Fprintln(s.out, "Type a word, phrase or sentence to look it up.")
	s.printQuickPhrases()
}

func (s *Shell) printQuickPhrases() {
	fmt.Fprintln(s.out, "Quick phrases (/quick n):")
	for i, phrase := range QuickPhrases {
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, phrase)
	}
}

func (s *Shell) renderResult() {
	state := s.ctrl.Snapshot()
	if state.Result == nil {
		fmt.Fprintln(s.out, "No result yet. Type a word to search.")
		return
	}

	saved := ""
	if s.ctrl.IsSaved() {
		saved = " [saved]"
	}
	renderEntry(s.out, state.Result, saved)

	if state.Result.ImageURL != "" {
		fmt.Fprintln(s.out, "Image: ready (/image)")
	} else {
		fmt.Fprintln(s.out, "Image: painting in the background (/image to wait)")
	}
	fmt.Fprintln(s.out, "/save  /speak  /speak 1  /chat  /notebook")
}

func renderEntry(out io.Writer, r *dictionary.Result, suffix string) {
	fmt.Fprintf(out, "\n== %s ==%s\n", r.Word, suffix)
	fmt.Fprintf(out, "%s\n", r.Definition)
	if len(r.Examples) > 0 {
		fmt.Fprintln(out, "Examples:")
		for i, ex := range r.Examples {
			fmt.Fprintf(out, "  %d. %s\n", i+1, ex.Text)
			if ex.Translation != "" && ex.Translation != ex.Text {
				fmt.Fprintf(out, "     %s\n", ex.Translation)
			}
		}
	}
	if r.FriendlyExplanation != "" {
		fmt.Fprintf(out, "Tip: %s\n", r.FriendlyExplanation)
	}
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
