package review

import (
	"sync"

	"codeberg.org/snonux/lingopop/internal/dictionary"
)

// Flashcards is a deck with a wrapping cursor and a flip flag
type Flashcards struct {
	mu      sync.Mutex
	items   []dictionary.NotebookItem
	index   int
	flipped bool
}

// NewFlashcards creates a deck positioned on the first item
func NewFlashcards(items []dictionary.NotebookItem) *Flashcards {
	return &Flashcards{items: append([]dictionary.NotebookItem(nil), items...)}
}

// Len returns the deck size
func (f *Flashcards) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Index returns the cursor position
func (f *Flashcards) Index() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.index
}

// Current returns the card under the cursor; ok is false for an empty deck
func (f *Flashcards) Current() (item dictionary.NotebookItem, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.items) == 0 {
		return dictionary.NotebookItem{}, false
	}
	return f.items[f.index], true
}

// Flipped reports whether the back is showing
func (f *Flashcards) Flipped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flipped
}

// Flip toggles between front and back
func (f *Flashcards) Flip() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flipped = !f.flipped
}

// Next moves to the following card, wrapping to the first
func (f *Flashcards) Next() {
	f.move(1)
}

// Prev moves to the previous card, wrapping to the last
func (f *Flashcards) Prev() {
	f.move(-1)
}

func (f *Flashcards) move(delta int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.flipped = false
	n := len(f.items)
	if n == 0 {
		return
	}
	f.index = ((f.index+delta)%n + n) % n
}
