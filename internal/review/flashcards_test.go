package review

import (
	"fmt"
	"testing"
	"time"

	"codeberg.org/snonux/lingopop/internal/dictionary"
	"codeberg.org/snonux/lingopop/internal/testutil"
)

func makeItems(n int) []dictionary.NotebookItem {
	items := make([]dictionary.NotebookItem, n)
	for i := range items {
		items[i] = dictionary.NewNotebookItem(testutil.SampleResult(fmt.Sprintf("word%d", i)), time.UnixMilli(int64(i)))
	}
	return items
}

func TestNextCyclesBackToStart(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		t.Run(fmt.Sprintf("size %d", n), func(t *testing.T) {
			deck := NewFlashcards(makeItems(n))
			deck.Next()
			deck.Next()
			start := deck.Index()

			for i := 0; i < n; i++ {
				deck.Next()
			}

			if deck.Index() != start {
				t.Errorf("After %d Next calls index = %d, want %d", n, deck.Index(), start)
			}
		})
	}
}

func TestPrevFromZeroWraps(t *testing.T) {
	for _, n := range []int{1, 3, 7} {
		deck := NewFlashcards(makeItems(n))
		deck.Prev()
		if deck.Index() != n-1 {
			t.Errorf("size %d: Prev from 0 = %d, want %d", n, deck.Index(), n-1)
		}
	}
}

func TestFlipResetsOnNavigation(t *testing.T) {
	deck := NewFlashcards(makeItems(3))

	if deck.Flipped() {
		t.Fatal("New deck should show the front")
	}
	deck.Flip()
	if !deck.Flipped() {
		t.Fatal("Flip should show the back")
	}

	deck.Next()
	if deck.Flipped() {
		t.Error("Next should reset to the front")
	}

	deck.Flip()
	deck.Prev()
	if deck.Flipped() {
		t.Error("Prev should reset to the front")
	}

	deck.Flip()
	deck.Flip()
	if deck.Flipped() {
		t.Error("Double flip should show the front")
	}
}

func TestCurrent(t *testing.T) {
	items := makeItems(3)
	deck := NewFlashcards(items)

	item, ok := deck.Current()
	if !ok || item.Word != "word0" {
		t.Errorf("Current() = %q, %v; want word0", item.Word, ok)
	}

	deck.Prev()
	item, _ = deck.Current()
	if item.Word != "word2" {
		t.Errorf("Current() after Prev = %q, want word2", item.Word)
	}

	items[2].Word = "mutated"
	item, _ = deck.Current()
	if item.Word != "word2" {
		t.Error("Deck should hold its own copy of the items")
	}
}

func TestEmptyDeck(t *testing.T) {
	deck := NewFlashcards(nil)

	deck.Next()
	deck.Prev()
	deck.Flip()

	if _, ok := deck.Current(); ok {
		t.Error("Empty deck has no current card")
	}
	if deck.Index() != 0 || deck.Len() != 0 {
		t.Errorf("Empty deck index=%d len=%d", deck.Index(), deck.Len())
	}
}
