package dictionary

import (
	"strings"
	"time"

	"codeberg.org/snonux/lingopop/internal"
)

// Example is a sentence in the target language with its native translation
type Example struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// Result is the outcome of a single term lookup
type Result struct {
	Word                string    `json:"word"`
	Definition          string    `json:"definition"`
	Examples            []Example `json:"examples"`
	FriendlyExplanation string    `json:"friendlyExplanation"`
	ImageURL            string    `json:"imageUrl,omitempty"`
}

// Clone returns a deep copy so callers can't mutate shared examples
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	c.Examples = append([]Example(nil), r.Examples...)
	return &c
}

// FirstExample returns the first example or a zero value
func (r *Result) FirstExample() Example {
	if r == nil || len(r.Examples) == 0 {
		return Example{}
	}
	return r.Examples[0]
}

// NotebookItem is a saved result
type NotebookItem struct {
	Result
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// NewNotebookItem stamps a result for saving
func NewNotebookItem(r *Result, now time.Time) NotebookItem {
	return NotebookItem{
		Result:    *r.Clone(),
		ID:        internal.GenerateItemID(r.Word, now),
		Timestamp: now.UnixMilli(),
	}
}

// Created returns the creation instant
func (n NotebookItem) Created() time.Time {
	return time.UnixMilli(n.Timestamp)
}

// Role identifies the author of a chat message
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one turn of a tutor chat
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ExampleCount is the number of examples the UI expects per result
const ExampleCount = 2

// Normalize trims fields and pads examples up to ExampleCount so the
// display and the flashcard back always have something to show.
func Normalize(r *Result) {
	r.Word = strings.TrimSpace(r.Word)
	r.Definition = strings.TrimSpace(r.Definition)
	r.FriendlyExplanation = strings.TrimSpace(r.FriendlyExplanation)

	kept := r.Examples[:0]
	for _, ex := range r.Examples {
		ex.Text = strings.TrimSpace(ex.Text)
		ex.Translation = strings.TrimSpace(ex.Translation)
		if ex.Text == "" {
			continue
		}
		kept = append(kept, ex)
	}
	r.Examples = kept

	for len(r.Examples) < ExampleCount {
		r.Examples = append(r.Examples, Example{Text: r.Word})
	}
}
