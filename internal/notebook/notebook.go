package notebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"codeberg.org/snonux/lingopop/internal/dictionary"
	"codeberg.org/snonux/lingopop/internal/logger"
	"codeberg.org/snonux/lingopop/internal/store"
)

// StorageKey is the key the notebook is persisted under
const StorageKey = "lingopop_notebook"

// ErrRemoveDisabled is returned by Remove unless removal was enabled
var ErrRemoveDisabled = errors.New("removing notebook items is disabled")

// Notebook is the in-memory notebook backed by a store
type Notebook struct {
	mu          sync.RWMutex
	items       []dictionary.NotebookItem
	store       store.Store
	allowRemove bool
	now         func() time.Time
	logger      *logger.Logger
}

// Option configures a notebook
type Option func(*Notebook)

// WithAllowRemove enables Remove
func WithAllowRemove(allow bool) Option {
	return func(n *Notebook) {
		n.allowRemove = allow
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) Option {
	return func(n *Notebook) {
		n.logger = log
	}
}

// WithClock overrides the time source used for ids and timestamps
func WithClock(now func() time.Time) Option {
	return func(n *Notebook) {
		n.now = now
	}
}

// New creates an empty notebook; call Load to read persisted items
func New(s store.Store, opts ...Option) *Notebook {
	n := &Notebook{
		store:  s,
		now:    time.Now,
		logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Load replaces the in-memory items with the persisted ones. Missing,
// unreadable or corrupt storage yields an empty notebook; only a cancelled
// ctx is returned as an error.
func (n *Notebook) Load(ctx context.Context) error {
	data, err := n.store.Get(ctx, StorageKey)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = nil

	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		n.logger.Warn("Starting with an empty notebook, storage unreadable", "error", err)
		return nil
	}

	items, err := Unmarshal(data)
	if err != nil {
		n.logger.Warn("Ignoring corrupt notebook", "error", err)
		return nil
	}

	n.items = items
	n.logger.Debug("Notebook loaded", "items", len(items))
	return nil
}

// Save prepends result unless its headword is already saved. It returns the
// stored item and whether it was added.
func (n *Notebook) Save(ctx context.Context, result *dictionary.Result) (dictionary.NotebookItem, bool, error) {
	if result == nil {
		return dictionary.NotebookItem{}, false, fmt.Errorf("nothing to save")
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if i := n.indexOf(result.Word); i >= 0 {
		return n.items[i], false, nil
	}

	item := dictionary.NewNotebookItem(result, n.now())
	items := make([]dictionary.NotebookItem, 0, len(n.items)+1)
	items = append(items, item)
	items = append(items, n.items...)

	if err := n.persist(ctx, items); err != nil {
		return dictionary.NotebookItem{}, false, err
	}

	n.items = items
	return item, true, nil
}

// Remove deletes the item with the given headword. It reports whether an
// item was removed.
func (n *Notebook) Remove(ctx context.Context, word string) (bool, error) {
	if !n.allowRemove {
		return false, ErrRemoveDisabled
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	i := n.indexOf(word)
	if i < 0 {
		return false, nil
	}

	items := make([]dictionary.NotebookItem, 0, len(n.items)-1)
	items = append(items, n.items[:i]...)
	items = append(items, n.items[i+1:]...)

	if err := n.persist(ctx, items); err != nil {
		return false, err
	}

	n.items = items
	return true, nil
}

// RemoveAllowed reports whether Remove is enabled
func (n *Notebook) RemoveAllowed() bool {
	return n.allowRemove
}

// Items returns a copy of the items, newest first
func (n *Notebook) Items() []dictionary.NotebookItem {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]dictionary.NotebookItem(nil), n.items...)
}

// Len returns the number of items
func (n *Notebook) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.items)
}

// Contains reports whether word is saved
func (n *Notebook) Contains(word string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.indexOf(word) >= 0
}

// Words returns the saved headwords, newest first
func (n *Notebook) Words() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	words := make([]string, len(n.items))
	for i, item := range n.items {
		words[i] = item.Word
	}
	return words
}

func (n *Notebook) indexOf(word string) int {
	for i, item := range n.items {
		if item.Word == word {
			return i
		}
	}
	return -1
}

func (n *Notebook) persist(ctx context.Context, items []dictionary.NotebookItem) error {
	data, err := Marshal(items)
	if err != nil {
		return err
	}
	if err := n.store.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to save notebook: %w", err)
	}
	return nil
}

// Marshal encodes items as a JSON array
func Marshal(items []dictionary.NotebookItem) ([]byte, error) {
	if items == nil {
		items = []dictionary.NotebookItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notebook: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a JSON array of items
func Unmarshal(data []byte) ([]dictionary.NotebookItem, error) {
	var items []dictionary.NotebookItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notebook: %w", err)
	}
	return items, nil
}
