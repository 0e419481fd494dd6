package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/lingopop/internal/dictionary"
	"codeberg.org/snonux/lingopop/internal/gateway"
	"codeberg.org/snonux/lingopop/internal/language"
	"codeberg.org/snonux/lingopop/internal/logger"
	"codeberg.org/snonux/lingopop/internal/notebook"
)

// LookupFailureMessage is shown when a lookup fails
const LookupFailureMessage = "Failed to fetch data. Please check your connection or try again."

// ErrNoLanguages is returned when searching before languages are chosen
var ErrNoLanguages = errors.New("choose a native and a target language first")

// ErrNoResult is returned by operations that need a current result
var ErrNoResult = errors.New("no current result")

// Notifier surfaces interruptive messages to the user
type Notifier interface {
	Alert(message string)
}

// Speaker plays text aloud; failures are handled by the implementation
type Speaker interface {
	Say(ctx context.Context, text, voice string)
}

// Controller owns the application state
type Controller struct {
	mu    sync.Mutex
	state State

	gateway  gateway.Gateway
	notebook *notebook.Notebook
	speaker  Speaker
	notifier Notifier
	logger   *logger.Logger

	enrichWG     sync.WaitGroup
	cancelEnrich context.CancelFunc
}

// Option configures a controller
type Option func(*Controller)

// WithSpeaker sets the speaker; without one Speak is a no-op
func WithSpeaker(s Speaker) Option {
	return func(c *Controller) {
		c.speaker = s
	}
}

// WithNotifier sets where lookup failures are reported
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Controller) {
		c.logger = log
	}
}

// NewController creates a controller on the onboarding view
func NewController(gw gateway.Gateway, nb *notebook.Notebook, opts ...Option) *Controller {
	c := &Controller{
		state:    State{View: ViewOnboarding},
		gateway:  gw,
		notebook: nb,
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Notebook returns the notebook the controller saves into
func (c *Controller) Notebook() *notebook.Notebook {
	return c.notebook
}

// SelectLanguages sets both languages and moves to the search view
func (c *Controller) SelectLanguages(native, target language.Language) error {
	if native.Code == "" || target.Code == "" {
		return ErrNoLanguages
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Native = &native
	c.state.Target = &target
	c.state.View = ViewSearch
	return nil
}

// Search looks up term. An empty term is ignored. On failure the view
// returns to search, the notifier is alerted and the error is returned.
// On success the concept image is fetched in the background.
func (c *Controller) Search(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	c.mu.Lock()
	if c.state.Native == nil || c.state.Target == nil {
		c.mu.Unlock()
		return ErrNoLanguages
	}
	c.state.Generation++
	gen := c.state.Generation
	c.state.Loading = true
	c.state.Result = nil
	c.state.ShowChat = false
	c.state.View = ViewResult
	native, target := c.state.Native.Name, c.state.Target.Name
	c.stopEnrichmentLocked()
	c.mu.Unlock()

	c.logger.Debug("Searching", "term", term, "generation", gen)
	result, err := c.gateway.Lookup(ctx, term, native, target)

	c.mu.Lock()
	if gen != c.state.Generation {
		c.mu.Unlock()
		c.logger.Debug("Discarding stale lookup", "term", term, "generation", gen)
		return nil
	}

	if err != nil {
		c.state.View = ViewSearch
		c.state.Loading = false
		c.state.Result = nil
		c.mu.Unlock()

		c.logger.Warn("Lookup failed", "term", term, "error", err)
		if c.notifier != nil {
			c.notifier.Alert(LookupFailureMessage)
		}
		return fmt.Errorf("search %q: %w", term, err)
	}

	dictionary.Normalize(result)
	result.ImageURL = ""
	c.state.Result = result
	c.state.Loading = false

	enrichCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancelEnrich = cancel
	c.enrichWG.Add(1)
	c.mu.Unlock()

	go c.enrich(enrichCtx, gen, result.Word)
	return nil
}

// enrich attaches a concept image if generation gen is still current
func (c *Controller) enrich(ctx context.Context, gen uint64, word string) {
	defer c.enrichWG.Done()

	uri, ok := c.gateway.GenerateConceptImage(ctx, word)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.state.Generation || c.state.Result == nil {
		c.logger.Debug("Discarding stale image", "word", word, "generation", gen)
		return
	}
	c.state.Result.ImageURL = uri
}

// stopEnrichmentLocked cancels the running enrichment; c.mu must be held
func (c *Controller) stopEnrichmentLocked() {
	if c.cancelEnrich != nil {
		c.cancelEnrich()
		c.cancelEnrich = nil
	}
}

// WaitEnrichment blocks until background image requests have finished
func (c *Controller) WaitEnrichment() {
	c.enrichWG.Wait()
}

// GoHome returns to the search view keeping the current result
func (c *Controller) GoHome() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.View != ViewOnboarding {
		c.state.View = ViewSearch
		c.state.ShowChat = false
	}
}

// OpenNotebook switches to the notebook view
func (c *Controller) OpenNotebook() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.View == ViewOnboarding {
		return
	}
	c.state.View = ViewNotebook
	c.state.ShowChat = false
}

// CloseNotebook goes back to the search view
func (c *Controller) CloseNotebook() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.View == ViewNotebook {
		c.state.View = ViewSearch
	}
}

// SaveCurrent saves the current result into the notebook
func (c *Controller) SaveCurrent(ctx context.Context) (dictionary.NotebookItem, bool, error) {
	c.mu.Lock()
	result := c.state.Result.Clone()
	c.mu.Unlock()

	if result == nil {
		return dictionary.NotebookItem{}, false, ErrNoResult
	}
	return c.notebook.Save(ctx, result)
}

// IsSaved reports whether the current result is in the notebook
func (c *Controller) IsSaved() bool {
	c.mu.Lock()
	result := c.state.Result
	word := ""
	if result != nil {
		word = result.Word
	}
	c.mu.Unlock()

	return word != "" && c.notebook.Contains(word)
}

// Speak says text with the target language voice
func (c *Controller) Speak(ctx context.Context, text string) {
	c.mu.Lock()
	voice := language.DefaultVoice
	if c.state.Target != nil && c.state.Target.VoiceName != "" {
		voice = c.state.Target.VoiceName
	}
	c.mu.Unlock()

	if c.speaker == nil {
		return
	}
	c.speaker.Say(ctx, text, voice)
}

// OpenChat starts a tutor chat about the current result
func (c *Controller) OpenChat() (*Chat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Result == nil || c.state.Native == nil {
		return nil, ErrNoResult
	}
	c.state.ShowChat = true
	return newChat(c.gateway, c.state.Result.Word, c.state.Native.Name, c.logger), nil
}

// CloseChat hides the chat
func (c *Controller) CloseChat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ShowChat = false
}

// Close cancels background work and waits for it
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopEnrichmentLocked()
	c.mu.Unlock()
	c.WaitEnrichment()
}
