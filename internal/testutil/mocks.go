package testutil

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/lingopop/internal/dictionary"
)

// MockGateway mocks the AI gateway for testing. It is safe for concurrent
// use because image enrichment runs in a background goroutine.
type MockGateway struct {
	BackendName string

	Results      map[string]*dictionary.Result
	LookupErrors map[string]error
	// LookupGates blocks the lookup for a term until the channel is closed
	LookupGates map[string]chan struct{}

	Images map[string]string
	// NoImages makes every image request fail unless listed in Images
	NoImages bool
	// ImageGates blocks the image request for a term until the channel is closed
	ImageGates map[string]chan struct{}

	Speech    []byte
	SpeechErr error

	Story    string
	StoryErr error

	ChatReply string
	ChatErr   error

	mu    sync.Mutex
	calls []string
}

// NewMockGateway creates a mock with empty maps
func NewMockGateway() *MockGateway {
	return &MockGateway{
		BackendName:  "mock",
		Results:      make(map[string]*dictionary.Result),
		LookupErrors: make(map[string]error),
		LookupGates:  make(map[string]chan struct{}),
		Images:       make(map[string]string),
		ImageGates:   make(map[string]chan struct{}),
	}
}

func (m *MockGateway) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// Calls returns a copy of the recorded calls
func (m *MockGateway) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount counts recorded calls starting with prefix
func (m *MockGateway) CallCount(prefix string) int {
	count := 0
	for _, call := range m.Calls() {
		if strings.HasPrefix(call, prefix) {
			count++
		}
	}
	return count
}

// Name returns the backend name
func (m *MockGateway) Name() string {
	if m.BackendName == "" {
		return "mock"
	}
	return m.BackendName
}

// Lookup mocks a dictionary lookup
func (m *MockGateway) Lookup(ctx context.Context, term, nativeLang, targetLang string) (*dictionary.Result, error) {
	m.record(fmt.Sprintf("Lookup: %s (%s->%s)", term, nativeLang, targetLang))

	m.mu.Lock()
	gate := m.LookupGates[term]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err, ok := m.LookupErrors[term]; ok {
		return nil, err
	}
	if result, ok := m.Results[term]; ok {
		return result.Clone(), nil
	}
	return SampleResult(term), nil
}

// GenerateConceptImage mocks image generation
func (m *MockGateway) GenerateConceptImage(ctx context.Context, term string) (string, bool) {
	m.record("Image: " + term)

	m.mu.Lock()
	gate := m.ImageGates[term]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", false
		}
	}

	if uri, ok := m.Images[term]; ok {
		return uri, uri != ""
	}
	if m.NoImages {
		return "", false
	}
	return ImageURIFor(term), true
}

// SetImageGate installs a gate for term and returns it; close it to release the request
func (m *MockGateway) SetImageGate(term string) chan struct{} {
	gate := make(chan struct{})
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImageGates[term] = gate
	return gate
}

// SetLookupGate installs a gate for term and returns it; close it to release the lookup
func (m *MockGateway) SetLookupGate(term string) chan struct{} {
	gate := make(chan struct{})
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LookupGates[term] = gate
	return gate
}

// SynthesizeSpeech mocks TTS
func (m *MockGateway) SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	m.record(fmt.Sprintf("TTS: %s (voice=%s)", text, voice))

	if m.SpeechErr != nil {
		return nil, m.SpeechErr
	}
	if m.Speech != nil {
		return m.Speech, nil
	}
	return GeneratePCM(2400), nil
}

// GenerateStory mocks story generation
func (m *MockGateway) GenerateStory(ctx context.Context, words []string, nativeLang, targetLang string) (string, error) {
	m.record(fmt.Sprintf("Story: %s (%s->%s)", strings.Join(words, ","), nativeLang, targetLang))

	if m.StoryErr != nil {
		return "", m.StoryErr
	}
	if m.Story != "" {
		return m.Story, nil
	}
	return fmt.Sprintf("Once upon a time: %s\n\n---\n\nmock translation", strings.Join(words, " ")), nil
}

// SendChatMessage mocks the tutor chat
func (m *MockGateway) SendChatMessage(ctx context.Context, history []dictionary.ChatMessage, message, contextTerm, nativeLang string) (string, error) {
	m.record(fmt.Sprintf("Chat: %s (term=%s, history=%d)", message, contextTerm, len(history)))

	if m.ChatErr != nil {
		return "", m.ChatErr
	}
	return m.ChatReply, nil
}

// SampleResult builds a complete lookup result for term
func SampleResult(term string) *dictionary.Result {
	return &dictionary.Result{
		Word:       term,
		Definition: "definition of " + term,
		Examples: []dictionary.Example{
			{Text: term + " one", Translation: "translation one"},
			{Text: term + " two", Translation: "translation two"},
		},
		FriendlyExplanation: "a friendly note about " + term,
	}
}

// ImageURIFor returns the deterministic mock image for term
func ImageURIFor(term string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png:"+term))
}

// GeneratePCM returns n samples of silence-adjacent s16le PCM
func GeneratePCM(samples int) []byte {
	data := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		data[2*i] = byte(i % 7)
	}
	return data
}

// MockNotifier records alerts
type MockNotifier struct {
	mu     sync.Mutex
	alerts []string
}

// Alert records a message
func (m *MockNotifier) Alert(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, message)
}

// Alerts returns a copy of the recorded messages
func (m *MockNotifier) Alerts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.alerts...)
}

// MockSpeaker records what would have been spoken
type MockSpeaker struct {
	mu     sync.Mutex
	spoken []string
}

// Say records text and voice
func (m *MockSpeaker) Say(ctx context.Context, text, voice string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spoken = append(m.spoken, fmt.Sprintf("%s (voice=%s)", text, voice))
}

// Spoken returns a copy of the recorded utterances
func (m *MockSpeaker) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.spoken...)
}
