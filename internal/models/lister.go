package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Source returns the raw model ids of a backend
type Source interface {
	ModelIDs(ctx context.Context) ([]string, error)
}

// OpenAISource lists OpenAI models
type OpenAISource struct {
	client *openai.Client
}

// NewOpenAISource creates a source for apiKey
func NewOpenAISource(apiKey string) (*OpenAISource, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY or ai.openai_key in .lingopop.yaml")
	}
	return &OpenAISource{client: openai.NewClient(apiKey)}, nil
}

// ModelIDs returns all model ids
func (s *OpenAISource) ModelIDs(ctx context.Context) ([]string, error) {
	list, err := s.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// GeminiSource lists Gemini models
type GeminiSource struct {
	client *genai.Client
}

// NewGeminiSource creates a source for apiKey
func NewGeminiSource(ctx context.Context, apiKey string) (*GeminiSource, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not found. Set GEMINI_API_KEY or ai.gemini_key in .lingopop.yaml")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiSource{client: client}, nil
}

// ModelIDs returns all model ids without the "models/" prefix
func (s *GeminiSource) ModelIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for model, err := range s.client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		ids = append(ids, strings.TrimPrefix(model.Name, "models/"))
	}
	return ids, nil
}

// Categories groups model ids by capability
type Categories struct {
	Speech []string
	Image  []string
	Text   []string
}

// Categorize sorts ids into capability groups; unrelated models are dropped
func Categorize(ids []string) Categories {
	var c Categories

	for _, id := range ids {
		lower := strings.ToLower(id)
		switch {
		case strings.Contains(lower, "tts") || strings.Contains(lower, "audio"):
			c.Speech = append(c.Speech, id)
		case strings.Contains(lower, "dall-e") || strings.Contains(lower, "image") || strings.Contains(lower, "imagen"):
			c.Image = append(c.Image, id)
		case strings.Contains(lower, "gpt") || strings.Contains(lower, "gemini") || strings.Contains(lower, "chat"):
			c.Text = append(c.Text, id)
		}
	}

	sort.Strings(c.Speech)
	sort.Strings(c.Image)
	sort.Strings(c.Text)
	return c
}

// Lister prints the models of one backend
type Lister struct {
	backend string
	source  Source
}

// NewLister creates a lister
func NewLister(backend string, source Source) *Lister {
	return &Lister{backend: backend, source: source}
}

// ListAvailableModels writes the categorized models to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	ids, err := l.source.ModelIDs(ctx)
	if err != nil {
		return err
	}

	Print(w, l.backend, Categorize(ids))
	return nil
}

// Print writes categories in a human readable layout
func Print(w io.Writer, backend string, c Categories) {
	fmt.Fprintf(w, "Available %s models:\n", backend)
	printGroup(w, "Text models (lookup, story, chat)", c.Text)
	printGroup(w, "Image models", c.Image)
	printGroup(w, "Speech models", c.Speech)
}

func printGroup(w io.Writer, title string, ids []string) {
	fmt.Fprintf(w, "\n%s:\n", title)
	if len(ids) == 0 {
		fmt.Fprintln(w, "  none found")
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
}
