package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/lingopop/internal/dictionary"
	"codeberg.org/snonux/lingopop/internal/logger"
)

// GeminiClient implements Gateway on the Gemini API
type GeminiClient struct {
	client     *genai.Client
	textModel  string
	imageModel string
	ttsModel   string
	logger     *logger.Logger
}

// GeminiOption configures the client
type GeminiOption func(*GeminiClient)

// WithGeminiModels overrides the text, image and speech models; empty values keep the default
func WithGeminiModels(text, image, tts string) GeminiOption {
	return func(c *GeminiClient) {
		if text != "" {
			c.textModel = text
		}
		if image != "" {
			c.imageModel = image
		}
		if tts != "" {
			c.ttsModel = tts
		}
	}
}

// WithGeminiLogger sets the logger
func WithGeminiLogger(log *logger.Logger) GeminiOption {
	return func(c *GeminiClient) {
		c.logger = log
	}
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &GeminiClient{
		client:     genaiClient,
		textModel:  DefaultGeminiTextModel,
		imageModel: DefaultGeminiImageModel,
		ttsModel:   DefaultGeminiTTSModel,
		logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Name returns the backend name
func (c *GeminiClient) Name() string {
	return "gemini"
}

// Lookup asks for a schema-constrained dictionary entry
func (c *GeminiClient) Lookup(ctx context.Context, term, nativeLang, targetLang string) (*dictionary.Result, error) {
	c.logger.Debug("Gemini lookup", "model", c.textModel, "term", term)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   lookupSchema(),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, genai.Text(buildLookupPrompt(term, nativeLang, targetLang)), config)
	if err != nil {
		return nil, &LookupError{Term: term, Err: err}
	}

	result, err := dictionary.ParseResult(resp.Text())
	if err != nil {
		return nil, &LookupError{Term: term, Err: err}
	}
	return result, nil
}

// GenerateConceptImage returns the first inline image as a data URI
func (c *GeminiClient) GenerateConceptImage(ctx context.Context, term string) (string, bool) {
	resp, err := c.client.Models.GenerateContent(ctx, c.imageModel, genai.Text(buildImagePrompt(term)), nil)
	if err != nil {
		c.logger.Debug("Image generation failed", "term", term, "error", err)
		return "", false
	}

	blob := firstInlineData(resp)
	if blob == nil || len(blob.Data) == 0 {
		c.logger.Debug("Image generation returned no image", "term", term)
		return "", false
	}

	return dataURI(blob.MIMEType, base64.StdEncoding.EncodeToString(blob.Data)), true
}

// SynthesizeSpeech requests audio output with a prebuilt voice
func (c *GeminiClient) SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.ttsModel, genai.Text(text), config)
	if err != nil {
		return nil, fmt.Errorf("Gemini TTS error: %w", err)
	}

	blob := firstInlineData(resp)
	if blob == nil || len(blob.Data) == 0 {
		return nil, ErrNoAudio
	}
	return blob.Data, nil
}

// GenerateStory asks for a short story using the given words
func (c *GeminiClient) GenerateStory(ctx context.Context, words []string, nativeLang, targetLang string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, genai.Text(buildStoryPrompt(words, nativeLang, targetLang)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate story: %w", err)
	}

	story := strings.TrimSpace(resp.Text())
	if story == "" {
		return StoryFallback, nil
	}
	return story, nil
}

// SendChatMessage resends the whole history with a tutor system instruction
func (c *GeminiClient) SendChatMessage(ctx context.Context, history []dictionary.ChatMessage, message, contextTerm, nativeLang string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: buildChatInstruction(contextTerm, nativeLang)}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, chatContents(history, message), config)
	if err != nil {
		return "", fmt.Errorf("failed to send chat message: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

// chatContents converts the transcript plus the new message into Gemini turns
func chatContents(history []dictionary.ChatMessage, message string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		role := string(dictionary.RoleUser)
		if msg.Role == dictionary.RoleModel {
			role = string(dictionary.RoleModel)
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Text}},
		})
	}

	return append(contents, &genai.Content{
		Role:  string(dictionary.RoleUser),
		Parts: []*genai.Part{{Text: message}},
	})
}

// firstInlineData returns the first binary part of the first candidate
func firstInlineData(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return nil
	}

	for _, part := range candidate.Content.Parts {
		if part != nil && part.InlineData != nil {
			return part.InlineData
		}
	}
	return nil
}

func lookupSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"word": {
				Type:        genai.TypeString,
				Description: "The headword or phrase in the target language",
			},
			"definition": {
				Type:        genai.TypeString,
				Description: "Definition in the user's native language",
			},
			"examples": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text":        {Type: genai.TypeString},
						"translation": {Type: genai.TypeString},
					},
					Required: []string{"text", "translation"},
				},
			},
			"friendlyExplanation": {
				Type:        genai.TypeString,
				Description: "A short, fun, conversational explanation of usage or culture",
			},
		},
		Required: []string{"word", "definition", "examples", "friendlyExplanation"},
	}
}
