package gateway

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"codeberg.org/snonux/lingopop/internal/dictionary"
	"codeberg.org/snonux/lingopop/internal/logger"
)

// OpenAIClient implements Gateway on the OpenAI API
type OpenAIClient struct {
	client     *openai.Client
	textModel  string
	imageModel string
	ttsModel   string
	logger     *logger.Logger
}

// OpenAIOption configures the client
type OpenAIOption func(*OpenAIClient)

// WithOpenAIModels overrides the text, image and speech models; empty values keep the default
func WithOpenAIModels(text, image, tts string) OpenAIOption {
	return func(c *OpenAIClient) {
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

// WithOpenAILogger sets the logger
func WithOpenAILogger(log *logger.Logger) OpenAIOption {
	return func(c *OpenAIClient) {
		c.logger = log
	}
}

// WithOpenAIBaseURL points the client at a compatible endpoint
func WithOpenAIBaseURL(apiKey, baseURL string) OpenAIOption {
	return func(c *OpenAIClient) {
		config := openai.DefaultConfig(apiKey)
		config.BaseURL = baseURL
		c.client = openai.NewClientWithConfig(config)
	}
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey string, opts ...OpenAIOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	c := &OpenAIClient{
		client:     openai.NewClient(apiKey),
		textModel:  DefaultOpenAITextModel,
		imageModel: DefaultOpenAIImageModel,
		ttsModel:   DefaultOpenAITTSModel,
		logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Name returns the backend name
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Lookup asks for a strict JSON schema dictionary entry
func (c *OpenAIClient) Lookup(ctx context.Context, term, nativeLang, targetLang string) (*dictionary.Result, error) {
	c.logger.Debug("OpenAI lookup", "model", c.textModel, "term", term)

	schema := lookupJSONSchema()
	req := openai.ChatCompletionRequest{
		Model: c.textModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildLookupPrompt(term, nativeLang, targetLang),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "dictionary_result",
				Schema: &schema,
				Strict: true,
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, &LookupError{Term: term, Err: fmt.Errorf("OpenAI API error: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return nil, &LookupError{Term: term, Err: dictionary.ErrEmptyResponse}
	}

	result, err := dictionary.ParseResult(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, &LookupError{Term: term, Err: err}
	}
	return result, nil
}

// GenerateConceptImage requests a base64 encoded image
func (c *OpenAIClient) GenerateConceptImage(ctx context.Context, term string) (string, bool) {
	req := openai.ImageRequest{
		Prompt:         buildImagePrompt(term),
		Model:          c.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	}

	resp, err := c.client.CreateImage(ctx, req)
	if err != nil {
		c.logger.Debug("Image generation failed", "term", term, "error", err)
		return "", false
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		c.logger.Debug("Image generation returned no image", "term", term)
		return "", false
	}

	return dataURI("image/png", resp.Data[0].B64JSON), true
}

// SynthesizeSpeech requests raw PCM so the output matches the Gemini format
func (c *OpenAIClient) SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(c.ttsModel),
		Input:          text,
		Voice:          openai.SpeechVoice(OpenAIVoice(voice)),
		ResponseFormat: openai.SpeechResponseFormat("pcm"),
	}

	response, err := c.client.CreateSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoAudio
	}
	return data, nil
}

// GenerateStory asks for a short story using the given words
func (c *OpenAIClient) GenerateStory(ctx context.Context, words []string, nativeLang, targetLang string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.textModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildStoryPrompt(words, nativeLang, targetLang),
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to generate story: %w", err)
	}
	if len(resp.Choices) == 0 {
		return StoryFallback, nil
	}

	story := strings.TrimSpace(resp.Choices[0].Message.Content)
	if story == "" {
		return StoryFallback, nil
	}
	return story, nil
}

// SendChatMessage resends the whole history after a system message
func (c *OpenAIClient) SendChatMessage(ctx context.Context, history []dictionary.ChatMessage, message, contextTerm, nativeLang string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.textModel,
		Messages: chatMessages(history, message, contextTerm, nativeLang),
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to send chat message: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func chatMessages(history []dictionary.ChatMessage, message, contextTerm, nativeLang string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: buildChatInstruction(contextTerm, nativeLang),
	})

	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == dictionary.RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Text})
	}

	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
}

// openAIVoices maps catalog voice names onto OpenAI voices
var openAIVoices = map[string]string{
	"Puck":       "alloy",
	"Zephyr":     "nova",
	"Kore":       "shimmer",
	"Fenrir":     "onyx",
	"Charon":     "echo",
	"Aoede":      "coral",
	"Leda":       "sage",
	"Orus":       "ash",
	"Callirrhoe": "ballad",
}

// OpenAIVoice translates a voice name; names OpenAI already knows pass through
func OpenAIVoice(voice string) string {
	if v, ok := openAIVoices[voice]; ok {
		return v
	}
	for _, v := range openAIVoices {
		if strings.EqualFold(v, voice) {
			return v
		}
	}
	return "alloy"
}

func lookupJSONSchema() jsonschema.Definition {
	example := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"text":        {Type: jsonschema.String},
			"translation": {Type: jsonschema.String},
		},
		Required:             []string{"text", "translation"},
		AdditionalProperties: false,
	}

	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"word":                {Type: jsonschema.String, Description: "The headword or phrase in the target language"},
			"definition":          {Type: jsonschema.String, Description: "Definition in the user's native language"},
			"examples":            {Type: jsonschema.Array, Items: &example},
			"friendlyExplanation": {Type: jsonschema.String, Description: "A short, fun, conversational explanation of usage or culture"},
		},
		Required:             []string{"word", "definition", "examples", "friendlyExplanation"},
		AdditionalProperties: false,
	}
}
