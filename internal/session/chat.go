package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/lingopop/internal/dictionary"
	"codeberg.org/snonux/lingopop/internal/gateway"
	"codeberg.org/snonux/lingopop/internal/logger"
)

// ChatErrorMessage is appended when the tutor cannot answer
const ChatErrorMessage = "Oops, I had a brain freeze. Try again?"

// Greeting returns the tutor's opening message for word
func Greeting(word string) string {
	return fmt.Sprintf("Hi! I'm here to help you with \"%s\". Ask me anything about it!", word)
}

// Chat is a tutor conversation scoped to one term
type Chat struct {
	mu         sync.Mutex
	messages   []dictionary.ChatMessage
	gateway    gateway.Gateway
	term       string
	nativeLang string
	logger     *logger.Logger
}

func newChat(gw gateway.Gateway, term, nativeLang string, log *logger.Logger) *Chat {
	return &Chat{
		messages:   []dictionary.ChatMessage{{Role: dictionary.RoleModel, Text: Greeting(term)}},
		gateway:    gw,
		term:       term,
		nativeLang: nativeLang,
		logger:     log,
	}
}

// Term returns the word the chat is about
func (c *Chat) Term() string {
	return c.term
}

// Messages returns a copy of the transcript
func (c *Chat) Messages() []dictionary.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]dictionary.ChatMessage(nil), c.messages...)
}

// Send appends the user message, asks the tutor and appends the reply.
// It returns the text appended for the model, or "" when nothing was added.
func (c *Chat) Send(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	c.mu.Lock()
	history := append([]dictionary.ChatMessage(nil), c.messages...)
	c.messages = append(c.messages, dictionary.ChatMessage{Role: dictionary.RoleUser, Text: text})
	c.mu.Unlock()

	reply, err := c.gateway.SendChatMessage(ctx, history, text, c.term, c.nativeLang)
	if err != nil {
		c.logger.Warn("Chat failed", "term", c.term, "error", err)
		reply = ChatErrorMessage
	}
	if reply == "" {
		return ""
	}

	c.mu.Lock()
	c.messages = append(c.messages, dictionary.ChatMessage{Role: dictionary.RoleModel, Text: reply})
	c.mu.Unlock()
	return reply
}
