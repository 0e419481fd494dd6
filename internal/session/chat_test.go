package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/lingopop/internal/dictionary"
)

func TestOpenChatNeedsResult(t *testing.T) {
	f := newFixture(t)
	_, err := f.ctrl.OpenChat()
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestChatConversation(t *testing.T) {
	f := newFixture(t)
	f.gw.NoImages = true
	ctx := context.Background()
	require.NoError(t, f.ctrl.Search(ctx, "hola"))

	chat, err := f.ctrl.OpenChat()
	require.NoError(t, err)
	assert.True(t, f.ctrl.Snapshot().ShowChat)
	assert.Equal(t, "hola", chat.Term())

	messages := chat.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, dictionary.RoleModel, messages[0].Role)
	assert.Equal(t, `Hi! I'm here to help you with "hola". Ask me anything about it!`, messages[0].Text)

	f.gw.ChatReply = "It is informal."
	assert.Equal(t, "It is informal.", chat.Send(ctx, "Is it formal?"))

	messages = chat.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, dictionary.RoleUser, messages[1].Role)
	assert.Equal(t, "Is it formal?", messages[1].Text)
	assert.Equal(t, "It is informal.", messages[2].Text)
	assert.Contains(t, f.gw.Calls(), "Chat: Is it formal? (term=hola, history=1)")

	f.ctrl.CloseChat()
	assert.False(t, f.ctrl.Snapshot().ShowChat)
}

func TestChatEmptyInputAndReply(t *testing.T) {
	f := newFixture(t)
	f.gw.NoImages = true
	ctx := context.Background()
	require.NoError(t, f.ctrl.Search(ctx, "hola"))
	chat, err := f.ctrl.OpenChat()
	require.NoError(t, err)

	assert.Equal(t, "", chat.Send(ctx, "   "))
	assert.Len(t, chat.Messages(), 1)
	assert.Zero(t, f.gw.CallCount("Chat"))

	f.gw.ChatReply = ""
	assert.Equal(t, "", chat.Send(ctx, "anything?"))
	assert.Len(t, chat.Messages(), 2, "empty reply appends nothing for the model")
}

func TestChatError(t *testing.T) {
	f := newFixture(t)
	f.gw.NoImages = true
	ctx := context.Background()
	require.NoError(t, f.ctrl.Search(ctx, "hola"))
	chat, err := f.ctrl.OpenChat()
	require.NoError(t, err)

	f.gw.ChatErr = errors.New("timeout")
	assert.Equal(t, ChatErrorMessage, chat.Send(ctx, "help"))

	messages := chat.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, ChatErrorMessage, messages[2].Text)
}

func TestNewSearchClosesChat(t *testing.T) {
	f := newFixture(t)
	f.gw.NoImages = true
	ctx := context.Background()
	require.NoError(t, f.ctrl.Search(ctx, "hola"))
	_, err := f.ctrl.OpenChat()
	require.NoError(t, err)

	require.NoError(t, f.ctrl.Search(ctx, "adios"))
	assert.False(t, f.ctrl.Snapshot().ShowChat)
}
