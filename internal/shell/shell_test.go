package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/lingopop/internal/notebook"
	"codeberg.org/snonux/lingopop/internal/session"
	"codeberg.org/snonux/lingopop/internal/store"
	"codeberg.org/snonux/lingopop/internal/testutil"
)

type fixture struct {
	gw      *testutil.MockGateway
	nb      *notebook.Notebook
	speaker *testutil.MockSpeaker
	out     *bytes.Buffer
}

func run(t *testing.T, input string, opts ...notebook.Option) *fixture {
	t.Helper()

	f := &fixture{
		gw:      testutil.NewMockGateway(),
		nb:      notebook.New(store.NewMemoryStore(), opts...),
		speaker: &testutil.MockSpeaker{},
		out:     &bytes.Buffer{},
	}
	return f.run(t, input)
}

func (f *fixture) run(t *testing.T, input string) *fixture {
	t.Helper()

	ctrl := session.NewController(f.gw, f.nb,
		session.WithSpeaker(f.speaker),
		session.WithNotifier(AlertPrinter{Out: f.out}),
	)
	sh := New(ctrl, f.gw, strings.NewReader(input), f.out, nil)
	require.NoError(t, sh.Run(context.Background()))
	return f
}

const onboarding = "en\nes\n"

func TestOnboardingSearchAndSave(t *testing.T) {
	f := run(t, onboarding+"hola\n/save\n/save\n/quit\n")

	out := f.out.String()
	assert.Contains(t, out, "Learning 🇪🇸 Spanish from 🇺🇸 English.")
	assert.Contains(t, out, "definition of hola")
	assert.Contains(t, out, `Saved "hola" to your notebook.`)
	assert.Contains(t, out, `"hola" is already in your notebook.`)
	assert.Contains(t, out, "Bye!")

	assert.Equal(t, 1, f.gw.CallCount("Lookup: hola (English->Spanish)"))
	assert.True(t, f.nb.Contains("hola"))
	assert.Equal(t, 1, f.nb.Len())
}

func TestOnboardingByNumberAndRetry(t *testing.T) {
	f := run(t, "klingon\n1\n3\nhola\n")

	assert.Contains(t, f.out.String(), "unsupported language")
	assert.Equal(t, 1, f.gw.CallCount("Lookup: hola (English->Spanish)"))
}

func TestEOFDuringOnboarding(t *testing.T) {
	f := run(t, "en\n")
	assert.Equal(t, 0, len(f.gw.Calls()))
}

func TestQuickPhrase(t *testing.T) {
	f := run(t, onboarding+"/quick\n/quick 3\n/quick 9\n")

	out := f.out.String()
	assert.Contains(t, out, "4. I love you")
	assert.Contains(t, out, "pick a quick phrase between 1 and 4")
	assert.Equal(t, 1, f.gw.CallCount("Lookup: Where is the subway?"))
}

func TestLookupFailureAlerts(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.LookupErrors["xyz"] = errors.New("boom")
	f := &fixture{
		gw:      gw,
		nb:      notebook.New(store.NewMemoryStore()),
		speaker: &testutil.MockSpeaker{},
		out:     &bytes.Buffer{},
	}
	f.run(t, onboarding+"xyz\n/save\n")

	out := f.out.String()
	assert.Contains(t, out, "(!) "+session.LookupFailureMessage)
	assert.Contains(t, out, "Error: "+session.ErrNoResult.Error())
	assert.Equal(t, 0, f.nb.Len())
}

func TestSpeak(t *testing.T) {
	f := run(t, onboarding+"hola\n/speak\n/speak 2\n/speak buenos días\n/speak 7\n")

	assert.Equal(t, []string{
		"hola (voice=Kore)",
		"hola two (voice=Kore)",
		"buenos días (voice=Kore)",
	}, f.speaker.Spoken())
	assert.Contains(t, f.out.String(), "no example 7")
}

func TestChat(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.ChatReply = "It means hello."
	f := &fixture{gw: gw, nb: notebook.New(store.NewMemoryStore()), speaker: &testutil.MockSpeaker{}, out: &bytes.Buffer{}}
	f.run(t, onboarding+"hola\n/chat\nwhat does it mean?\n\n/done\n/quit\n")

	out := f.out.String()
	assert.Contains(t, out, "tutor> "+session.Greeting("hola"))
	assert.Contains(t, out, "tutor> It means hello.")
	assert.Equal(t, 1, gw.CallCount("Chat: what does it mean? (term=hola, history=1)"))
	assert.Equal(t, 1, gw.CallCount("Chat:"))
}

func TestImageSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hola.png")
	f := run(t, onboarding+"hola\n/image\n/image save "+path+"\n")

	assert.Contains(t, f.out.String(), "Image ready (image/png")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png:hola", string(data))
}

func TestImageUnavailable(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.NoImages = true
	f := &fixture{gw: gw, nb: notebook.New(store.NewMemoryStore()), speaker: &testutil.MockSpeaker{}, out: &bytes.Buffer{}}
	f.run(t, onboarding+"hola\n/image\n")

	assert.Contains(t, f.out.String(), "No image available for this word.")
}

func TestNotebookCardsAndStory(t *testing.T) {
	input := onboarding +
		"uno\n/save\ndos\n/save\n/notebook\nstory\nback\n" +
		"tres\n/save\n/notebook\nlist\nshow 1\ncards\nf\nn\ns\nq\nstory\nback\n/quit\n"
	f := run(t, input)

	out := f.out.String()
	assert.Contains(t, out, "Save at least 3 words to unlock Story Mode.")
	assert.Contains(t, out, "My Notebook (3 words):")
	assert.Contains(t, out, "1. tres: definition of tres")
	assert.Contains(t, out, "[1/3] tres")
	assert.Contains(t, out, "  definition of tres")
	assert.Contains(t, out, "[2/3] dos")
	assert.Contains(t, out, "Once upon a time: tres dos uno")
	assert.Equal(t, 1, f.gw.CallCount("Story:"))
	assert.Equal(t, []string{"dos (voice=Kore)"}, f.speaker.Spoken())
}

func TestNotebookRemove(t *testing.T) {
	f := run(t, onboarding+"uno\n/save\n/notebook\nremove uno\nback\n")
	assert.Contains(t, f.out.String(), "removing words is disabled")
	assert.True(t, f.nb.Contains("uno"))

	f = run(t, onboarding+"uno\n/save\ndos\n/save\n/notebook\nremove 2\nremove nada\nback\n", notebook.WithAllowRemove(true))
	assert.Contains(t, f.out.String(), `Removed "uno".`)
	assert.Contains(t, f.out.String(), `"nada" is not in your notebook`)
	assert.False(t, f.nb.Contains("uno"))
	assert.True(t, f.nb.Contains("dos"))
}

func TestEmptyNotebook(t *testing.T) {
	f := run(t, onboarding+"/notebook\ncards\nback\n")
	out := f.out.String()
	assert.Contains(t, out, "Your notebook is empty. Save some words first!")
	assert.Contains(t, out, "No cards yet.")
}

func TestChangeLanguagesAndUnknownCommand(t *testing.T) {
	f := run(t, onboarding+"/lang fr ja\nbonjour\n/lang fr\n/bogus\n")

	out := f.out.String()
	assert.Equal(t, 1, f.gw.CallCount("Lookup: bonjour (French->Japanese)"))
	assert.Contains(t, out, "usage: /lang <native> <target>")
	assert.Contains(t, out, "unknown command /bogus")
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"1", "en", false},
		{"11", "it", false},
		{"12", "", true},
		{"JA", "ja", false},
		{"Spanish", "es", false},
		{"xx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l, err := resolveLanguage(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Code)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b", truncate("a\n  b", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
