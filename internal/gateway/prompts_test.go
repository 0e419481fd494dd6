package gateway

import (
	"strings"
	"testing"
)

func TestBuildLookupPrompt(t *testing.T) {
	prompt := buildLookupPrompt("metro", "English", "Spanish")

	wantContains := []string{
		`"metro"`,
		"Target Language: Spanish.",
		"User's Native Language: English.",
		"exactly 2 sentences in Spanish",
		"Friendly Explanation",
	}
	for _, want := range wantContains {
		if !strings.Contains(prompt, want) {
			t.Errorf("Lookup prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildImagePrompt(t *testing.T) {
	prompt := buildImagePrompt("gato")
	if !strings.Contains(prompt, `"gato"`) || !strings.Contains(prompt, "Plain background") {
		t.Errorf("Unexpected image prompt: %s", prompt)
	}
}

func TestBuildStoryPrompt(t *testing.T) {
	prompt := buildStoryPrompt([]string{"gato", "perro", "casa"}, "English", "Spanish")

	for _, want := range []string{"max 150 words", "gato, perro, casa", "translation in English", "\n---\n"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Story prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildChatInstruction(t *testing.T) {
	instr := buildChatInstruction("hola", "German")
	if !strings.Contains(instr, `"hola"`) || !strings.Contains(instr, "speaks German") {
		t.Errorf("Unexpected chat instruction: %s", instr)
	}
	if !strings.Contains(instr, "Keep answers short") {
		t.Error("Chat instruction should ask for short answers")
	}
}
