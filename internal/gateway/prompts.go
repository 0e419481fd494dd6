package gateway

import (
	"fmt"
	"strings"
)

// StoryMaxWords bounds the story length requested from the model
const StoryMaxWords = 150

// StorySeparator divides the story from its translation
const StorySeparator = "---"

func buildLookupPrompt(term, nativeLang, targetLang string) string {
	return fmt.Sprintf(`Analyze the text "%s".
Target Language: %s.
User's Native Language: %s.

1. Word: The corrected headword or phrase in %s.
2. Definition: Provide a natural, easy-to-understand definition in %s.
3. Examples: Provide exactly 2 sentences in %s containing the term, with %s translations.
4. Friendly Explanation: You are a cool, witty friend. Explain the cultural context, usage nuances, tone (formal/slang), or similar confusing words. Be very concise, fun, and direct. Avoid textbook style. Write this in %s.`,
		term, targetLang, nativeLang, targetLang, nativeLang, targetLang, nativeLang, nativeLang)
}

func buildImagePrompt(term string) string {
	return fmt.Sprintf(`A bright, colorful, minimalist vector art illustration representing the concept: "%s". Plain background. High contrast. Fun style.`, term)
}

func buildStoryPrompt(words []string, nativeLang, targetLang string) string {
	return fmt.Sprintf(`Create a short, funny story (max %d words) in %s using these words: %s.
Then provide a translation in %s.
Format:
[Story in %s]

%s

[Translation in %s]`,
		StoryMaxWords, targetLang, strings.Join(words, ", "), nativeLang, targetLang, StorySeparator, nativeLang)
}

func buildChatInstruction(contextTerm, nativeLang string) string {
	return fmt.Sprintf(`You are a helpful language tutor assistant.
The user is learning the word/phrase: "%s".
The user speaks %s.
Answer questions about this specific word, its grammar, or usage. Keep answers short and encouraging.`, contextTerm, nativeLang)
}
