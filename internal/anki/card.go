package anki

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/snonux/lingopop/internal"
	"codeberg.org/snonux/lingopop/internal/dictionary"
)

// ErrNotDataURI is returned for image references that are not inline data
var ErrNotDataURI = errors.New("not a base64 data URI")

// Card represents a single Anki note built from a notebook item
type Card struct {
	ID                 string // Notebook item ID, used for media names
	Word               string // Term in the target language
	Definition         string // Meaning in the native language
	Example            string // First example sentence
	ExampleTranslation string // Native translation of the example
	Notes              string // Friendly explanation
	Image              []byte // Decoded concept image, may be nil
	ImageExt           string // File extension of Image without the dot
}

// CardFromItem converts a saved notebook item into a card. An image that
// cannot be decoded is dropped rather than failing the whole card.
func CardFromItem(item dictionary.NotebookItem) Card {
	ex := item.FirstExample()
	card := Card{
		ID:                 item.ID,
		Word:               item.Word,
		Definition:         item.Definition,
		Example:            ex.Text,
		ExampleTranslation: ex.Translation,
		Notes:              item.FriendlyExplanation,
	}

	if item.ImageURL != "" {
		if mime, data, err := ParseDataURI(item.ImageURL); err == nil {
			card.Image = data
			card.ImageExt = extensionFor(mime)
		}
	}

	return card
}

// CardsFromItems converts items in order
func CardsFromItems(items []dictionary.NotebookItem) []Card {
	cards := make([]Card, 0, len(items))
	for _, item := range items {
		cards = append(cards, CardFromItem(item))
	}
	return cards
}

// HasImage reports whether the card carries image media
func (c Card) HasImage() bool {
	return len(c.Image) > 0
}

// MediaName returns the file name the image is stored under, or "" when
// the card has no image
func (c Card) MediaName() string {
	if !c.HasImage() {
		return ""
	}
	base := c.ID
	if base == "" {
		base = c.Word
	}
	return fmt.Sprintf("lingopop_%s.%s", internal.SanitizeFilename(base), c.ImageExt)
}

// ParseDataURI splits a data:<mime>;base64,<payload> URI
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, ErrNotDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty image data")
	}

	return mime, data, nil
}

func extensionFor(mime string) string {
	switch strings.ToLower(mime) {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}

func imageField(c Card) string {
	if !c.HasImage() {
		return ""
	}
	return fmt.Sprintf(`<img src="%s">`, c.MediaName())
}

func exampleField(c Card) string {
	if c.ExampleTranslation == "" || c.ExampleTranslation == c.Example {
		return c.Example
	}
	return fmt.Sprintf("%s<br><i>%s</i>", c.Example, c.ExampleTranslation)
}
