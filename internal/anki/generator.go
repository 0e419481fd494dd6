package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// GeneratorOptions configures the CSV export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	MediaFolder    string // Where images are written, empty skips media
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "lingopop_anki.csv",
		MediaFolder:    "",
		IncludeHeaders: true,
	}
}

// CSVHeaders are the column names of the CSV export
var CSVHeaders = []string{"Word", "Definition", "Example", "Image", "Notes"}

// Generator creates Anki-compatible CSV import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddCards adds several cards
func (g *Generator) AddCards(cards []Card) {
	g.cards = append(g.cards, cards...)
}

// Cards returns the collected cards
func (g *Generator) Cards() []Card {
	return g.cards
}

// GenerateCSV writes the CSV file and, when a media folder is configured,
// the image files it references
func (g *Generator) GenerateCSV() error {
	if dir := filepath.Dir(g.options.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		if err := writer.Write(CSVHeaders); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{
			card.Word,
			card.Definition,
			exampleField(card),
			imageField(card),
			card.Notes,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	if g.options.MediaFolder != "" {
		if err := g.writeMedia(); err != nil {
			return err
		}
	}

	return nil
}

func (g *Generator) writeMedia() error {
	if err := os.MkdirAll(g.options.MediaFolder, 0755); err != nil {
		return fmt.Errorf("failed to create media folder: %w", err)
	}
	for _, card := range g.cards {
		if !card.HasImage() {
			continue
		}
		path := filepath.Join(g.options.MediaFolder, card.MediaName())
		if err := os.WriteFile(path, card.Image, 0644); err != nil {
			return fmt.Errorf("failed to write image for %s: %w", card.Word, err)
		}
	}
	return nil
}

// Stats returns the number of cards and how many of them have an image
func (g *Generator) Stats() (total, withImages int) {
	total = len(g.cards)
	for _, card := range g.cards {
		if card.HasImage() {
			withImages++
		}
	}
	return total, withImages
}
