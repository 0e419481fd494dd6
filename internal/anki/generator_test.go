package anki

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewGenerator(t *testing.T) {
	gen := NewGenerator(nil)
	if gen == nil || gen.options == nil {
		t.Fatal("expected generator with default options")
	}
	if gen.options.OutputPath != "lingopop_anki.csv" {
		t.Errorf("unexpected default output path %q", gen.options.OutputPath)
	}

	gen = NewGenerator(&GeneratorOptions{OutputPath: "custom.csv"})
	if gen.options.OutputPath != "custom.csv" {
		t.Errorf("expected custom output path, got %q", gen.options.OutputPath)
	}
}

func TestGenerateCSV(t *testing.T) {
	tempDir := t.TempDir()
	outputPath := filepath.Join(tempDir, "out", "deck.csv")
	mediaDir := filepath.Join(tempDir, "media")

	gen := NewGenerator(&GeneratorOptions{
		OutputPath:     outputPath,
		MediaFolder:    mediaDir,
		IncludeHeaders: true,
	})
	withImage := CardFromItem(sampleItem("gato", true))
	gen.AddCards([]Card{withImage, CardFromItem(sampleItem("perro", false))})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV failed: %v", err)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		t.Fatalf("failed to open CSV: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to read CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(CSVHeaders, ",") {
		t.Errorf("unexpected headers %v", records[0])
	}
	if records[1][0] != "gato" || !strings.Contains(records[1][3], withImage.MediaName()) {
		t.Errorf("unexpected first row %v", records[1])
	}
	if records[2][3] != "" {
		t.Errorf("expected empty image column, got %q", records[2][3])
	}

	data, err := os.ReadFile(filepath.Join(mediaDir, withImage.MediaName()))
	if err != nil {
		t.Fatalf("expected media file: %v", err)
	}
	if string(data) != "png-bytes-gato" {
		t.Errorf("unexpected media content %q", data)
	}
}

func TestGenerateCSVWithoutHeaders(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "deck.csv")
	gen := NewGenerator(&GeneratorOptions{OutputPath: outputPath})
	gen.AddCard(Card{Word: "hola", Definition: "hello, \"friend\""})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV failed: %v", err)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0][1] != "hello, \"friend\"" {
		t.Errorf("unexpected records %v", records)
	}
}

func TestStats(t *testing.T) {
	gen := NewGenerator(nil)
	gen.AddCards(CardsFromItems(nil))
	if total, images := gen.Stats(); total != 0 || images != 0 {
		t.Errorf("expected empty stats, got %d/%d", total, images)
	}

	gen.AddCard(CardFromItem(sampleItem("a", true)))
	gen.AddCard(CardFromItem(sampleItem("b", false)))
	gen.AddCard(CardFromItem(sampleItem("c", true)))

	total, images := gen.Stats()
	if total != 3 || images != 2 {
		t.Errorf("Stats() = %d/%d, want 3/2", total, images)
	}
	if len(gen.Cards()) != 3 {
		t.Errorf("expected 3 cards, got %d", len(gen.Cards()))
	}
}
