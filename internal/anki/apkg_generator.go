package anki

import (
	"archive/zip"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// DefaultDeckName is used when no deck name is configured
const DefaultDeckName = "LingoPop"

// fieldSeparator joins note fields inside the flds column
const fieldSeparator = "\x1f"

var noteFields = []string{"Word", "Definition", "Example", "Image", "Notes"}

// APKGGenerator creates Anki package files (.apkg)
type APKGGenerator struct {
	deckName string
	deckID   int64
	modelID  int64
	now      time.Time
	cards    []Card
}

// NewAPKGGenerator creates a new APKG generator
func NewAPKGGenerator(deckName string) *APKGGenerator {
	if strings.TrimSpace(deckName) == "" {
		deckName = DefaultDeckName
	}
	now := time.Now()
	return &APKGGenerator{
		deckName: deckName,
		deckID:   now.UnixMilli(),
		modelID:  now.UnixMilli() + 1,
		now:      now,
	}
}

// AddCard adds a card to the package
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddCards adds several cards
func (g *APKGGenerator) AddCards(cards []Card) {
	g.cards = append(g.cards, cards...)
}

// GenerateAPKG writes the collection database, the media map and every
// image into a zip at outputPath
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "lingopop_anki_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	collection, err := os.ReadFile(dbPath)
	if err != nil {
		return fmt.Errorf("failed to read database: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := g.writePackage(outputPath, collection); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}
	return nil
}

func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := g.insertNotes(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}
	return nil
}

// deck is the per-deck entry of the col.decks JSON
type deck struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Mod       int64  `json:"mod"`
	Desc      string `json:"desc"`
	Collapsed bool   `json:"collapsed"`
	Dyn       int    `json:"dyn"`
	Conf      int    `json:"conf"`
	Usn       int    `json:"usn"`
	NewToday  []int  `json:"newToday"`
	RevToday  []int  `json:"revToday"`
	LrnToday  []int  `json:"lrnToday"`
	TimeToday []int  `json:"timeToday"`
	ExtendNew int    `json:"extendNew"`
	ExtendRev int    `json:"extendRev"`
}

func newDeck(id int64, name, desc string, mod int64) deck {
	return deck{
		ID: id, Name: name, Mod: mod, Desc: desc, Conf: 1,
		NewToday: []int{0, 0}, RevToday: []int{0, 0},
		LrnToday: []int{0, 0}, TimeToday: []int{0, 0},
		ExtendNew: 10, ExtendRev: 50,
	}
}

func (g *APKGGenerator) insertCollection(db *sql.DB) error {
	now := g.now.Unix()

	decks := map[string]deck{
		"1": newDeck(1, "Default", "", now),
		strconv.FormatInt(g.deckID, 10): newDeck(g.deckID, g.deckName,
			"Vocabulary saved in the LingoPop notebook", now),
	}
	models := map[string]any{strconv.FormatInt(g.modelID, 10): g.noteType()}
	conf := map[string]any{
		"nextPos":      1,
		"estTimes":     true,
		"activeDecks":  []int64{1},
		"sortType":     "noteFld",
		"addToCur":     true,
		"curDeck":      1,
		"dueCounts":    true,
		"collapseTime": 1200,
		"schedVer":     1,
		"curModel":     strconv.FormatInt(g.modelID, 10),
	}
	dconf := map[string]any{
		"1": map[string]any{
			"id": 1, "name": "Default", "dyn": 0, "usn": 0, "mod": now,
			"new": map[string]any{
				"delays": []int{1, 10}, "ints": []int{1, 4, 7},
				"initialFactor": 2500, "perDay": 20, "order": 1,
				"bury": true, "separate": true,
			},
			"lapse": map[string]any{
				"delays": []int{10}, "mult": 0, "minInt": 1,
				"leechFails": 8, "leechAction": 0,
			},
			"rev": map[string]any{
				"perDay": 100, "ease4": 1.3, "fuzz": 0.05, "maxIvl": 36500,
				"ivlFct": 1, "bury": true, "minSpace": 1,
			},
			"timer": 0, "maxTaken": 60, "autoplay": true, "replayq": true,
		},
	}

	encoded := make([]string, 0, 4)
	for _, v := range []any{conf, models, decks, dconf} {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		encoded = append(encoded, string(data))
	}

	_, err := db.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1, now, now*1000, now*1000, 11, 0, 0, 0,
		encoded[0], encoded[1], encoded[2], encoded[3], "{}")
	return err
}

func (g *APKGGenerator) noteType() map[string]any {
	flds := make([]map[string]any, 0, len(noteFields))
	for i, name := range noteFields {
		size := 20
		if name == "Notes" {
			size = 16
		}
		flds = append(flds, map[string]any{
			"name": name, "ord": i, "sticky": false, "rtl": false,
			"font": "Arial", "size": size, "media": []string{},
		})
	}

	return map[string]any{
		"id":        g.modelID,
		"name":      "LingoPop Vocabulary (Basic + Reverse)",
		"type":      0,
		"mod":       g.now.Unix(),
		"usn":       -1,
		"sortf":     0,
		"did":       g.deckID,
		"req":       [][]any{{0, "all", []int{0}}, {1, "all", []int{1}}},
		"vers":      []int{},
		"tags":      []string{},
		"latexPre":  "\\documentclass[12pt]{article}\n\\begin{document}",
		"latexPost": "\\end{document}",
		"flds":      flds,
		"tmpls": []map[string]any{
			{"name": "Forward", "ord": 0, "qfmt": forwardFront, "afmt": forwardBack, "did": nil, "bqfmt": "", "bafmt": ""},
			{"name": "Reverse", "ord": 1, "qfmt": reverseFront, "afmt": reverseBack, "did": nil, "bqfmt": "", "bafmt": ""},
		},
		"css": cardCSS,
	}
}

const forwardFront = `<div class="front">
<div class="word">{{Word}}</div>
{{#Image}}<div class="image-container">{{Image}}</div>{{/Image}}
</div>`

const forwardBack = `{{FrontSide}}
<hr id="answer">
<div class="back">
<div class="definition">{{Definition}}</div>
{{#Example}}<div class="example">{{Example}}</div>{{/Example}}
{{#Notes}}<div class="notes">{{Notes}}</div>{{/Notes}}
</div>`

const reverseFront = `<div class="front">
<div class="definition">{{Definition}}</div>
</div>`

const reverseBack = `{{FrontSide}}
<hr id="answer">
<div class="back">
<div class="word">{{Word}}</div>
{{#Image}}<div class="image-container">{{Image}}</div>{{/Image}}
{{#Example}}<div class="example">{{Example}}</div>{{/Example}}
</div>`

const cardCSS = `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #1e293b;
  background-color: #fff7ed;
}
.front, .back { padding: 20px; }
.image-container img { max-width: 100%; height: auto; border-radius: 16px; }
.word { font-size: 32px; font-weight: bold; color: #db2777; margin: 20px 0; }
.definition { font-size: 24px; font-weight: bold; margin: 16px 0; }
.example { font-size: 18px; margin: 12px 0; }
.notes { font-size: 16px; color: #64748b; margin-top: 20px; font-style: italic; }`

func (g *APKGGenerator) insertNotes(db *sql.DB) error {
	mod := g.now.Unix()
	base := g.now.UnixMilli()

	for i, card := range g.cards {
		// three IDs per note: the note and its two cards
		noteID := base + int64(i*3)

		fields := strings.Join([]string{
			card.Word,
			card.Definition,
			exampleField(card),
			imageField(card),
			card.Notes,
		}, fieldSeparator)

		guid := "lp_" + card.ID
		if card.ID == "" {
			guid = fmt.Sprintf("lp_%d_%d", base, i)
		}

		_, err := db.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			noteID, guid, g.modelID, mod, -1, "lingopop", fields, card.Word, 0, 0, "")
		if err != nil {
			return fmt.Errorf("failed to insert note %s: %w", card.Word, err)
		}

		for ord := 0; ord < 2; ord++ {
			cardID := noteID + 1 + int64(ord)
			_, err := db.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				cardID, noteID, g.deckID, ord, mod, -1,
				0, 0, // type, queue: new
				noteID+int64(ord), // due is the position for new cards
				0, 0, 0, 0, 0, 0, 0, 0, "")
			if err != nil {
				return fmt.Errorf("failed to insert card %s: %w", card.Word, err)
			}
		}
	}
	return nil
}

// writePackage zips the collection, the media map and numbered media files
func (g *APKGGenerator) writePackage(outputPath string, collection []byte) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	zw := zip.NewWriter(file)

	if err := writeZipEntry(zw, "collection.anki2", collection); err != nil {
		return err
	}

	mapping := make(map[string]string)
	seen := make(map[string]bool)
	n := 0
	for _, card := range g.cards {
		name := card.MediaName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		key := strconv.Itoa(n)
		if err := writeZipEntry(zw, key, card.Image); err != nil {
			return err
		}
		mapping[key] = name
		n++
	}

	media, err := json.Marshal(mapping)
	if err != nil {
		return err
	}
	if err := writeZipEntry(zw, "media", media); err != nil {
		return err
	}

	return zw.Close()
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
