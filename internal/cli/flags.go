package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	DataDir     string
	Native      string
	Target      string
	BatchFile   string
	SaveLookup  bool
	SkipImages  bool
	NoAudio     bool
	Archive     bool
	ListModels  bool
	AllowRemove bool
	LogLevel    string

	// Anki export flags
	GenerateAnki bool
	AnkiCSV      bool
	AnkiOutput   string
	DeckName     string

	// AI backend flags
	Backend    string
	Fallback   bool
	TextModel  string
	ImageModel string
	TTSModel   string

	// Storage flags
	Storage   string
	RedisAddr string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Native:   "en",
		DeckName: "LingoPop",
		Backend:  "gemini",
		Storage:  "file",
		LogLevel: "warn",
	}
}
