package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lingopop/internal"
)

// DefaultDataDir returns where the notebook and caches live
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lingopop"
	}
	return filepath.Join(home, ".local", "state", "lingopop")
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lingopop [term]",
		Short: "AI-powered vocabulary notebook",
		Long: `lingopop looks up words, phrases and sentences in the language you are
learning, explains them in your native language, paints a concept
picture, speaks them aloud and keeps the ones you save in a notebook.

Examples:
  lingopop                                # Interactive shell (default)
  lingopop --target es "Where is the subway?" # One-shot lookup
  lingopop --target es --batch words.txt  # Look up and save many terms
  lingopop --anki --deck-name Spanish     # Export the notebook to Anki`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.lingopop.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.DataDir, "data-dir", DefaultDataDir(), "Directory holding the notebook and caches")
	cmd.Flags().StringVarP(&flags.Native, "native", "n", flags.Native, "Native language (code or name)")
	cmd.Flags().StringVarP(&flags.Target, "target", "t", flags.Target, "Language to learn (code or name)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Look up terms from file (one per line) and save them")
	cmd.Flags().BoolVar(&flags.SaveLookup, "save", false, "Save a one-shot lookup into the notebook")
	cmd.Flags().BoolVar(&flags.SkipImages, "skip-images", false, "Skip concept images in batch mode")
	cmd.Flags().BoolVar(&flags.NoAudio, "no-audio", false, "Disable speech playback")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive the data directory and start fresh")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available models of the configured backend")
	cmd.Flags().BoolVar(&flags.AllowRemove, "allow-remove", false, "Allow removing words from the notebook")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Anki flags
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Export the notebook to Anki (APKG format by default)")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Export CSV instead of APKG when using --anki")
	cmd.Flags().StringVar(&flags.AnkiOutput, "anki-output", "", "Anki export path (default: <data-dir>/export/<deck>.apkg)")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")

	// AI flags
	cmd.Flags().StringVar(&flags.Backend, "backend", flags.Backend, "AI backend: gemini or openai")
	cmd.Flags().BoolVar(&flags.Fallback, "fallback", false, "Fall back to the other backend when the primary fails")
	cmd.Flags().StringVar(&flags.TextModel, "text-model", "", "Override the text model")
	cmd.Flags().StringVar(&flags.ImageModel, "image-model", "", "Override the image model")
	cmd.Flags().StringVar(&flags.TTSModel, "tts-model", "", "Override the speech model")

	// Storage flags
	cmd.Flags().StringVar(&flags.Storage, "storage", flags.Storage, "Notebook storage: file, sqlite, redis or memory")
	cmd.Flags().StringVar(&flags.RedisAddr, "redis-addr", "localhost:6379", "Redis address for --storage redis")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("ai.backend", cmd.Flags().Lookup("backend"))
	viper.BindPFlag("ai.fallback", cmd.Flags().Lookup("fallback"))
	viper.BindPFlag("ai.text_model", cmd.Flags().Lookup("text-model"))
	viper.BindPFlag("ai.image_model", cmd.Flags().Lookup("image-model"))
	viper.BindPFlag("ai.tts_model", cmd.Flags().Lookup("tts-model"))
	viper.BindPFlag("storage.backend", cmd.Flags().Lookup("storage"))
	viper.BindPFlag("storage.path", cmd.Flags().Lookup("data-dir"))
	viper.BindPFlag("storage.redis_addr", cmd.Flags().Lookup("redis-addr"))
	viper.BindPFlag("notebook.allow_remove", cmd.Flags().Lookup("allow-remove"))
	viper.BindPFlag("language.native", cmd.Flags().Lookup("native"))
	viper.BindPFlag("language.target", cmd.Flags().Lookup("target"))
	viper.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	viper.BindPFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
}

// setDefaults registers defaults for keys that have no flag
func setDefaults() {
	viper.SetDefault("ai.breaker_failures", 5)
	viper.SetDefault("ai.breaker_timeout", "30s")
	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.cache_dir", "")
	viper.SetDefault("storage.redis_db", 0)
	viper.SetDefault("log.mode", "dev")
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	setDefaults()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".lingopop" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lingopop")
	}

	// LINGOPOP_AI_BACKEND overrides ai.backend and so on
	viper.SetEnvPrefix("LINGOPOP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return viper.GetString("ai.gemini_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("ai.openai_key")
}

// ApplyConfig copies values set in the config file or environment into
// flags. Flags given on the command line win because viper resolves them
// first.
func ApplyConfig(flags *Flags) {
	setString := func(key string, dst *string) {
		if viper.IsSet(key) {
			*dst = viper.GetString(key)
		}
	}
	setBool := func(key string, dst *bool) {
		if viper.IsSet(key) {
			*dst = viper.GetBool(key)
		}
	}

	setString("ai.backend", &flags.Backend)
	setBool("ai.fallback", &flags.Fallback)
	setString("ai.text_model", &flags.TextModel)
	setString("ai.image_model", &flags.ImageModel)
	setString("ai.tts_model", &flags.TTSModel)
	setString("storage.backend", &flags.Storage)
	setString("storage.path", &flags.DataDir)
	setString("storage.redis_addr", &flags.RedisAddr)
	setBool("notebook.allow_remove", &flags.AllowRemove)
	setString("language.native", &flags.Native)
	setString("language.target", &flags.Target)
	setString("log.level", &flags.LogLevel)
	setString("anki.deck_name", &flags.DeckName)

	if viper.IsSet("audio.enabled") && !viper.GetBool("audio.enabled") {
		flags.NoAudio = true
	}
}
