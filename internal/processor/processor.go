package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"codeberg.org/snonux/lingopop/internal"
	"codeberg.org/snonux/lingopop/internal/anki"
	"codeberg.org/snonux/lingopop/internal/archive"
	"codeberg.org/snonux/lingopop/internal/audio"
	"codeberg.org/snonux/lingopop/internal/batch"
	"codeberg.org/snonux/lingopop/internal/cli"
	"codeberg.org/snonux/lingopop/internal/gateway"
	"codeberg.org/snonux/lingopop/internal/language"
	"codeberg.org/snonux/lingopop/internal/logger"
	"codeberg.org/snonux/lingopop/internal/models"
	"codeberg.org/snonux/lingopop/internal/notebook"
	"codeberg.org/snonux/lingopop/internal/session"
	"codeberg.org/snonux/lingopop/internal/shell"
	"codeberg.org/snonux/lingopop/internal/store"
)

// ErrNoTarget is returned by non-interactive modes without a target language
var ErrNoTarget = errors.New("--target is required for this mode")

// Processor builds the components from flags and config and runs a mode
type Processor struct {
	flags  *cli.Flags
	logger *logger.Logger
	in     io.Reader
	out    io.Writer

	// newGateway is replaced in tests
	newGateway func(ctx context.Context) (gateway.Gateway, error)
	// newSource is replaced in tests
	newSource func(ctx context.Context, backend string) (models.Source, error)
}

// NewProcessor creates a processor writing to stdout
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	log, err := logger.New(viper.GetString("log.mode"), flags.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	p := &Processor{
		flags:  flags,
		logger: log,
		in:     os.Stdin,
		out:    os.Stdout,
	}
	p.newGateway = p.buildGateway
	p.newSource = buildSource
	return p, nil
}

// Close flushes the logger
func (p *Processor) Close() {
	p.logger.Sync()
}

// Run dispatches to the mode selected by the flags
func (p *Processor) Run(ctx context.Context, args []string) error {
	switch {
	case p.flags.Archive:
		return p.Archive()
	case p.flags.ListModels:
		return p.ListModels(ctx)
	}

	nb, closeStore, err := p.openNotebook(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	switch {
	case p.flags.BatchFile != "":
		if err := p.ProcessBatch(ctx, nb); err != nil {
			return err
		}
	case len(args) > 0:
		if err := p.ProcessSingleTerm(ctx, nb, args[0]); err != nil {
			return err
		}
	case p.flags.GenerateAnki:
		// export only
	default:
		return p.RunShell(ctx, nb)
	}

	if p.flags.GenerateAnki {
		fmt.Fprintf(p.out, "\nGenerating Anki export...\n")
		outputPath, err := p.GenerateAnkiFile(nb)
		if err != nil {
			return fmt.Errorf("failed to generate Anki file: %w", err)
		}
		fmt.Fprintf(p.out, "Anki export created: %s\n", outputPath)
	}
	return nil
}

// Archive moves the data directory aside
func (p *Processor) Archive() error {
	dest, err := archive.ArchiveDataDir(p.flags.DataDir)
	if err != nil {
		return fmt.Errorf("failed to archive data: %w", err)
	}
	fmt.Fprintf(p.out, "Archived %s to %s\n", p.flags.DataDir, dest)
	return nil
}

// ListModels prints the models offered by the configured backend
func (p *Processor) ListModels(ctx context.Context) error {
	backend := strings.ToLower(p.flags.Backend)
	source, err := p.newSource(ctx, backend)
	if err != nil {
		return err
	}
	return models.NewLister(backend, source).ListAvailableModels(ctx, p.out)
}

func buildSource(ctx context.Context, backend string) (models.Source, error) {
	var (
		source models.Source
		err    error
	)
	switch backend {
	case "openai":
		source, err = models.NewOpenAISource(cli.GetOpenAIKey())
	case "gemini", "":
		source, err = models.NewGeminiSource(ctx, cli.GetGeminiKey())
	default:
		return nil, fmt.Errorf("unknown AI backend: %s", backend)
	}
	if err != nil {
		return nil, err
	}
	return source, nil
}

// openNotebook opens the configured store and loads the notebook
func (p *Processor) openNotebook(ctx context.Context) (*notebook.Notebook, func(), error) {
	if err := os.MkdirAll(p.flags.DataDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s, err := store.Open(ctx, store.Config{
		Backend:   p.flags.Storage,
		Path:      p.flags.DataDir,
		RedisAddr: p.flags.RedisAddr,
		RedisDB:   viper.GetInt("storage.redis_db"),
	}, p.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	nb := notebook.New(s,
		notebook.WithAllowRemove(p.flags.AllowRemove),
		notebook.WithLogger(p.logger),
	)
	if err := nb.Load(ctx); err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("failed to load notebook: %w", err)
	}

	closeStore := func() {
		if err := s.Close(); err != nil {
			p.logger.Warn("Failed to close storage", "error", err)
		}
	}
	return nb, closeStore, nil
}

// buildGateway creates the configured backend behind a circuit breaker,
// optionally with the other backend as fallback
func (p *Processor) buildGateway(ctx context.Context) (gateway.Gateway, error) {
	breakerCfg := gateway.DefaultBreakerConfig()
	if n := viper.GetUint32("ai.breaker_failures"); n > 0 {
		breakerCfg.Failures = n
	}
	if d := viper.GetDuration("ai.breaker_timeout"); d > 0 {
		breakerCfg.Timeout = d
	}

	backend := strings.ToLower(p.flags.Backend)
	primary, err := p.newBackend(ctx, backend, true)
	if err != nil {
		return nil, err
	}
	var gw gateway.Gateway = gateway.NewBreaker(primary, breakerCfg, p.logger)

	if p.flags.Fallback {
		other := "openai"
		if backend == "openai" {
			other = "gemini"
		}
		secondary, err := p.newBackend(ctx, other, false)
		if err != nil {
			p.logger.Warn("Fallback backend unavailable", "backend", other, "error", err)
		} else {
			gw = gateway.NewFallback(gw, gateway.NewBreaker(secondary, breakerCfg, p.logger), p.logger)
		}
	}

	p.logger.Info("AI gateway ready", "backend", gw.Name())
	return gw, nil
}

// newBackend creates one backend; model overrides only apply to the primary
func (p *Processor) newBackend(ctx context.Context, backend string, primary bool) (gateway.Gateway, error) {
	text, image, tts := "", "", ""
	if primary {
		text, image, tts = p.flags.TextModel, p.flags.ImageModel, p.flags.TTSModel
	}

	var (
		gw  gateway.Gateway
		err error
	)
	switch backend {
	case "gemini", "":
		gw, err = gateway.NewGeminiClient(ctx, cli.GetGeminiKey(),
			gateway.WithGeminiModels(text, image, tts),
			gateway.WithGeminiLogger(p.logger))
	case "openai":
		gw, err = gateway.NewOpenAIClient(cli.GetOpenAIKey(),
			gateway.WithOpenAIModels(text, image, tts),
			gateway.WithOpenAILogger(p.logger))
	default:
		return nil, fmt.Errorf("unknown AI backend: %s", backend)
	}
	if err != nil {
		return nil, err
	}
	return gw, nil
}

// languages resolves the configured pair; target may be empty when
// requireTarget is false
func (p *Processor) languages(requireTarget bool) (native, target language.Language, err error) {
	native, err = language.Resolve(p.flags.Native)
	if err != nil {
		return native, target, err
	}
	if strings.TrimSpace(p.flags.Target) == "" {
		if requireTarget {
			return native, target, ErrNoTarget
		}
		return native, target, nil
	}
	target, err = language.Resolve(p.flags.Target)
	return native, target, err
}

// ProcessBatch looks up every term of the batch file and saves the results
func (p *Processor) ProcessBatch(ctx context.Context, nb *notebook.Notebook) error {
	native, target, err := p.languages(true)
	if err != nil {
		return err
	}

	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	gw, err := p.newGateway(ctx)
	if err != nil {
		return err
	}

	runner := batch.NewRunner(gw, nb, native.Name, target.Name, !p.flags.SkipImages, p.logger)
	summary, err := runner.Run(ctx, entries)

	fmt.Fprintf(p.out, "\n=== Batch Summary ===\n")
	fmt.Fprintf(p.out, "Total terms: %d\n", len(entries))
	fmt.Fprintf(p.out, "Added: %d\n", len(summary.Added))
	fmt.Fprintf(p.out, "Skipped (already saved): %d\n", len(summary.Skipped))
	if len(summary.Failed) > 0 {
		fmt.Fprintf(p.out, "Failed: %d\n", len(summary.Failed))
	}
	fmt.Fprintf(p.out, "=====================\n")

	return err
}

// ProcessSingleTerm looks up term, prints it and optionally saves it
func (p *Processor) ProcessSingleTerm(ctx context.Context, nb *notebook.Notebook, term string) error {
	native, target, err := p.languages(true)
	if err != nil {
		return err
	}

	gw, err := p.newGateway(ctx)
	if err != nil {
		return err
	}

	result, err := gw.Lookup(ctx, term, native.Name, target.Name)
	if err != nil {
		return fmt.Errorf("%s: %w", session.LookupFailureMessage, err)
	}

	fmt.Fprintf(p.out, "\n%s (%s)\n", result.Word, target)
	fmt.Fprintf(p.out, "  %s\n", result.Definition)
	for i, ex := range result.Examples {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, ex.Text)
		if ex.Translation != "" && ex.Translation != ex.Text {
			fmt.Fprintf(p.out, "     %s\n", ex.Translation)
		}
	}
	if result.FriendlyExplanation != "" {
		fmt.Fprintf(p.out, "  Tip: %s\n", result.FriendlyExplanation)
	}

	if !p.flags.SaveLookup {
		return nil
	}

	if !p.flags.SkipImages {
		if uri, ok := gw.GenerateConceptImage(ctx, result.Word); ok {
			result.ImageURL = uri
		}
	}
	_, added, err := nb.Save(ctx, result)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(p.out, "Saved %q to the notebook.\n", result.Word)
	} else {
		fmt.Fprintf(p.out, "%q is already in the notebook.\n", result.Word)
	}
	return nil
}

// RunShell starts the interactive shell
func (p *Processor) RunShell(ctx context.Context, nb *notebook.Notebook) error {
	gw, err := p.newGateway(ctx)
	if err != nil {
		return err
	}

	opts := []session.Option{
		session.WithNotifier(shell.AlertPrinter{Out: p.out}),
		session.WithLogger(p.logger),
	}
	if speaker := p.newSpeaker(gw); speaker != nil {
		opts = append(opts, session.WithSpeaker(speaker))
	}
	ctrl := session.NewController(gw, nb, opts...)

	native, target, err := p.languages(false)
	if err != nil {
		return err
	}
	if target.Code != "" {
		if err := ctrl.SelectLanguages(native, target); err != nil {
			return err
		}
	}

	return shell.New(ctrl, gw, p.in, p.out, p.logger).Run(ctx)
}

// newSpeaker wires speech playback, or returns nil when audio is off
func (p *Processor) newSpeaker(gw gateway.Gateway) *audio.Speaker {
	if p.flags.NoAudio {
		return nil
	}

	cacheDir := viper.GetString("audio.cache_dir")
	if cacheDir == "" {
		cacheDir = filepath.Join(p.flags.DataDir, "audio-cache")
	}
	cache, err := audio.NewCache(cacheDir)
	if err != nil {
		p.logger.Warn("Speech cache disabled", "dir", cacheDir, "error", err)
		cache = nil
	}

	return audio.NewSpeaker(gw, audio.NewExecPlayer(p.logger), cache, p.logger)
}

// GenerateAnkiFile exports the notebook and returns the output path
func (p *Processor) GenerateAnkiFile(nb *notebook.Notebook) (string, error) {
	items := nb.Items()
	if len(items) == 0 {
		return "", errors.New("the notebook is empty")
	}
	cards := anki.CardsFromItems(items)

	outputPath := p.flags.AnkiOutput
	if outputPath == "" {
		ext := "apkg"
		if p.flags.AnkiCSV {
			ext = "csv"
		}
		name := internal.SanitizeFilename(p.flags.DeckName)
		if name == "" {
			name = "lingopop"
		}
		outputPath = filepath.Join(p.flags.DataDir, "export", name+"."+ext)
	}

	if p.flags.AnkiCSV {
		gen := anki.NewGenerator(&anki.GeneratorOptions{
			OutputPath:     outputPath,
			MediaFolder:    filepath.Join(filepath.Dir(outputPath), "media"),
			IncludeHeaders: true,
		})
		gen.AddCards(cards)
		if err := gen.GenerateCSV(); err != nil {
			return "", fmt.Errorf("failed to generate CSV: %w", err)
		}
		total, withImages := gen.Stats()
		fmt.Fprintf(p.out, "  Generated %d cards (%d with images)\n", total, withImages)
		return outputPath, nil
	}

	gen := anki.NewAPKGGenerator(p.flags.DeckName)
	gen.AddCards(cards)
	if err := gen.GenerateAPKG(outputPath); err != nil {
		return "", fmt.Errorf("failed to generate APKG: %w", err)
	}
	fmt.Fprintf(p.out, "  Generated %d notes\n", len(cards))
	return outputPath, nil
}
