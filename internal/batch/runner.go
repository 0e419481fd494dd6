package batch

import (
	"context"
	"fmt"

	"codeberg.org/snonux/lingopop/internal/dictionary"
	"codeberg.org/snonux/lingopop/internal/gateway"
	"codeberg.org/snonux/lingopop/internal/logger"
)

// Saver stores lookup results
type Saver interface {
	Save(ctx context.Context, result *dictionary.Result) (dictionary.NotebookItem, bool, error)
}

// Summary reports what a run did
type Summary struct {
	Added   []string
	Skipped []string
	Failed  map[string]error
}

// Runner looks up entries one after another
type Runner struct {
	gateway    gateway.Gateway
	saver      Saver
	nativeLang string
	targetLang string
	withImages bool
	logger     *logger.Logger
}

// NewRunner creates a runner for the language pair
func NewRunner(gw gateway.Gateway, saver Saver, nativeLang, targetLang string, withImages bool, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNop()
	}
	return &Runner{
		gateway:    gw,
		saver:      saver,
		nativeLang: nativeLang,
		targetLang: targetLang,
		withImages: withImages,
		logger:     log,
	}
}

// Run processes every entry. A failing entry does not stop the run; the
// returned error is only set when ctx is done.
func (r *Runner) Run(ctx context.Context, entries []Entry) (Summary, error) {
	summary := Summary{Failed: make(map[string]error)}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		fmt.Printf("[%d/%d] %s\n", i+1, len(entries), entry.Term)

		result, err := r.gateway.Lookup(ctx, entry.Term, r.nativeLang, r.targetLang)
		if err != nil {
			r.logger.Warn("Batch lookup failed", "term", entry.Term, "line", entry.Line, "error", err)
			summary.Failed[entry.Term] = err
			continue
		}
		dictionary.Normalize(result)
		result.ImageURL = ""

		if r.withImages {
			if uri, ok := r.gateway.GenerateConceptImage(ctx, result.Word); ok {
				result.ImageURL = uri
			}
		}

		_, added, err := r.saver.Save(ctx, result)
		if err != nil {
			summary.Failed[entry.Term] = err
			continue
		}
		if added {
			summary.Added = append(summary.Added, result.Word)
		} else {
			summary.Skipped = append(summary.Skipped, result.Word)
		}
	}

	return summary, nil
}
