package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"AspectScanner/internal/domain"
	"AspectScanner/internal/ports"
)

// BatchDeps wires the driven adapters into the word-batch pipeline.
type BatchDeps struct {
	Processor ports.WordProcessor
	Journal   ports.WordJournal
	Sink      ports.ResultSink
	Logger    *slog.Logger
}

// Batch runs the corpus workflow over a word list: one sequential
// ProcessWord per word, results exported and journaled as it goes. A
// failed word never aborts the batch; only export faults end the run.
type Batch struct {
	processor ports.WordProcessor
	journal   ports.WordJournal
	sink      ports.ResultSink
	logger    *slog.Logger
}

// NewBatch constructs the batch pipeline.
func NewBatch(deps BatchDeps) *Batch {
	return &Batch{
		processor: deps.Processor,
		journal:   deps.Journal,
		sink:      deps.Sink,
		logger:    deps.Logger,
	}
}

// Run processes every word in order, skipping words an earlier run
// already journaled.
func (b *Batch) Run(ctx context.Context, words []string) error {
	if b.processor == nil {
		return nil
	}

	skip := map[string]bool{}
	if b.journal != nil && len(words) > 0 {
		var err error
		skip, err = b.journal.AlreadyProcessed(ctx, words)
		if err != nil {
			return fmt.Errorf("load processed words: %w", err)
		}
	}

	for _, word := range words {
		if skip[word] {
			b.logger.Info("skipping already processed word", "word", word)
			continue
		}

		b.logger.Info("processing word", "word", word)
		buckets, err := b.processor.ProcessWord(ctx, word)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Driver-level fault for this word: log, journal the
			// failure, move on. The batch over all words continues.
			b.logger.Error("word processing failed", "word", word, "error", err)
			b.record(ctx, word, buckets, domain.StatusFailed)
			continue
		}

		if b.sink != nil {
			if err := b.sink.WriteWordResults(word, buckets); err != nil {
				return fmt.Errorf("write results for %s: %w", word, err)
			}
		}
		b.record(ctx, word, buckets, domain.StatusDone)

		b.logger.Info("word done", "word", word,
			"perfective", len(buckets.Perfective),
			"imperfective", len(buckets.Imperfective),
			"both_possible", len(buckets.BothPossible))
	}

	return nil
}

// record journals the word's outcome. Journaling is best effort: a
// journal fault costs skip-on-rerun, not the run itself.
func (b *Batch) record(ctx context.Context, word string, buckets domain.AspectBuckets, status domain.ProcessingStatus) {
	if b.journal == nil {
		return
	}
	err := b.journal.SaveProcessed(ctx, domain.ProcessedWord{
		Word:         word,
		Perfective:   len(buckets.Perfective),
		Imperfective: len(buckets.Imperfective),
		BothPossible: len(buckets.BothPossible),
		Status:       status,
	})
	if err != nil {
		b.logger.Warn("journal save failed", "word", word, "error", err)
	}
}
