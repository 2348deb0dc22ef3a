package corpus

import (
	"context"
	"log/slog"
	"time"

	"AspectScanner/internal/config"
	"AspectScanner/internal/domain"
	"AspectScanner/internal/ports"
)

// maxResultPages bounds the search result traversal regardless of how
// many pages the pagination reports.
const maxResultPages = 10

// SessionConfig carries the settings of one search session.
type SessionConfig struct {
	SeedURL          string
	SearchInputXPath string
	Timeout          time.Duration
	Delays           config.DelaysConfig
}

// Session drives one word's end-to-end concordance extraction: navigate,
// submit the query, walk the result pages, open each hit's detail overlay,
// extract and classify. Recoverable faults never escape ProcessWord; they
// are logged and the call returns whatever buckets accumulated so far.
type Session struct {
	browser   ports.Browser
	cfg       SessionConfig
	extractor *Extractor
	paginator *Paginator
	logger    *slog.Logger
}

var _ ports.WordProcessor = (*Session)(nil)

// NewSession wires the search session orchestrator.
func NewSession(browser ports.Browser, cfg SessionConfig, selectors config.SelectorConfig, logger *slog.Logger) *Session {
	return &Session{
		browser:   browser,
		cfg:       cfg,
		extractor: NewExtractor(browser, selectors, cfg.Timeout, logger.With("component", "extractor")),
		paginator: NewPaginator(browser, cfg.Delays.Paginate, logger.With("component", "paginator")),
		logger:    logger,
	}
}

// ProcessWord collects and classifies every concordance occurrence of the
// word. The returned error is non-nil only for an engine-level fault at
// the top of the drive; per-step faults are contained.
func (s *Session) ProcessWord(ctx context.Context, word string) (domain.AspectBuckets, error) {
	var buckets domain.AspectBuckets

	if err := s.navigateToSearch(ctx); err != nil {
		return buckets, err
	}
	if !s.submitQuery(ctx, word) {
		return buckets, nil
	}

	for page := 1; page <= maxResultPages; page++ {
		s.logger.Info("processing page", "word", word, "page", page)

		hits, err := s.browser.WaitVisibleAll(ctx, ports.CSS(hitWordSelector), s.cfg.Timeout)
		if err != nil {
			s.logger.Warn("no hits on page", "word", word, "page", page, "error", err)
			break
		}

		for i, hit := range hits {
			record, ok := s.processHit(ctx, hit, i+1)
			if !ok {
				continue
			}
			buckets.Add(domain.ClassifyAspect(record.Grammar), record)
		}

		if !s.paginator.Advance(ctx) {
			break
		}
	}

	return buckets, nil
}

// navigateToSearch loads the seed URL and lets the app settle; the target
// exposes no readiness signal beyond this pause.
func (s *Session) navigateToSearch(ctx context.Context) error {
	if err := s.browser.Navigate(ctx, s.cfg.SeedURL); err != nil {
		return err
	}
	pause(ctx, s.cfg.Delays.Navigate)
	return nil
}

// submitQuery types the word into the search input and clicks the submit
// control. A locate or timeout fault here ends the word without error.
func (s *Session) submitQuery(ctx context.Context, word string) bool {
	input, err := s.browser.WaitVisible(ctx, ports.CSS(queryInputSelector), s.cfg.Timeout)
	if err != nil {
		s.logger.Warn("search input not available", "word", word, "error", err)
		return false
	}
	if err := input.Input(word); err != nil {
		s.logger.Warn("typing query failed", "word", word, "error", err)
		return false
	}

	submit, err := s.browser.Element(ctx, ports.XPath(s.cfg.SearchInputXPath))
	if err != nil {
		s.logger.Warn("search submit not available", "word", word, "error", err)
		return false
	}
	if err := submit.Click(); err != nil {
		s.logger.Warn("search submit click failed", "word", word, "error", err)
		return false
	}

	return true
}

// processHit opens the hit's detail overlay, extracts its fields, and
// closes the overlay again. The close click runs on every exit path once
// the overlay was opened; a left-open overlay corrupts all subsequent
// pagination and extraction.
func (s *Session) processHit(ctx context.Context, hit ports.Element, position int) (domain.WordOccurrenceRecord, bool) {
	if err := hit.ScrollIntoView(); err != nil {
		s.logger.Warn("scroll to hit failed", "position", position, "error", err)
		return domain.WordOccurrenceRecord{}, false
	}
	pause(ctx, s.cfg.Delays.Scroll)

	if err := hit.Click(); err != nil {
		s.logger.Warn("open detail overlay failed", "position", position, "error", err)
		return domain.WordOccurrenceRecord{}, false
	}
	defer s.closeOverlay(ctx)

	surface, err := hit.Text()
	if err != nil {
		s.logger.Warn("read hit text failed", "position", position, "error", err)
		return domain.WordOccurrenceRecord{}, false
	}

	return s.extractor.ExtractRecord(ctx, surface, position), true
}

func (s *Session) closeOverlay(ctx context.Context) {
	closeButton, err := s.browser.Element(ctx, ports.CSS(closeOverlaySelector))
	if err != nil {
		s.logger.Warn("overlay close control not found", "error", err)
		return
	}
	if err := closeButton.Click(); err != nil {
		s.logger.Warn("overlay close click failed", "error", err)
	}
}

// pause sleeps for the named settle duration, honoring cancellation.
// Zero-duration delays make it a no-op, which tests rely on.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
