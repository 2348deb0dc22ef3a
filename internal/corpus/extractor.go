package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"AspectScanner/internal/config"
	"AspectScanner/internal/domain"
	"AspectScanner/internal/ports"
)

// Fixed locators of the corpus UI. The detail-field selectors come from
// configuration; these structural ones do not vary per deployment.
const (
	queryInputSelector   = ".the-input__input"
	hitWordSelector      = ".hit.word"
	closeOverlaySelector = "button.info-modal__close"
	nextPageSelector     = ".ant-pagination-next:not(.ant-pagination-disabled)"

	// The context paragraph is resolved through the hit's 1-based page
	// position: the n-th hit span, then its ancestor sentence paragraph.
	contextXPathTemplate = "(//span[@class='hit word'])[position()=%d]/ancestor::p[contains(@class, 'seq-with-actions')]"
)

// Extractor pulls the annotation fields from the currently open detail
// overlay. Every field is attempted independently; a failed field is
// logged and left empty, never fatal for the record.
type Extractor struct {
	browser   ports.Browser
	selectors config.SelectorConfig
	timeout   time.Duration
	logger    *slog.Logger
}

// NewExtractor wires the overlay field extractor.
func NewExtractor(browser ports.Browser, selectors config.SelectorConfig, timeout time.Duration, logger *slog.Logger) *Extractor {
	return &Extractor{browser: browser, selectors: selectors, timeout: timeout, logger: logger}
}

// ExtractRecord attempts all nine fields for the hit at the given 1-based
// page position, surfaceForm being the hit element's own rendered text.
func (e *Extractor) ExtractRecord(ctx context.Context, surfaceForm string, position int) domain.WordOccurrenceRecord {
	return domain.WordOccurrenceRecord{
		MainAnalysis:        e.extractVisible(ctx, "main analysis", ports.CSS(e.selectors.MainAnalysis)),
		SurfaceForm:         surfaceForm,
		Lemma:               e.ExtractLemma(ctx),
		Context:             e.ExtractContext(ctx, position),
		Grammar:             e.extractVisible(ctx, "grammar", ports.CSS(e.selectors.Grammar)),
		Semantics:           e.extractVisible(ctx, "semantics", ports.CSS(e.selectors.Semantics)),
		RelatedWords:        e.extractVisible(ctx, "related words", ports.CSS(e.selectors.RelatedWords)),
		SyntacticProperties: e.firstPresent(ctx, "syntactic properties", e.selectors.SyntacticProperties),
		AdditionalFeatures:  e.firstPresent(ctx, "additional features", e.selectors.AdditionalFeatures),
	}
}

// ExtractLemma reads the lemma field; lemmas are lower-cased, the only
// field with case normalization.
func (e *Extractor) ExtractLemma(ctx context.Context) string {
	return strings.ToLower(e.extractVisible(ctx, "lemma", ports.CSS(e.selectors.Lemma)))
}

// ExtractContext reads the sentence paragraph containing the hit at the
// given 1-based position.
func (e *Extractor) ExtractContext(ctx context.Context, position int) string {
	locator := ports.XPath(fmt.Sprintf(contextXPathTemplate, position))
	return e.extractVisible(ctx, "context", locator)
}

func (e *Extractor) extractVisible(ctx context.Context, field string, loc ports.Locator) string {
	el, err := e.browser.WaitVisible(ctx, loc, e.timeout)
	if err != nil {
		e.logger.Debug("field extraction failed", "field", field, "error", err)
		return ""
	}
	text, err := el.Text()
	if err != nil {
		e.logger.Debug("field text read failed", "field", field, "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}

// firstPresent tries each candidate selector strictly in order, moving on
// only after the previous one timed out, and returns the first resolved
// text. These fields render under different selectors depending on lemma
// type, so presence (not visibility) is what is waited for.
func (e *Extractor) firstPresent(ctx context.Context, field string, candidates []string) string {
	for _, css := range candidates {
		el, err := e.browser.WaitPresent(ctx, ports.CSS(css), e.timeout)
		if err != nil {
			continue
		}
		text, err := el.Text()
		if err != nil {
			continue
		}
		return strings.TrimSpace(text)
	}
	e.logger.Debug("field extraction failed for all candidates", "field", field, "candidates", len(candidates))
	return ""
}
