package corpus

import (
	"context"
	"log/slog"
	"time"

	"AspectScanner/internal/ports"
)

// Paginator advances the result listing to its next page.
type Paginator struct {
	browser ports.Browser
	settle  time.Duration
	logger  *slog.Logger
}

// NewPaginator wires the pagination controller; settle is the pause
// applied after a successful page flip.
func NewPaginator(browser ports.Browser, settle time.Duration, logger *slog.Logger) *Paginator {
	return &Paginator{browser: browser, settle: settle, logger: logger}
}

// Advance clicks the next-page control if it exists and is enabled, then
// lets the listing settle. Absence, a disabled control, or any fault means
// no more pages; there are no retries.
func (p *Paginator) Advance(ctx context.Context) bool {
	next, err := p.browser.Element(ctx, ports.CSS(nextPageSelector))
	if err != nil {
		p.logger.Debug("no next page control", "error", err)
		return false
	}

	enabled, err := next.Enabled()
	if err != nil {
		p.logger.Debug("next page state check failed", "error", err)
		return false
	}
	if !enabled {
		return false
	}

	if err := next.Click(); err != nil {
		p.logger.Debug("next page click failed", "error", err)
		return false
	}

	pause(ctx, p.settle)
	return true
}
