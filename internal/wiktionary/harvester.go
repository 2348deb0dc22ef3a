package wiktionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"AspectScanner/internal/domain"
	"AspectScanner/internal/ports"
)

const (
	// citationMarker gates which articles contribute a record: only
	// analyses citing the Tikhonov 1996 morphemic dictionary qualify.
	citationMarker = "[Тихонов, 1996]"

	paragraphSelector = "p"

	// Fixed positional assumption about the article layout: the first
	// paragraph block carries the stressed form, the third the morphemic
	// analysis. Fragile against layout changes, but that is the contract
	// with the source pages.
	stressBlockIndex    = 0
	morphemicBlockIndex = 2
)

// ErrMalformedArticle reports an article page with fewer paragraph blocks
// than the positional layout requires.
var ErrMalformedArticle = errors.New("article page missing expected paragraph blocks")

// Harvester visits each indexed article once and mines its morphology.
type Harvester struct {
	browser ports.Browser
	logger  *slog.Logger
}

// NewHarvester wires the article harvester.
func NewHarvester(browser ports.Browser, logger *slog.Logger) *Harvester {
	return &Harvester{browser: browser, logger: logger}
}

// Harvest visits every article in the index, in sorted label order, and
// returns records for articles carrying the citation marker. A malformed
// page aborts the entire remaining harvest, returning the records
// accumulated so far alongside the error. That coarse boundary is
// deliberate and kept; see DESIGN.md before changing it to per-item
// containment.
func (h *Harvester) Harvest(ctx context.Context, index domain.VerbArticleIndex) ([]domain.MorphologyRecord, error) {
	labels := make([]string, 0, len(index))
	for label := range index {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var records []domain.MorphologyRecord
	for _, label := range labels {
		url := index[label]

		if err := h.browser.Navigate(ctx, url); err != nil {
			return records, fmt.Errorf("article %s: %w", label, err)
		}

		blocks, err := h.browser.Elements(ctx, ports.CSS(paragraphSelector))
		if err != nil {
			return records, fmt.Errorf("article %s: %w", label, err)
		}
		if len(blocks) <= morphemicBlockIndex {
			h.logger.Error("malformed article page, aborting harvest",
				"label", label, "url", url, "blocks", len(blocks))
			return records, fmt.Errorf("article %s: %w", label, ErrMalformedArticle)
		}

		stress := readText(blocks[stressBlockIndex])
		morphemes := readText(blocks[morphemicBlockIndex])
		if !strings.Contains(morphemes, citationMarker) {
			continue
		}

		records = append(records, domain.MorphologyRecord{
			Lemma:             label,
			Stress:            stress,
			MorphemicAnalysis: morphemes,
		})
	}

	h.logger.Info("harvest finished", "articles", len(labels), "records", len(records))
	return records, nil
}

func readText(el ports.Element) string {
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
