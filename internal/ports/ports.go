package ports

import (
	"context"
	"errors"
	"time"

	"AspectScanner/internal/domain"
)

// Sentinel errors shared by all browser engine adapters. Containment
// decisions in the orchestration layer are made with errors.Is against
// these, never against engine-specific error types.
var (
	// ErrElementNotFound reports that an immediate locate found nothing.
	ErrElementNotFound = errors.New("element not found")
	// ErrWaitTimeout reports that a bounded wait expired before the
	// target element reached the requested state.
	ErrWaitTimeout = errors.New("wait timed out")
	// ErrEngineFault reports an engine-level failure (lost session,
	// failed navigation, driver protocol error).
	ErrEngineFault = errors.New("automation engine fault")
	// ErrInteractionUnsupported reports an interaction the engine cannot
	// perform (e.g. typing into a statically fetched document).
	ErrInteractionUnsupported = errors.New("interaction not supported by engine")
)

// LocatorKind selects the query language of a Locator.
type LocatorKind int

const (
	ByCSS LocatorKind = iota
	ByXPath
)

// Locator is a configured query identifying an element's location strategy.
type Locator struct {
	Kind  LocatorKind
	Query string
}

// CSS builds a CSS selector locator.
func CSS(query string) Locator { return Locator{Kind: ByCSS, Query: query} }

// XPath builds an XPath locator.
func XPath(query string) Locator { return Locator{Kind: ByXPath, Query: query} }

// Browser is the automation capability surface the extraction core runs
// against. One instance owns one driver session; it is passed explicitly
// and must not be shared across concurrent callers: the target
// application holds session-global UI state (pagination position, open
// overlays) that is unsafe to manipulate in parallel.
type Browser interface {
	// Navigate loads the given URL in the session's single page.
	Navigate(ctx context.Context, url string) error
	// Element locates one element immediately, without waiting.
	Element(ctx context.Context, loc Locator) (Element, error)
	// Elements locates all matching elements immediately; no match is an
	// empty slice, not an error.
	Elements(ctx context.Context, loc Locator) ([]Element, error)
	// WaitVisible blocks until the element is rendered visible, up to timeout.
	WaitVisible(ctx context.Context, loc Locator, timeout time.Duration) (Element, error)
	// WaitPresent blocks until the element exists in the DOM, up to timeout.
	WaitPresent(ctx context.Context, loc Locator, timeout time.Duration) (Element, error)
	// WaitVisibleAll blocks until at least one match is visible, then
	// returns every match in document order.
	WaitVisibleAll(ctx context.Context, loc Locator, timeout time.Duration) ([]Element, error)
	// CurrentURL reports the URL of the currently loaded document, used
	// to resolve relative hrefs harvested off the page.
	CurrentURL(ctx context.Context) (string, error)
	// Quit releases the underlying driver session. Safe to call once.
	Quit() error
}

// Element is a located page element.
type Element interface {
	Text() (string, error)
	Click() error
	ScrollIntoView() error
	// Input clears the element and types the given text into it.
	Input(text string) error
	Enabled() (bool, error)
	// Attribute returns the named attribute, or "" when absent.
	Attribute(name string) (string, error)
	// Elements locates matching descendants of this element.
	Elements(loc Locator) ([]Element, error)
}

// WordProcessor runs one word's end-to-end concordance extraction.
type WordProcessor interface {
	ProcessWord(ctx context.Context, word string) (domain.AspectBuckets, error)
}

// CategoryCrawler builds the verb-to-article index from the dictionary
// category listing.
type CategoryCrawler interface {
	Crawl(ctx context.Context, seedURL string) (domain.VerbArticleIndex, error)
}

// ArticleHarvester mines morphological annotation from indexed articles.
type ArticleHarvester interface {
	Harvest(ctx context.Context, index domain.VerbArticleIndex) ([]domain.MorphologyRecord, error)
}

// WordJournal persists processed words for skip-on-rerun/history.
type WordJournal interface {
	AlreadyProcessed(ctx context.Context, words []string) (map[string]bool, error)
	SaveProcessed(ctx context.Context, record domain.ProcessedWord) error
}

// ResultSink writes workflow outputs (per-word buckets, article index,
// morphology dataset) to their external destinations.
type ResultSink interface {
	WriteWordResults(word string, buckets domain.AspectBuckets) error
	WriteArticleIndex(index domain.VerbArticleIndex) error
	WriteMorphologyDataset(records []domain.MorphologyRecord) error
	WriteLemmaList(records []domain.MorphologyRecord) error
}
