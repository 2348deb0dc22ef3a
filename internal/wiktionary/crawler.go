// Package wiktionary drives the dictionary category workflow: crawl the
// biaspectual-verb category listing into a verb-to-article index, then
// mine each article for morphological annotation.
package wiktionary

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"AspectScanner/internal/domain"
	"AspectScanner/internal/ports"
)

const (
	// maxListingPages bounds the category traversal regardless of how
	// many next-page links the listing offers.
	maxListingPages = 7

	// skipLabel is a known non-entry rendered inside the category
	// listing that must not enter the index.
	skipLabel = "рещи"

	listingContainerSelector = "div.mw-category-generated"
	entryGroupSelector       = "#mw-pages > div"
	anchorSelector           = "a"

	// The next-page link sits at a different child position once the
	// extra "previous" link appears after page 1.
	nextLinkFirstPage = "#mw-pages > a:nth-child(3)"
	nextLinkLaterPage = "#mw-pages > a:nth-child(4)"
)

// Crawler harvests (label, URL) pairs from the paginated category listing.
type Crawler struct {
	browser ports.Browser
	timeout time.Duration
	logger  *slog.Logger
}

// NewCrawler wires the category crawler.
func NewCrawler(browser ports.Browser, timeout time.Duration, logger *slog.Logger) *Crawler {
	return &Crawler{browser: browser, timeout: timeout, logger: logger}
}

// Crawl walks up to seven listing pages and merges their entries into one
// index, later pages overwriting same-label entries. The error is non-nil
// only for the initial navigation; any fault inside the loop silently ends
// the crawl and the partial index is kept.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) (domain.VerbArticleIndex, error) {
	index := domain.VerbArticleIndex{}

	if err := c.browser.Navigate(ctx, seedURL); err != nil {
		return index, err
	}

	for page := 1; page <= maxListingPages; page++ {
		c.logger.Info("processing category page", "page", page)

		if _, err := c.browser.WaitPresent(ctx, ports.CSS(listingContainerSelector), c.timeout); err != nil {
			c.logger.Debug("category listing not present, stopping", "page", page, "error", err)
			break
		}

		c.harvestPage(ctx, index)

		nextSelector := nextLinkLaterPage
		if page == 1 {
			nextSelector = nextLinkFirstPage
		}
		next, err := c.browser.WaitPresent(ctx, ports.CSS(nextSelector), c.timeout)
		if err != nil {
			c.logger.Debug("no next category page, stopping", "page", page, "error", err)
			break
		}
		if err := next.Click(); err != nil {
			c.logger.Debug("next category page click failed, stopping", "page", page, "error", err)
			break
		}
	}

	c.logger.Info("category crawl finished", "entries", len(index))
	return index, nil
}

func (c *Crawler) harvestPage(ctx context.Context, index domain.VerbArticleIndex) {
	groups, err := c.browser.Elements(ctx, ports.CSS(entryGroupSelector))
	if err != nil {
		c.logger.Debug("entry groups lookup failed", "error", err)
		return
	}

	// Article hrefs may be page-relative; resolve them against the
	// listing page so the harvester can navigate to them directly.
	var base *url.URL
	if current, err := c.browser.CurrentURL(ctx); err == nil {
		base, _ = url.Parse(current)
	}

	for _, group := range groups {
		anchors, err := group.Elements(ports.CSS(anchorSelector))
		if err != nil {
			continue
		}
		for _, anchor := range anchors {
			label, err := anchor.Text()
			if err != nil {
				continue
			}
			label = strings.TrimSpace(label)
			if label == "" || label == skipLabel {
				continue
			}

			href, err := anchor.Attribute("href")
			if err != nil {
				continue
			}
			index[label] = resolveHref(base, strings.TrimSpace(href))
		}
	}
}

func resolveHref(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
