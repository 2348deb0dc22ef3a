package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"AspectScanner/internal/ports"
)

// DictionaryDeps wires the category workflow components.
type DictionaryDeps struct {
	Crawler   ports.CategoryCrawler
	Harvester ports.ArticleHarvester
	Sink      ports.ResultSink
	Logger    *slog.Logger
}

// Dictionary runs the category workflow: crawl the listing into an index,
// export it, harvest each article's morphology, export the dataset and
// the lemma list.
type Dictionary struct {
	crawler   ports.CategoryCrawler
	harvester ports.ArticleHarvester
	sink      ports.ResultSink
	logger    *slog.Logger
}

// NewDictionary constructs the dictionary pipeline.
func NewDictionary(deps DictionaryDeps) *Dictionary {
	return &Dictionary{
		crawler:   deps.Crawler,
		harvester: deps.Harvester,
		sink:      deps.Sink,
		logger:    deps.Logger,
	}
}

// Run executes the workflow against the category seed URL. A harvest
// abort still exports whatever records were accumulated before it.
func (d *Dictionary) Run(ctx context.Context, seedURL string) error {
	index, err := d.crawler.Crawl(ctx, seedURL)
	if err != nil {
		return fmt.Errorf("crawl category: %w", err)
	}
	if err := d.sink.WriteArticleIndex(index); err != nil {
		return fmt.Errorf("write article index: %w", err)
	}

	records, err := d.harvester.Harvest(ctx, index)
	if err != nil {
		// The harvester aborts on the first malformed page. The partial
		// dataset is still worth keeping; flag the abort loudly instead.
		d.logger.Error("harvest aborted, exporting partial dataset",
			"records", len(records), "error", err)
	}

	if err := d.sink.WriteMorphologyDataset(records); err != nil {
		return fmt.Errorf("write morphology dataset: %w", err)
	}
	if err := d.sink.WriteLemmaList(records); err != nil {
		return fmt.Errorf("write lemma list: %w", err)
	}

	return nil
}
