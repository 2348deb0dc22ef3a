// Package export writes workflow results as UTF-8 JSON files with
// human-readable indentation and non-ASCII left unescaped, matching the
// format downstream annotation tooling consumes.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"AspectScanner/internal/domain"
	"AspectScanner/internal/ports"
)

const (
	indexFileName     = "dict_articles_urls.json"
	datasetFileName   = "morphonology_dataset.json"
	lemmaListFileName = "biaspectives_relevant_list.txt"
)

// Dir writes all result files under one output directory.
type Dir struct {
	dir string
}

var _ ports.ResultSink = (*Dir)(nil)

// NewDir ensures the output directory exists and returns a sink over it.
func NewDir(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &Dir{dir: dir}, nil
}

// WriteWordResults writes the word's three aspect buckets as
// <word>_perf.json, <word>_imp.json and <word>_both.json. Empty buckets
// produce empty arrays, not null.
func (d *Dir) WriteWordResults(word string, buckets domain.AspectBuckets) error {
	files := map[string][]domain.WordOccurrenceRecord{
		word + "_perf.json": buckets.Perfective,
		word + "_imp.json":  buckets.Imperfective,
		word + "_both.json": buckets.BothPossible,
	}
	for name, records := range files {
		if records == nil {
			records = []domain.WordOccurrenceRecord{}
		}
		if err := d.writeJSON(name, records); err != nil {
			return err
		}
	}
	return nil
}

// WriteArticleIndex writes the label-to-URL object.
func (d *Dir) WriteArticleIndex(index domain.VerbArticleIndex) error {
	return d.writeJSON(indexFileName, index)
}

// WriteMorphologyDataset writes the mined records array.
func (d *Dir) WriteMorphologyDataset(records []domain.MorphologyRecord) error {
	if records == nil {
		records = []domain.MorphologyRecord{}
	}
	return d.writeJSON(datasetFileName, records)
}

// WriteLemmaList writes one lemma per line, in dataset order.
func (d *Dir) WriteLemmaList(records []domain.MorphologyRecord) error {
	path := filepath.Join(d.dir, lemmaListFileName)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	for _, record := range records {
		if _, err := fmt.Fprintln(file, record.Lemma); err != nil {
			file.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func (d *Dir) writeJSON(name string, value any) error {
	path := filepath.Join(d.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
