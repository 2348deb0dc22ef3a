package domain

import "time"

// WordOccurrenceRecord is one concordance hit with its annotation fields.
// JSON keys are the annotation labels of the source corpus UI; every field
// except the surface form is optional, absence meaning that field's
// extraction failed, not that the record is invalid.
type WordOccurrenceRecord struct {
	MainAnalysis        string `json:"основной анализ,omitempty"`
	SurfaceForm         string `json:"словоформа"`
	Lemma               string `json:"лемма,omitempty"`
	Context             string `json:"контекст,omitempty"`
	Grammar             string `json:"грамматика,omitempty"`
	Semantics           string `json:"семантика,omitempty"`
	RelatedWords        string `json:"похожие слова,omitempty"`
	SyntacticProperties string `json:"синтаксические свойства слова,omitempty"`
	AdditionalFeatures  string `json:"доп. признаки,omitempty"`
}

// AspectBuckets holds one word's classified occurrences. A record lives in
// at most one bucket; occurrences that fail classification are dropped.
type AspectBuckets struct {
	Perfective   []WordOccurrenceRecord
	Imperfective []WordOccurrenceRecord
	BothPossible []WordOccurrenceRecord
}

// Add appends the record to the bucket matching the aspect. Unclassified
// records are discarded.
func (b *AspectBuckets) Add(aspect Aspect, record WordOccurrenceRecord) {
	switch aspect {
	case AspectPerfective:
		b.Perfective = append(b.Perfective, record)
	case AspectImperfective:
		b.Imperfective = append(b.Imperfective, record)
	case AspectBoth:
		b.BothPossible = append(b.BothPossible, record)
	}
}

// Total counts records across all three buckets.
func (b AspectBuckets) Total() int {
	return len(b.Perfective) + len(b.Imperfective) + len(b.BothPossible)
}

// VerbArticleIndex maps a verb lemma to its dictionary article URL.
// Re-harvesting a label overwrites the prior URL (last page wins).
type VerbArticleIndex map[string]string

// MorphologyRecord is the annotation mined from one dictionary article.
type MorphologyRecord struct {
	Lemma             string `json:"лемма"`
	Stress            string `json:"ударение"`
	MorphemicAnalysis string `json:"морфемный разбор"`
}

// ProcessingStatus enumerates per-word outcomes recorded in the journal.
type ProcessingStatus string

const (
	StatusDone   ProcessingStatus = "done"
	StatusFailed ProcessingStatus = "failed"
)

// ProcessedWord is the journal row persisted after each word, used to skip
// already-handled words on re-runs over the same list.
type ProcessedWord struct {
	Word         string
	RunID        string
	Perfective   int
	Imperfective int
	BothPossible int
	Status       ProcessingStatus
	CreatedAt    time.Time
}
