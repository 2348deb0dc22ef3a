package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"AspectScanner/internal/domain"
	"AspectScanner/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS processed_words (
	word TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	perfective INTEGER NOT NULL DEFAULT 0,
	imperfective INTEGER NOT NULL DEFAULT 0,
	both_possible INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteJournal persists processed words into SQLite so re-runs over the
// same word list can skip what an earlier run already handled.
type SQLiteJournal struct {
	db    *sql.DB
	runID string
}

var _ ports.WordJournal = (*SQLiteJournal)(nil)

// Open opens (creating if needed) the journal database and assigns this
// process a fresh run id.
func Open(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &SQLiteJournal{db: db, runID: uuid.NewString()}, nil
}

// RunID identifies this process's run in saved rows.
func (j *SQLiteJournal) RunID() string {
	return j.runID
}

// AlreadyProcessed returns a map with the words that already exist in the
// journal, regardless of which run recorded them.
func (j *SQLiteJournal) AlreadyProcessed(ctx context.Context, words []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if j.db == nil || len(words) == 0 {
		return result, nil
	}

	query, args, err := sq.Select("word").
		From("processed_words").
		Where(sq.Eq{"word": words}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build processed query: %w", err)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query processed: %w", err)
	}

	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan word: %w", err)
		}
		result[word] = true
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// SaveProcessed upserts the word's outcome snapshot.
func (j *SQLiteJournal) SaveProcessed(ctx context.Context, record domain.ProcessedWord) error {
	if j.db == nil {
		return nil
	}

	runID := record.RunID
	if runID == "" {
		runID = j.runID
	}

	query, args, err := sq.Insert("processed_words").
		Columns("word", "run_id", "perfective", "imperfective", "both_possible", "status").
		Values(record.Word, runID, record.Perfective, record.Imperfective, record.BothPossible, string(record.Status)).
		Suffix(`ON CONFLICT(word) DO UPDATE SET
			run_id = excluded.run_id,
			perfective = excluded.perfective,
			imperfective = excluded.imperfective,
			both_possible = excluded.both_possible,
			status = excluded.status,
			created_at = CURRENT_TIMESTAMP`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := j.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert processed word: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (j *SQLiteJournal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}
