package dataset

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider reads examples from a SQLite database. Records live in an
// examples table partitioned by split; the id order within a split defines
// the episode index order. Record ids are loaded once at open so Len and
// index mapping stay stable even if the file changes underneath a run.
type SQLiteProvider struct {
	db  *sql.DB
	ids []int64
}

// OpenSQLite opens the database at path and binds the provider to split.
func OpenSQLite(ctx context.Context, path, split string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT id FROM examples WHERE split = ? ORDER BY id`, split)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to query examples: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to scan example id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error iterating example ids: %w", err)
	}

	return &SQLiteProvider{db: db, ids: ids}, nil
}

// Close releases the database connection.
func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}

// Len returns the number of records in the bound split.
func (p *SQLiteProvider) Len() int {
	return len(p.ids)
}

// Get returns the record at index within the bound split.
func (p *SQLiteProvider) Get(index int) (Record, error) {
	if index < 0 || index >= len(p.ids) {
		return Record{}, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, index, len(p.ids))
	}

	var rec Record
	err := p.db.QueryRow(`SELECT question, answer FROM examples WHERE id = ?`, p.ids[index]).
		Scan(&rec.Question, &rec.Answer)
	if err != nil {
		return Record{}, fmt.Errorf("failed to load example %d: %w", index, err)
	}
	return rec, nil
}

// sqliteSchema creates the examples table used by SQLite-backed datasets.
const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS examples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		split TEXT NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_examples_split ON examples(split);
`

// WriteSQLite appends records to the examples table at path under split,
// creating the schema if needed. Used by `epirun import` and test fixtures.
func WriteSQLite(ctx context.Context, path, split string, records []Record) error {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO examples (split, question, answer) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, split, rec.Question, rec.Answer); err != nil {
			return fmt.Errorf("failed to insert example: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit examples: %w", err)
	}
	return nil
}
