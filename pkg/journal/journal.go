package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// Outcome classifies how a gated submission ended.
type Outcome string

// Submission outcomes.
const (
	OutcomeOK        Outcome = "ok"
	OutcomeError     Outcome = "error"
	OutcomeCancelled Outcome = "cancelled"
)

// Entry is one journaled submission.
type Entry struct {
	// ID is the journal entry identifier. Assigned on Record when empty.
	ID string

	// DocID is the submitted document's identifier.
	DocID string

	// ProductGroup is the goods category the document was submitted under.
	ProductGroup string

	// Outcome classifies the result.
	Outcome Outcome

	// Detail carries the error text or response summary, if any.
	Detail string

	// Wait is how long the caller waited for admission.
	Wait time.Duration

	// CreatedAt is when the submission finished. Assigned on Record when zero.
	CreatedAt time.Time
}

// Journal is a SQLite-backed submission journal.
type Journal struct {
	db        *sql.DB
	closeOnce sync.Once

	insertStmt *sql.Stmt
	listStmt   *sql.Stmt
	pruneStmt  *sql.Stmt
}

const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id            TEXT PRIMARY KEY,
	doc_id        TEXT NOT NULL,
	product_group TEXT NOT NULL,
	outcome       TEXT NOT NULL,
	detail        TEXT NOT NULL DEFAULT '',
	wait_ms       INTEGER NOT NULL,
	created_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at);
`

// Open opens (creating if needed) a journal database at path.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("journal: db path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: failed to apply schema: %w", err)
	}

	j := &Journal{db: db}
	if err := j.prepare(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) prepare() error {
	var err error

	j.insertStmt, err = j.db.Prepare(
		`INSERT INTO submissions (id, doc_id, product_group, outcome, detail, wait_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("journal: preparing insert: %w", err)
	}

	j.listStmt, err = j.db.Prepare(
		`SELECT id, doc_id, product_group, outcome, detail, wait_ms, created_at
		 FROM submissions ORDER BY created_at DESC LIMIT ?`)
	if err != nil {
		return fmt.Errorf("journal: preparing list: %w", err)
	}

	j.pruneStmt, err = j.db.Prepare(
		`DELETE FROM submissions WHERE created_at < ?`)
	if err != nil {
		return fmt.Errorf("journal: preparing prune: %w", err)
	}

	return nil
}

// Record persists one entry. Missing ID and CreatedAt fields are assigned.
func (j *Journal) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := j.insertStmt.ExecContext(ctx,
		entry.ID,
		entry.DocID,
		entry.ProductGroup,
		string(entry.Outcome),
		entry.Detail,
		entry.Wait.Milliseconds(),
		entry.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("journal: recording submission: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := j.listStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: listing submissions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			outcome   string
			waitMs    int64
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.DocID, &e.ProductGroup, &outcome, &e.Detail, &waitMs, &createdAt); err != nil {
			return nil, fmt.Errorf("journal: scanning row: %w", err)
		}
		e.Outcome = Outcome(outcome)
		e.Wait = time.Duration(waitMs) * time.Millisecond
		e.CreatedAt = time.UnixMilli(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: iterating rows: %w", err)
	}
	return entries, nil
}

// Prune deletes entries older than the retention horizon and returns how
// many were removed.
func (j *Journal) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).UnixMilli()

	res, err := j.pruneStmt.ExecContext(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("journal: pruning submissions: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("journal: reading prune result: %w", err)
	}
	return deleted, nil
}

// Close releases the database. It is idempotent.
func (j *Journal) Close() error {
	var err error
	j.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{j.insertStmt, j.listStmt, j.pruneStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		err = j.db.Close()
	})
	return err
}
