package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
)

const defaultListLimit = 50

// CaseRepository stores completed analyses for the case review screens.
// The full mapped result lives in a JSONB column; the flat columns exist
// for listing and filtering without unpacking the document.
type CaseRepository struct {
	db *sql.DB
}

func NewCaseRepository(db *sql.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *CaseRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026040201)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS cases (
	case_id TEXT PRIMARY KEY,
	status TEXT NOT NULL DEFAULT 'completed',
	qualified BOOLEAN NOT NULL DEFAULT FALSE,
	handwriting_warning BOOLEAN NOT NULL DEFAULT FALSE,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cases_created_at ON cases(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// Create inserts a case record. A re-analysis of the same case id replaces
// the stored result.
func (r *CaseRepository) Create(ctx context.Context, record domain.CaseRecord) error {
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO cases (case_id, status, qualified, handwriting_warning, result, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (case_id) DO UPDATE SET
	status = EXCLUDED.status,
	qualified = EXCLUDED.qualified,
	handwriting_warning = EXCLUDED.handwriting_warning,
	result = EXCLUDED.result,
	updated_at = EXCLUDED.updated_at
`,
		record.CaseID, string(record.Status), record.Qualified, record.HandwritingWarning,
		resultJSON, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert case: %w", err)
	}
	return nil
}

func (r *CaseRepository) GetByID(ctx context.Context, caseID string) (*domain.CaseRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT case_id, status, qualified, handwriting_warning, result, created_at, updated_at
FROM cases
WHERE case_id = $1
`, caseID)

	record, err := scanCase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrCaseNotFound, "fetch case", err)
		}
		return nil, fmt.Errorf("fetch case: %w", err)
	}
	return record, nil
}

func (r *CaseRepository) List(ctx context.Context, limit int) ([]domain.CaseRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT case_id, status, qualified, handwriting_warning, result, created_at, updated_at
FROM cases
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var records []domain.CaseRecord
	for rows.Next() {
		record, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan case row: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case rows: %w", err)
	}
	return records, nil
}

// UpdateStatus moves a case through its lifecycle without touching the
// stored result.
func (r *CaseRepository) UpdateStatus(ctx context.Context, caseID string, status domain.CaseStatus) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE cases
SET status = $2, updated_at = $3
WHERE case_id = $1
`, caseID, string(status), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update case status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update case status rows: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrCaseNotFound, "update case status", sql.ErrNoRows)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*domain.CaseRecord, error) {
	var record domain.CaseRecord
	var resultRaw []byte
	var status string

	err := row.Scan(
		&record.CaseID, &status, &record.Qualified, &record.HandwritingWarning,
		&resultRaw, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resultRaw, &record.Result); err != nil {
		return nil, fmt.Errorf("unmarshal stored result: %w", err)
	}
	record.Status = domain.CaseStatus(status)
	return &record, nil
}
