// Package postgres persists upload bookkeeping. Spreadsheet contents stay
// on disk; only metadata lands in the database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shoumique/employee-reporter/internal/errors"
	"github.com/shoumique/employee-reporter/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS uploads (
	id                TEXT PRIMARY KEY,
	original_filename TEXT NOT NULL,
	file_path         TEXT NOT NULL,
	file_size         BIGINT NOT NULL DEFAULT 0,
	row_count         INTEGER NOT NULL DEFAULT 0,
	column_count      INTEGER NOT NULL DEFAULT 0,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// uploadRepository implements ports.UploadRepository on sqlx.
type uploadRepository struct {
	db *sqlx.DB
}

// NewUploadRepository creates the repository and ensures its table exists.
func NewUploadRepository(db *sqlx.DB) (ports.UploadRepository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, errors.DatabaseError(fmt.Sprintf("failed to ensure uploads table: %v", err))
	}
	return &uploadRepository{db: db}, nil
}

func (r *uploadRepository) Create(ctx context.Context, up *ports.Upload) error {
	query := `INSERT INTO uploads (
		id, original_filename, file_path, file_size, row_count, column_count, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		up.ID, up.OriginalFilename, up.FilePath, up.FileSize, up.RowCount, up.ColumnCount, up.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to create upload")
	}
	return nil
}

func (r *uploadRepository) GetByID(ctx context.Context, id string) (*ports.Upload, error) {
	query := `SELECT id, original_filename, file_path,
		COALESCE(file_size, 0) AS file_size,
		COALESCE(row_count, 0) AS row_count,
		COALESCE(column_count, 0) AS column_count,
		created_at
	FROM uploads WHERE id = $1`

	var up ports.Upload
	if err := r.db.GetContext(ctx, &up, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("upload")
		}
		return nil, errors.Wrapf(err, "failed to get upload %s", id)
	}
	return &up, nil
}

func (r *uploadRepository) List(ctx context.Context, limit, offset int) ([]*ports.Upload, error) {
	query := `SELECT id, original_filename, file_path,
		COALESCE(file_size, 0) AS file_size,
		COALESCE(row_count, 0) AS row_count,
		COALESCE(column_count, 0) AS column_count,
		created_at
	FROM uploads ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var uploads []*ports.Upload
	if err := r.db.SelectContext(ctx, &uploads, query, limit, offset); err != nil {
		return nil, errors.Wrap(err, "failed to list uploads")
	}
	return uploads, nil
}

func (r *uploadRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE id = $1`, id); err != nil {
		return errors.Wrapf(err, "failed to delete upload %s", id)
	}
	return nil
}
