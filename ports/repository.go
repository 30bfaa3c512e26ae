package ports

import (
	"context"
	"time"
)

// Upload records one spreadsheet uploaded for report generation.
type Upload struct {
	ID               string    `db:"id" json:"id"`
	OriginalFilename string    `db:"original_filename" json:"original_filename"`
	FilePath         string    `db:"file_path" json:"-"`
	FileSize         int64     `db:"file_size" json:"file_size"`
	RowCount         int       `db:"row_count" json:"row_count"`
	ColumnCount      int       `db:"column_count" json:"column_count"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// UploadRepository persists upload metadata. File contents stay on disk;
// only bookkeeping lives in the database.
type UploadRepository interface {
	Create(ctx context.Context, up *Upload) error
	GetByID(ctx context.Context, id string) (*Upload, error)
	List(ctx context.Context, limit, offset int) ([]*Upload, error)
	Delete(ctx context.Context, id string) error
}
