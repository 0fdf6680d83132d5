package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hoopsight/courtlog/internal/store"
)

// UploadRepository tracks ingested CSV files.
type UploadRepository struct {
	db *store.Database
}

// NewUploadRepository creates a new upload repository.
func NewUploadRepository(db *store.Database) *UploadRepository {
	return &UploadRepository{db: db}
}

// Create records a newly received file and returns its ID.
func (r *UploadRepository) Create(ctx context.Context, f *store.UploadedFile) (int64, error) {
	query := `
		INSERT INTO uploaded_files (season_id, file_type, filename, stored_path, category, file_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING file_id
	`

	var id int64
	err := r.db.DB().QueryRowContext(ctx, query,
		f.SeasonID, f.FileType, f.Filename, f.StoredPath, f.Category, f.FileDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting uploaded file: %w", err)
	}
	return id, nil
}

// MarkParsed links a successfully parsed file to the game or practice it
// produced and clears any prior error.
func (r *UploadRepository) MarkParsed(ctx context.Context, fileID int64, gameID, practiceID sql.NullInt64, summary sql.NullString) error {
	query := `
		UPDATE uploaded_files
		SET game_id = $2, practice_id = $3, parsed_at = $4, parse_summary = $5, parse_error = NULL
		WHERE file_id = $1
	`

	if _, err := r.db.DB().ExecContext(ctx, query, fileID, gameID, practiceID, time.Now(), summary); err != nil {
		return fmt.Errorf("marking file parsed: %w", err)
	}
	return nil
}

// MarkFailed records why a file could not be parsed.
func (r *UploadRepository) MarkFailed(ctx context.Context, fileID int64, parseErr error) error {
	query := `UPDATE uploaded_files SET parse_error = $2 WHERE file_id = $1`
	if _, err := r.db.DB().ExecContext(ctx, query, fileID, parseErr.Error()); err != nil {
		return fmt.Errorf("marking file failed: %w", err)
	}
	return nil
}

// ListBySeason returns a season's uploads, newest first.
func (r *UploadRepository) ListBySeason(ctx context.Context, seasonID int64) ([]*store.UploadedFile, error) {
	query := `
		SELECT file_id, season_id, game_id, practice_id, file_type, filename, stored_path,
			category, file_date, parsed_at, parse_error, parse_summary, created_at
		FROM uploaded_files
		WHERE season_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying uploaded files: %w", err)
	}
	defer rows.Close()

	var files []*store.UploadedFile
	for rows.Next() {
		f := &store.UploadedFile{}
		if err := rows.Scan(
			&f.FileID, &f.SeasonID, &f.GameID, &f.PracticeID, &f.FileType, &f.Filename, &f.StoredPath,
			&f.Category, &f.FileDate, &f.ParsedAt, &f.ParseError, &f.ParseSummary, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning uploaded file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// GetByFilename returns the most recent upload record for a filename.
// Returns nil without error when the file has never been uploaded.
func (r *UploadRepository) GetByFilename(ctx context.Context, seasonID int64, filename string) (*store.UploadedFile, error) {
	query := `
		SELECT file_id, season_id, game_id, practice_id, file_type, filename, stored_path,
			category, file_date, parsed_at, parse_error, parse_summary, created_at
		FROM uploaded_files
		WHERE season_id = $1 AND filename = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	f := &store.UploadedFile{}
	err := r.db.DB().QueryRowContext(ctx, query, seasonID, filename).Scan(
		&f.FileID, &f.SeasonID, &f.GameID, &f.PracticeID, &f.FileType, &f.Filename, &f.StoredPath,
		&f.Category, &f.FileDate, &f.ParsedAt, &f.ParseError, &f.ParseSummary, &f.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying uploaded file: %w", err)
	}
	return f, nil
}
