package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hoopsight/courtlog/internal/store"
	"github.com/hoopsight/courtlog/internal/store/repository"
)

// ReparseService re-runs the parser over files already on disk, refreshing
// stored numbers after a parser change without re-uploading anything.
type ReparseService struct {
	parser  *ParseService
	uploads *repository.UploadRepository
}

// NewReparseService creates a reparse service.
func NewReparseService(db *store.Database, parser *ParseService) *ReparseService {
	return &ReparseService{
		parser:  parser,
		uploads: repository.NewUploadRepository(db),
	}
}

// ReparseReport summarizes one bulk reparse run.
type ReparseReport struct {
	Total    int               `json:"total"`
	Parsed   int               `json:"parsed"`
	Failures map[string]string `json:"failures,omitempty"`
}

// ReparseSeason re-parses every previously parsed file in a season.
// Files run concurrently; each file's delete-then-insert stays atomic
// inside its own transaction. A bad file is reported, not fatal.
func (s *ReparseService) ReparseSeason(ctx context.Context, seasonID int64, concurrency int) (*ReparseReport, error) {
	files, err := s.uploads.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	if concurrency < 1 {
		concurrency = 1
	}

	report := &ReparseReport{Failures: make(map[string]string)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, f := range files {
		if !f.ParsedAt.Valid {
			continue
		}
		report.Total++
		f := f
		g.Go(func() error {
			err := s.reparseFile(gctx, seasonID, f)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error().Err(err).Str("filename", f.Filename).Msg("Reparse failed")
				report.Failures[f.Filename] = err.Error()
				return nil
			}
			report.Parsed++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReparseService) reparseFile(ctx context.Context, seasonID int64, f *store.UploadedFile) error {
	switch f.FileType {
	case "game":
		// Refuses to create a game row: a reparse of a deleted game is an
		// error, not a fresh ingest.
		result, err := s.parser.ReparseGameFile(ctx, seasonID, f.StoredPath)
		if err != nil {
			return err
		}
		return s.uploads.MarkParsed(ctx, f.FileID,
			sql.NullInt64{Int64: result.GameID, Valid: true}, sql.NullInt64{}, parseSummary(result))
	case "practice":
		if !f.Category.Valid {
			return fmt.Errorf("practice file %s has no category", f.Filename)
		}
		result, err := s.parser.ParsePracticeFile(ctx, seasonID, f.StoredPath, f.Category.String, fileDate(f))
		if err != nil {
			return err
		}
		return s.uploads.MarkParsed(ctx, f.FileID,
			sql.NullInt64{}, sql.NullInt64{Int64: result.PracticeID, Valid: true}, parseSummary(result))
	default:
		return fmt.Errorf("unknown file type %q", f.FileType)
	}
}

func fileDate(f *store.UploadedFile) time.Time {
	if f.FileDate.Valid {
		return f.FileDate.Time
	}
	return f.CreatedAt
}
