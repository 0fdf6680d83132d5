package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hoopsight/courtlog/internal/ingest/sportscode"
	"github.com/hoopsight/courtlog/internal/publisher"
	"github.com/hoopsight/courtlog/internal/store"
	"github.com/hoopsight/courtlog/internal/store/repository"
)

// IngestService wraps the parser with uploaded-file bookkeeping: every file
// that arrives gets a row, successful parses are linked to the game or
// practice they produced, and failures keep their error for the audit trail.
type IngestService struct {
	parser    *ParseService
	uploads   *repository.UploadRepository
	publisher *publisher.RedisStreamPublisher
}

// NewIngestService creates an ingest service. Publisher may be nil.
func NewIngestService(db *store.Database, parser *ParseService, pub *publisher.RedisStreamPublisher) *IngestService {
	return &IngestService{
		parser:    parser,
		uploads:   repository.NewUploadRepository(db),
		publisher: pub,
	}
}

// IngestGame records and parses one game export. The game date comes from
// the YY_MM_DD filename prefix unless the caller supplies one.
func (s *IngestService) IngestGame(ctx context.Context, seasonID int64, path, opponent string, date time.Time) (*GameParseResult, error) {
	filename := filepath.Base(path)
	if date.IsZero() {
		if d, ok := sportscode.DateFromFilename(filename); ok {
			date = d
		} else {
			date = time.Now()
		}
	}

	fileID, err := s.uploads.Create(ctx, &store.UploadedFile{
		SeasonID:   seasonID,
		FileType:   "game",
		Filename:   filename,
		StoredPath: path,
		FileDate:   sql.NullTime{Time: date, Valid: true},
	})
	if err != nil {
		return nil, err
	}

	result, err := s.parser.ParseGameFile(ctx, seasonID, path, opponent, date)
	if err != nil {
		s.recordFailure(ctx, seasonID, fileID, "game", filename, err)
		return nil, err
	}

	if err := s.uploads.MarkParsed(ctx, fileID, sql.NullInt64{Int64: result.GameID, Valid: true}, sql.NullInt64{}, parseSummary(result)); err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("Failed to mark upload parsed")
	}
	return result, nil
}

// IngestPractice records and parses one practice export. The session date
// comes from the filename's YY_MM_DD prefix.
func (s *IngestService) IngestPractice(ctx context.Context, seasonID int64, path, category string) (*PracticeParseResult, error) {
	filename := filepath.Base(path)
	date, ok := sportscode.DateFromFilename(filename)
	if !ok {
		return nil, fmt.Errorf("practice filename %q has no YY_MM_DD date prefix", filename)
	}
	category = sportscode.NormalizeCategory(category)

	fileID, err := s.uploads.Create(ctx, &store.UploadedFile{
		SeasonID:   seasonID,
		FileType:   "practice",
		Filename:   filename,
		StoredPath: path,
		Category:   sql.NullString{String: category, Valid: true},
		FileDate:   sql.NullTime{Time: date, Valid: true},
	})
	if err != nil {
		return nil, err
	}

	result, err := s.parser.ParsePracticeFile(ctx, seasonID, path, category, date)
	if err != nil {
		s.recordFailure(ctx, seasonID, fileID, "practice", filename, err)
		return nil, err
	}

	if err := s.uploads.MarkParsed(ctx, fileID, sql.NullInt64{}, sql.NullInt64{Int64: result.PracticeID, Valid: true}, parseSummary(result)); err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("Failed to mark upload parsed")
	}
	return result, nil
}

func (s *IngestService) recordFailure(ctx context.Context, seasonID, fileID int64, fileType, filename string, parseErr error) {
	if err := s.uploads.MarkFailed(ctx, fileID, parseErr); err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("Failed to record parse error")
	}
	if s.publisher != nil {
		event := publisher.ParseEvent{
			SeasonID: seasonID,
			FileType: fileType,
			Filename: filename,
			Error:    parseErr.Error(),
		}
		if err := s.publisher.PublishFailed(ctx, event); err != nil {
			log.Warn().Err(err).Str("filename", filename).Msg("Failed to publish failure event")
		}
	}
}

// parseSummary serializes a parse result for the uploaded_files snapshot
// column. A result that will not marshal is logged and stored as null
// rather than failing the ingest.
func parseSummary(result any) sql.NullString {
	data, err := json.Marshal(result)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to encode parse summary")
		return sql.NullString{}
	}
	return sql.NullString{String: string(data), Valid: true}
}
