// Package scheduler polls the upload spool and feeds new CSV exports to the
// ingest pipeline. Files land via scp or a synced folder; there is no HTTP
// upload surface, the spool directory is the intake.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hoopsight/courtlog/internal/service"
)

// Config holds spool watcher configuration.
type Config struct {
	SpoolDir     string
	PollInterval time.Duration
	SeasonID     int64
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		SpoolDir:     "spool",
		PollInterval: 30 * time.Second,
	}
}

// Watcher scans the spool on an interval. Layout:
//
//	spool/games/<YY_MM_DD opponent>.csv
//	spool/practices/<category>/<YY_MM_DD name>.csv
//
// Parsed files move to done/, failures to failed/, so a crash mid-scan
// never loses or double-counts a file.
type Watcher struct {
	ingester *service.IngestService
	config   *Config
}

// NewWatcher creates a spool watcher.
func NewWatcher(ingester *service.IngestService, config *Config) *Watcher {
	if config == nil {
		config = DefaultConfig()
	}
	return &Watcher{ingester: ingester, config: config}
}

// Start runs the poll loop until the context is cancelled. One scan runs
// immediately so a pre-filled spool drains on boot.
func (w *Watcher) Start(ctx context.Context) {
	log.Info().
		Str("spool", w.config.SpoolDir).
		Dur("interval", w.config.PollInterval).
		Msg("Spool watcher started")

	w.scan(ctx)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Spool watcher stopped")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *Watcher) scan(ctx context.Context) {
	w.scanGames(ctx)
	w.scanPractices(ctx)
}

func (w *Watcher) scanGames(ctx context.Context) {
	dir := filepath.Join(w.config.SpoolDir, "games")
	for _, path := range w.pendingCSVs(dir) {
		opponent := opponentFromFilename(filepath.Base(path))
		_, err := w.ingester.IngestGame(ctx, w.config.SeasonID, path, opponent, time.Time{})
		w.finish(path, err)
	}
}

func (w *Watcher) scanPractices(ctx context.Context) {
	root := filepath.Join(w.config.SpoolDir, "practices")
	entries, err := os.ReadDir(root)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("dir", root).Msg("Reading practice spool failed")
		}
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		category := entry.Name()
		for _, path := range w.pendingCSVs(filepath.Join(root, category)) {
			_, err := w.ingester.IngestPractice(ctx, w.config.SeasonID, path, category)
			w.finish(path, err)
		}
	}
}

// pendingCSVs lists the CSV files in dir, skipping the done/ and failed/
// holding areas.
func (w *Watcher) pendingCSVs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("dir", dir).Msg("Reading spool dir failed")
		}
		return nil
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths
}

// finish moves a processed file into done/ or failed/ beside it.
func (w *Watcher) finish(path string, parseErr error) {
	bucket := "done"
	if parseErr != nil {
		bucket = "failed"
		log.Error().Err(parseErr).Str("file", path).Msg("Ingest failed")
	} else {
		log.Info().Str("file", path).Msg("Ingested")
	}

	dest := filepath.Join(filepath.Dir(path), bucket)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		log.Error().Err(err).Str("dir", dest).Msg("Creating spool bucket failed")
		return
	}
	if err := os.Rename(path, filepath.Join(dest, filepath.Base(path))); err != nil {
		log.Error().Err(err).Str("file", path).Msg("Moving spool file failed")
	}
}

// opponentFromFilename strips the date prefix and extension from a game
// filename, leaving the opponent name ("11_04_25 State College.csv").
func opponentFromFilename(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	fields := strings.Fields(name)
	if len(fields) > 1 {
		return strings.Join(fields[1:], " ")
	}
	return fmt.Sprintf("Unknown (%s)", name)
}
