package worker

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	sweepInterval = 10 * time.Minute
	maxTempAge    = time.Hour
)

// UploadJanitor periodically removes stale temp uploads. Documents are
// normally deleted right after text extraction, but a crash mid-request
// can leave files behind.
type UploadJanitor struct {
	tmpDir string
	log    zerolog.Logger
}

// NewUploadJanitor creates a new UploadJanitor for uploadDir's tmp/ subdirectory.
func NewUploadJanitor(uploadDir string, log zerolog.Logger) *UploadJanitor {
	return &UploadJanitor{
		tmpDir: filepath.Join(uploadDir, "tmp"),
		log:    log.With().Str("component", "upload_janitor").Logger(),
	}
}

// Start begins the sweep loop. Call in a goroutine; returns when ctx is done.
func (w *UploadJanitor) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *UploadJanitor) sweep() {
	entries, err := os.ReadDir(w.tmpDir)
	if err != nil {
		w.log.Warn().Err(err).Msg("failed to read temp upload dir")
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < maxTempAge {
			continue
		}
		if err := os.Remove(filepath.Join(w.tmpDir, entry.Name())); err != nil {
			w.log.Warn().Err(err).Str("file", entry.Name()).Msg("failed to remove stale upload")
			continue
		}
		removed++
	}

	if removed > 0 {
		w.log.Info().Int("removed", removed).Msg("stale uploads cleaned")
	}
}
