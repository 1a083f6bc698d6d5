// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/hibiken/asynq"
)

// CleanupProcessor prunes leftover import uploads from the temp directory
type CleanupProcessor struct {
	root   string
	maxAge time.Duration
	logger *slog.Logger
}

func NewCleanupProcessor(root string, maxAge time.Duration, logger *slog.Logger) *CleanupProcessor {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &CleanupProcessor{
		root:   root,
		maxAge: maxAge,
		logger: logger.With(slog.String("processor", "cleanup")),
	}
}

type sweep struct {
	files int
	bytes int64
	dirs  []string
}

// CleanupTempFiles deletes files not modified within maxAge, then removes
// directories left empty. The root itself is kept.
func (p *CleanupProcessor) CleanupTempFiles(ctx context.Context, _ *asynq.Task) error {
	start := time.Now()
	cutoff := start.Add(-p.maxAge)

	var s sweep
	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil
		case err != nil:
			return err
		case ctx.Err() != nil:
			return ctx.Err()
		case d.IsDir():
			if path != p.root {
				s.dirs = append(s.dirs, path)
			}
			return nil
		}

		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			p.logger.WarnContext(ctx, "failed to delete temp file",
				slog.String("file", path),
				slog.String("error", err.Error()))
			return nil
		}
		s.files++
		s.bytes += info.Size()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to sweep %s: %w", p.root, err)
	}

	// deepest first so parents empty out behind their children
	removed := 0
	for _, dir := range slices.Backward(s.dirs) {
		if os.Remove(dir) == nil {
			removed++
		}
	}

	p.logger.InfoContext(ctx, "temp files swept",
		slog.String("dir", p.root),
		slog.Int("files_deleted", s.files),
		slog.Int64("bytes_freed", s.bytes),
		slog.Int("dirs_removed", removed),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
