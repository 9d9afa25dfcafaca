package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingWriter writes to one log file per ISO week, starting a numbered
// sibling when the current file exceeds maxFileSize, and deletes files older
// than the retention period.
type RotatingWriter struct {
	logDir      string
	retention   time.Duration
	maxFileSize int64

	mu          sync.Mutex
	currentFile *os.File
	currentWeek string
	currentSize int64
	sequence    int
}

// NewRotatingWriter creates a rotating writer. maxFileSize <= 0 disables the
// size-based rotation.
func NewRotatingWriter(logDir string, retentionWeeks int, maxFileSize int64) *RotatingWriter {
	return &RotatingWriter{
		logDir:      logDir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
	}
}

// weekKey returns the ISO week key, e.g. "2026-W35".
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (w *RotatingWriter) fileName() string {
	if w.sequence == 0 {
		return fmt.Sprintf("app-%s.log", w.currentWeek)
	}
	return fmt.Sprintf("app-%s_%02d.log", w.currentWeek, w.sequence)
}

// rotate opens the file for the given week, bumping the sequence number when
// rotating within the same week because of size. Caller holds the lock.
func (w *RotatingWriter) rotate(week string) error {
	if w.currentFile != nil {
		if err := w.currentFile.Close(); err != nil {
			slog.Warn("Failed to close log file during rotation", "error", err)
		}
		w.currentFile = nil
	}

	if week == w.currentWeek {
		w.sequence++
	} else {
		w.currentWeek = week
		w.sequence = 0
	}

	path := filepath.Join(w.logDir, w.fileName())
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	w.currentFile = f
	w.currentSize = 0
	if info, err := f.Stat(); err == nil {
		w.currentSize = info.Size()
	}
	return nil
}

// Write implements io.Writer for slog handlers.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	week := weekKey(time.Now())
	needsRotation := w.currentFile == nil || week != w.currentWeek
	if !needsRotation && w.maxFileSize > 0 && w.currentSize+int64(len(p)) > w.maxFileSize {
		needsRotation = true
	}

	if needsRotation {
		if err := w.rotate(week); err != nil {
			return 0, err
		}
	}

	n, err := w.currentFile.Write(p)
	w.currentSize += int64(n)
	return n, err
}

// Cleanup removes log files older than the retention period.
func (w *RotatingWriter) Cleanup() error {
	entries, err := os.ReadDir(w.logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := time.Now().Add(-w.retention)
	removed := 0

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(w.logDir, name)); err == nil {
				removed++
			}
		}
	}

	if removed > 0 {
		slog.Info("Cleaned up old log files", "removed", removed)
	}
	return nil
}

// Close closes the current log file.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.currentFile != nil {
		err := w.currentFile.Close()
		w.currentFile = nil
		return err
	}
	return nil
}

// SetupLogger configures slog to write text to the console and JSON to a
// rotating file in logDir. If the directory cannot be created it falls back
// to console-only logging.
func SetupLogger(logDir string, retentionWeeks int, maxFileSize int64) *slog.Logger {
	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		l := slog.New(consoleHandler)
		l.Error("Failed to create logs directory", "error", err)
		return l
	}

	writer := NewRotatingWriter(logDir, retentionWeeks, maxFileSize)

	// Daily retention sweep.
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := writer.Cleanup(); err != nil {
				slog.Warn("Failed to cleanup old logs", "error", err)
			}
		}
	}()

	fileHandler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	return slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}})
}
