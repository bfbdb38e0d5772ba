// FILE: arsenic/src/internal/sink/file.go
package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"arsenic/src/internal/config"
	"arsenic/src/internal/format"

	"github.com/lixenwraith/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileLineTerminator ends every file line
const FileLineTerminator = "\n\r"

// FileSink appends colorless lines to a single file, optionally rotated by size
type FileSink struct {
	base
	config    *config.FileOptions
	formatter *format.TextFormatter

	mu     sync.Mutex
	writer io.WriteCloser
	file   *os.File // nil when rotation owns the file
	closed bool
}

// NewFileSink opens the target file for appending
func NewFileSink(opts *config.FileOptions, logger *log.Logger) (*FileSink, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("file sink requires a path")
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	fs := &FileSink{
		config:    opts,
		formatter: format.NewTextFormatter(),
	}
	fs.setup(opts, fs.formatter.Name(), logger)

	if opts.MaxSizeMB > 0 {
		fs.writer = &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    int(opts.MaxSizeMB),
			MaxBackups: int(opts.MaxBackups),
			MaxAge:     int(opts.MaxAgeDays),
			Compress:   opts.Compress,
		}
	} else {
		f, err := os.OpenFile(opts.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		fs.file = f
		fs.writer = f
	}

	return fs, nil
}

func (fs *FileSink) Emit(rec *format.Record) {
	res, ok := fs.admit(rec)
	if !ok {
		return
	}

	line := fs.formatter.Format(rec, res.MatchedTags, false) + FileLineTerminator

	fs.mu.Lock()
	var err error
	if fs.closed {
		err = os.ErrClosed
	} else {
		_, err = io.WriteString(fs.writer, line)
	}
	fs.mu.Unlock()

	if err != nil {
		fs.totalFailed.Add(1)
		fs.logger.Warn("msg", "File write failed",
			"component", "file_sink",
			"path", fs.config.Path,
			"error", err)
	}
}

func (fs *FileSink) Start(ctx context.Context) error {
	fs.logger.Info("msg", "File sink started",
		"component", "file_sink",
		"path", fs.config.Path,
		"rotation", fs.file == nil)
	return nil
}

func (fs *FileSink) Stop() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.closed {
		return
	}
	fs.closed = true

	if err := fs.writer.Close(); err != nil {
		fs.logger.Error("msg", "Error closing log file",
			"component", "file_sink",
			"error", err)
	}
	fs.logger.Info("msg", "File sink stopped", "component", "file_sink")
}

// Sync commits written lines to disk
func (fs *FileSink) Sync() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.closed || fs.file == nil {
		return nil
	}
	return fs.file.Sync()
}

func (fs *FileSink) GetStats() SinkStats {
	return fs.stats(0, map[string]any{
		"path":        fs.config.Path,
		"max_size_mb": fs.config.MaxSizeMB,
	})
}
