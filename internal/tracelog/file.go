package tracelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// FileSink appends trace blocks to a text file on disk.
type FileSink struct {
	path string
	lock *flock.Flock
	now  Clock
}

// Option configures a FileSink.
type Option func(*FileSink)

// WithClock overrides the block timestamp source.
func WithClock(now Clock) Option {
	return func(s *FileSink) {
		if now != nil {
			s.now = now
		}
	}
}

// NewFileSink returns a sink writing to path. The file is created lazily on
// the first Append.
func NewFileSink(path string, opts ...Option) (*FileSink, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("trace log path required")
	}
	sink := &FileSink{
		path: path,
		lock: flock.New(path + ".lock"),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(sink)
	}
	return sink, nil
}

// Path returns the trace file location.
func (s *FileSink) Path() string {
	return s.path
}

// Append implements Sink.
func (s *FileSink) Append(entries []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create trace directory: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock trace log: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open trace log: %w", err)
	}
	if _, err := file.WriteString(formatBlock(s.now(), entries)); err != nil {
		_ = file.Close()
		return fmt.Errorf("write trace log: %w", err)
	}
	return file.Close()
}

// Read implements Sink. A trace that was never written reads as empty.
func (s *FileSink) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read trace log: %w", err)
	}
	return string(data), nil
}

// Clear implements Sink.
func (s *FileSink) Clear() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create trace directory: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock trace log: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	if err := os.WriteFile(s.path, nil, 0o644); err != nil {
		return fmt.Errorf("clear trace log: %w", err)
	}
	return nil
}
