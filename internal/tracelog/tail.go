package tracelog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

const tailPollInterval = 250 * time.Millisecond

// TailOptions selects the trace lines returned by Tail.
type TailOptions struct {
	// Offset is the byte position to resume from. A negative offset returns
	// the last Limit lines instead.
	Offset int64
	Limit  int
	// Wait bounds how long Tail polls when no new lines are available.
	Wait time.Duration
}

// TailResult carries the lines read and the offset to resume from.
type TailResult struct {
	Lines  []string
	Offset int64
}

// Tail reads trace lines without taking the append lock. A trace that was
// cleared since the last call is read again from the start.
func (s *FileSink) Tail(ctx context.Context, opts TailOptions) (TailResult, error) {
	if opts.Offset < 0 {
		lines, offset, err := lastLines(s.path, opts.Limit)
		return TailResult{Lines: lines, Offset: offset}, err
	}

	deadline := time.Now().Add(max(opts.Wait, 0))
	offset := opts.Offset
	for {
		lines, next, err := linesFrom(s.path, offset)
		if err != nil || len(lines) > 0 || !time.Now().Before(deadline) {
			return TailResult{Lines: lines, Offset: next}, err
		}
		offset = next

		select {
		case <-ctx.Done():
			return TailResult{Offset: offset}, ctx.Err()
		case <-time.After(tailPollInterval):
		}
	}
}

func openTrace(path string) (*os.File, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open trace log: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("stat trace log: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, 0, fmt.Errorf("trace log %q is a directory", path)
	}
	return file, info.Size(), nil
}

func lastLines(path string, limit int) ([]string, int64, error) {
	file, size, err := openTrace(path)
	if file == nil || err != nil {
		return nil, 0, err
	}
	defer file.Close()
	if limit <= 0 {
		return nil, size, nil
	}

	ring := make([]string, 0, limit)
	next := 0
	err = scanLines(file, func(line string) {
		if len(ring) < limit {
			ring = append(ring, line)
			return
		}
		ring[next] = line
		next = (next + 1) % limit
	})
	if err != nil {
		return nil, 0, err
	}
	return append(ring[next:], ring[:next]...), size, nil
}

func linesFrom(path string, offset int64) ([]string, int64, error) {
	file, size, err := openTrace(path)
	if file == nil || err != nil {
		return nil, 0, err
	}
	defer file.Close()

	if offset > size {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("seek trace log: %w", err)
	}
	var lines []string
	if err := scanLines(file, func(line string) { lines = append(lines, line) }); err != nil {
		return nil, 0, err
	}
	end, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, 0, fmt.Errorf("trace log offset: %w", err)
	}
	return lines, end, nil
}

func scanLines(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read trace log: %w", err)
	}
	return nil
}
