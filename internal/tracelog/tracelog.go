package tracelog

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Sink is the trace log contract consumed by the upload orchestrator.
type Sink interface {
	Append(entries []string) error
	Read() (string, error)
	Clear() error
}

// Clock supplies block timestamps.
type Clock func() time.Time

func formatBlock(ts time.Time, entries []string) string {
	var b strings.Builder
	b.WriteString("=== upload ")
	b.WriteString(strconv.FormatInt(ts.Unix(), 10))
	b.WriteString(" ===\n")
	for _, entry := range entries {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// MemorySink keeps the trace in process memory.
type MemorySink struct {
	mu   sync.Mutex
	buf  strings.Builder
	now  Clock
	seen int
}

// NewMemorySink constructs an empty in-memory sink. A nil clock uses time.Now.
func NewMemorySink(now Clock) *MemorySink {
	if now == nil {
		now = time.Now
	}
	return &MemorySink{now: now}
}

// Append implements Sink.
func (m *MemorySink) Append(entries []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buf.WriteString(formatBlock(m.now(), entries))
	m.seen++
	return nil
}

// Read implements Sink.
func (m *MemorySink) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.String(), nil
}

// Clear implements Sink.
func (m *MemorySink) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buf.Reset()
	return nil
}

// Blocks reports how many blocks were appended since construction.
func (m *MemorySink) Blocks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seen
}
