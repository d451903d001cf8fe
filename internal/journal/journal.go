// Package journal persists one JSON line per answered turn, for
// offline analysis of what users ask and how it was handled.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hsinyulin/ledgerchat/internal/service"
)

// answerPreviewLimit caps how much answer text a journal entry keeps.
const answerPreviewLimit = 200

// FileSink appends turn records to a JSONL file.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewFileSink opens (creating if needed) the journal at path.
func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return &FileSink{file: file, enc: json.NewEncoder(file)}, nil
}

// Record appends one entry. The answer is truncated to a preview so
// the journal stays scannable.
func (s *FileSink) Record(ctx context.Context, rec service.TurnRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec.AnswerPreview = truncate(rec.AnswerPreview, answerPreviewLimit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to write journal entry: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// NopSink discards every record, for plain one-shot invocations.
type NopSink struct{}

// Record discards the entry.
func (NopSink) Record(context.Context, service.TurnRecord) error { return nil }

// Close is a no-op.
func (NopSink) Close() error { return nil }
