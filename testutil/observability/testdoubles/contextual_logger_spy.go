package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// Log levels as recorded by ContextualLoggerSpy.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// ContextualLoggerSpy captures calls to both the Logger and the ContextualLogger interface.
type ContextualLoggerSpy struct {
	records     []SpyLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// SpyLogRecord represents one recorded log call. Context is nil for calls without context.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// Attr returns the value logged for key and whether it was present.
func (r SpyLogRecord) Attr(key string) (any, bool) {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if k, ok := r.Args[i].(string); ok && k == key {
			return r.Args[i+1], true
		}
	}

	return nil, false
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy. Set recordCalls to true to capture calls.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{recordCalls: recordCalls}
}

func (s *ContextualLoggerSpy) record(ctx context.Context, level, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{
		Level:   level,
		Message: msg,
		Args:    append([]any(nil), args...),
		Context: ctx,
	})
}

func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelDebug, msg, args)
}

func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelInfo, msg, args)
}

func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelWarn, msg, args)
}

func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelError, msg, args)
}

func (s *ContextualLoggerSpy) Debug(msg string, args ...any) {
	s.record(nil, LevelDebug, msg, args) //nolint:staticcheck // context-free Logger call
}

func (s *ContextualLoggerSpy) Info(msg string, args ...any) {
	s.record(nil, LevelInfo, msg, args) //nolint:staticcheck // context-free Logger call
}

func (s *ContextualLoggerSpy) Warn(msg string, args ...any) {
	s.record(nil, LevelWarn, msg, args) //nolint:staticcheck // context-free Logger call
}

func (s *ContextualLoggerSpy) Error(msg string, args ...any) {
	s.record(nil, LevelError, msg, args) //nolint:staticcheck // context-free Logger call
}

// Reset clears all recorded log calls.
func (s *ContextualLoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// Records returns a copy of all records of the given level.
func (s *ContextualLoggerSpy) Records(level string) []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]SpyLogRecord, 0)
	for _, record := range s.records {
		if record.Level == level {
			result = append(result, record)
		}
	}

	return result
}

// HasLog checks if a log with the specified level and message exists.
func (s *ContextualLoggerSpy) HasLog(level, message string) bool {
	_, found := s.FindLog(level, message)
	return found
}

// FindLog returns the first record with the specified level and message.
func (s *ContextualLoggerSpy) FindLog(level, message string) (SpyLogRecord, bool) {
	for _, record := range s.Records(level) {
		if record.Message == message {
			return record, true
		}
	}

	return SpyLogRecord{}, false
}

// GetTotalRecordCount returns the total number of log records across all levels.
func (s *ContextualLoggerSpy) GetTotalRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

var (
	_ librarystore.ContextualLogger = (*ContextualLoggerSpy)(nil)
	_ librarystore.Logger           = (*ContextualLoggerSpy)(nil)
)
