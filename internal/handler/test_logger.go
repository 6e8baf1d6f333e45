package handler

import (
	"fmt"
	"strings"
	"sync"

	"postmate/internal/domain"
)

type logRecord struct {
	mu      sync.Mutex
	entries []string
}

// MockHandlerLogger records messages for handler package tests. Loggers
// derived through With share the parent's record.
type MockHandlerLogger struct {
	rec    *logRecord
	fields []interface{}
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{rec: &logRecord{}}
}

var _ domain.Logger = (*MockHandlerLogger)(nil)

// With returns a logger that prefixes fields to every entry.
func (l *MockHandlerLogger) With(fields ...interface{}) domain.Logger {
	bound := append(append([]interface{}{}, l.fields...), fields...)
	return &MockHandlerLogger{rec: l.rec, fields: bound}
}

func (l *MockHandlerLogger) record(level, msg string, fields ...interface{}) {
	all := append(append([]interface{}{}, l.fields...), fields...)
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()
	l.rec.entries = append(l.rec.entries, fmt.Sprintf("%s %s %v", level, msg, all))
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{}) {
	l.record("INFO", msg, fields...)
}

func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {
	l.record("ERROR", msg, append(fields, "error", err)...)
}

func (l *MockHandlerLogger) Debug(msg string, fields ...interface{}) {
	l.record("DEBUG", msg, fields...)
}

func (l *MockHandlerLogger) Warn(msg string, fields ...interface{}) {
	l.record("WARN", msg, fields...)
}

// Contains reports whether any entry includes substr.
func (l *MockHandlerLogger) Contains(substr string) bool {
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()
	for _, e := range l.rec.entries {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
