package testing

import (
	"fmt"
	"strings"
	"sync"
)

// Level identifies which Logger method produced a captured message.
type Level string

const (
	LevelVerbose Level = "verbose"
	LevelInfo    Level = "info"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)

// LogEntry is one formatted log call.
type LogEntry struct {
	Level   Level
	Message string
}

// LogCapture is a sqlgrep.Logger that records every message.
// Thread-safe for concurrent use.
type LogCapture struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewLogCapture creates an empty LogCapture.
func NewLogCapture() *LogCapture {
	return &LogCapture{}
}

func (c *LogCapture) Verbose(format string, args ...interface{}) {
	c.record(LevelVerbose, format, args)
}

func (c *LogCapture) Info(format string, args ...interface{}) {
	c.record(LevelInfo, format, args)
}

func (c *LogCapture) Warn(format string, args ...interface{}) {
	c.record(LevelWarn, format, args)
}

func (c *LogCapture) Error(format string, args ...interface{}) {
	c.record(LevelError, format, args)
}

func (c *LogCapture) record(level Level, format string, args []interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, LogEntry{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Entries returns a copy of all captured entries.
func (c *LogCapture) Entries() []LogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]LogEntry, len(c.entries))
	copy(result, c.entries)
	return result
}

// Messages returns the messages logged at level, in order.
func (c *LogCapture) Messages(level Level) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result []string
	for _, e := range c.entries {
		if e.Level == level {
			result = append(result, e.Message)
		}
	}
	return result
}

// Contains reports whether any message at level contains substr.
func (c *LogCapture) Contains(level Level, substr string) bool {
	for _, msg := range c.Messages(level) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// Reset clears all captured entries.
func (c *LogCapture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
}
