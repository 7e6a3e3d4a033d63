package domain

import (
	"fmt"
	"time"
)

// LogLevel is the severity of a decision-trail entry.
type LogLevel string

// Log levels.
const (
	LogDebug LogLevel = "DEBUG"
	LogInfo  LogLevel = "INFO"
	LogWarn  LogLevel = "WARN"
	LogError LogLevel = "ERROR"
)

// LogEntry is one decision-trail line.
type LogEntry struct {
	Level   LogLevel
	Message string
	Time    time.Time
}

// MappingContext is the per-call decision trail. It owns an append-only log
// and a small metadata map. It is created at the start of an engine's Map
// and closed at the end; it is never shared between calls.
type MappingContext struct {
	// ID uniquely identifies the mapping call.
	ID string

	// StartedAt is when the context was opened.
	StartedAt time.Time

	// FinishedAt is zero until Close is called.
	FinishedAt time.Time

	entries  []LogEntry
	metadata map[string]string
	sink     func(LogEntry)
	now      func() time.Time
}

// NewMappingContext opens a context and starts its timer.
// sink, when non-nil, receives every entry as it is appended.
func NewMappingContext(id string, sink func(LogEntry)) *MappingContext {
	c := &MappingContext{
		ID:       id,
		metadata: make(map[string]string),
		sink:     sink,
		now:      time.Now,
	}
	c.StartedAt = c.now()
	return c
}

func (c *MappingContext) log(level LogLevel, format string, args ...any) {
	e := LogEntry{Level: level, Message: fmt.Sprintf(format, args...), Time: c.now()}
	c.entries = append(c.entries, e)
	if c.sink != nil {
		c.sink(e)
	}
}

// Debug appends a DEBUG entry.
func (c *MappingContext) Debug(format string, args ...any) { c.log(LogDebug, format, args...) }

// Info appends an INFO entry.
func (c *MappingContext) Info(format string, args ...any) { c.log(LogInfo, format, args...) }

// Warn appends a WARN entry.
func (c *MappingContext) Warn(format string, args ...any) { c.log(LogWarn, format, args...) }

// Error appends an ERROR entry.
func (c *MappingContext) Error(format string, args ...any) { c.log(LogError, format, args...) }

// Entries returns a copy of the log in append order.
func (c *MappingContext) Entries() []LogEntry {
	return append([]LogEntry(nil), c.entries...)
}

// SetMeta records a metadata value.
func (c *MappingContext) SetMeta(key, value string) {
	c.metadata[key] = value
}

// Meta returns a metadata value.
func (c *MappingContext) Meta(key string) (string, bool) {
	v, ok := c.metadata[key]
	return v, ok
}

// Metadata returns a copy of the metadata map.
func (c *MappingContext) Metadata() map[string]string {
	out := make(map[string]string, len(c.metadata))
	for k, v := range c.metadata {
		out[k] = v
	}
	return out
}

// Close stops the timer. Closing twice keeps the first finish time.
func (c *MappingContext) Close() {
	if c.FinishedAt.IsZero() {
		c.FinishedAt = c.now()
	}
}

// Closed reports whether Close has been called.
func (c *MappingContext) Closed() bool {
	return !c.FinishedAt.IsZero()
}

// Duration returns the elapsed time, measured to now while still open.
func (c *MappingContext) Duration() time.Duration {
	if c.FinishedAt.IsZero() {
		return c.now().Sub(c.StartedAt)
	}
	return c.FinishedAt.Sub(c.StartedAt)
}
