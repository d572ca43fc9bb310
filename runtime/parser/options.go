package parser

import (
	"log/slog"
	"time"
)

// Opt represents a parse context option
type Opt func(*Config)

// TelemetryMode controls telemetry collection (production-safe)
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Call and match counts per parser
	TelemetryTiming                      // Counts + total time of the top-level parse
)

// DebugLevel controls debug tracing (development only)
type DebugLevel int

const (
	DebugOff      DebugLevel = iota // No debug info (default)
	DebugPaths                      // Record enter/exit of every named parser
	DebugDetailed                   // Paths + log every event through the context logger
)

// Config holds the settings a Context is built from
type Config struct {
	matchOnly bool
	userInfo  any
	logger    *slog.Logger
	telemetry TelemetryMode
	debug     DebugLevel
}

// WithMatchOnly starts the parse in match-only mode: values may be skipped
func WithMatchOnly() Opt {
	return func(c *Config) {
		c.matchOnly = true
	}
}

// WithUserInfo attaches opaque caller data, readable from Context.UserInfo
func WithUserInfo(info any) Opt {
	return func(c *Config) {
		c.userInfo = info
	}
}

// WithLogger sets the logger used by Debug and by detailed tracing
func WithLogger(logger *slog.Logger) Opt {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithTelemetryBasic enables basic telemetry (counts only)
func WithTelemetryBasic() Opt {
	return func(c *Config) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables timing telemetry (counts + total time)
func WithTelemetryTiming() Opt {
	return func(c *Config) {
		c.telemetry = TelemetryTiming
	}
}

// WithDebugPaths enables debug path tracing (development only)
func WithDebugPaths() Opt {
	return func(c *Config) {
		c.debug = DebugPaths
	}
}

// WithDebugDetailed enables detailed debug tracing (development only)
func WithDebugDetailed() Opt {
	return func(c *Config) {
		c.debug = DebugDetailed
	}
}

// ParseTelemetry holds parse metrics collected through a Context (production-safe)
type ParseTelemetry struct {
	Calls     int                     // Parser invocations, all parsers
	Matches   int                     // Invocations that matched
	ByParser  map[string]ParserCounts // Per parser name
	TotalTime time.Duration           // Top-level parse time (TelemetryTiming only)
}

// ParserCounts holds the counters of one parser name
type ParserCounts struct {
	Calls   int
	Matches int
}

// DebugEvent holds debug tracing information (development only)
type DebugEvent struct {
	Timestamp time.Time
	Event     string // "enter", "match", "no_match"
	Parser    string // Parser name
	Offset    int    // Absolute input index at entry, or match end
	MatchOnly bool
}
