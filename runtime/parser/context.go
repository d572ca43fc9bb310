package parser

import (
	"log/slog"
	"time"
)

var discardLogger = slog.New(slog.DiscardHandler)

// Context is the read-only state threaded through every parse call.
//
// Parsers never modify a Context; OnlyMatching derives a narrowed copy. The optional
// trace collector is the single exception: it is owned by the caller that built the
// Context and is written to by one top-level parse at a time.
type Context struct {
	matchOnly bool
	userInfo  any
	logger    *slog.Logger
	trace     *trace
}

type trace struct {
	telemetry   TelemetryMode
	debug       DebugLevel
	stats       *ParseTelemetry
	debugEvents []DebugEvent
}

// NewContext builds a Context from options.
func NewContext(opts ...Opt) Context {
	config := &Config{}
	for _, opt := range opts {
		opt(config)
	}

	ctx := Context{
		matchOnly: config.matchOnly,
		userInfo:  config.userInfo,
		logger:    config.logger,
	}

	if config.telemetry > TelemetryOff || config.debug > DebugOff {
		ctx.trace = &trace{
			telemetry: config.telemetry,
			debug:     config.debug,
		}
		if config.telemetry >= TelemetryBasic {
			ctx.trace.stats = &ParseTelemetry{ByParser: make(map[string]ParserCounts)}
		}
		if config.debug > DebugOff {
			ctx.trace.debugEvents = make([]DebugEvent, 0, 64)
		}
	}

	return ctx
}

// MatchOnly reports whether values may be skipped.
func (c Context) MatchOnly() bool { return c.matchOnly }

// UserInfo returns the caller data passed with WithUserInfo.
func (c Context) UserInfo() any { return c.userInfo }

// OnlyMatching returns a copy of c in match-only mode.
func (c Context) OnlyMatching() Context {
	c.matchOnly = true
	return c
}

// materializing returns a copy of c with values required.
func (c Context) materializing() Context {
	c.matchOnly = false
	return c
}

// Logger returns the context logger, a discarding logger when none was set.
func (c Context) Logger() *slog.Logger {
	if c.logger == nil {
		return discardLogger
	}
	return c.logger
}

// Telemetry returns the collected metrics, nil unless telemetry was enabled.
func (c Context) Telemetry() *ParseTelemetry {
	if c.trace == nil {
		return nil
	}
	return c.trace.stats
}

// DebugEvents returns the recorded trace, nil unless debug tracing was enabled.
func (c Context) DebugEvents() []DebugEvent {
	if c.trace == nil {
		return nil
	}
	return c.trace.debugEvents
}

// recordCall counts one invocation of the named parser.
func (c Context) recordCall(name string, matched bool) {
	stats := c.trace.stats
	if stats == nil {
		return
	}
	counts := stats.ByParser[name]
	counts.Calls++
	stats.Calls++
	if matched {
		counts.Matches++
		stats.Matches++
	}
	stats.ByParser[name] = counts
}

// recordDebugEvent records debug events when debug tracing is enabled
func (c Context) recordDebugEvent(event, name string, offset int) {
	if c.trace.debug == DebugOff {
		return
	}

	c.trace.debugEvents = append(c.trace.debugEvents, DebugEvent{
		Timestamp: time.Now(),
		Event:     event,
		Parser:    name,
		Offset:    offset,
		MatchOnly: c.matchOnly,
	})

	if c.trace.debug >= DebugDetailed {
		c.Logger().Debug("parse", "event", event, "parser", name, "offset", offset, "matchOnly", c.matchOnly)
	}
}

// startTiming returns a stop function adding the elapsed time to the telemetry.
func (c Context) startTiming() func() {
	if c.trace == nil || c.trace.telemetry < TelemetryTiming {
		return func() {}
	}
	start := time.Now()
	return func() {
		c.trace.stats.TotalTime += time.Since(start)
	}
}
