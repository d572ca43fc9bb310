package main

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/opal-lang/pcomb/core/resultfmt"
	"github.com/opal-lang/pcomb/internal/config"
	"github.com/opal-lang/pcomb/runtime/parser"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// app carries the flags and the settings resolved from them.
type app struct {
	configPath string
	debug      bool
	format     string
	partial    bool
	digest     bool
	stats      bool

	cfg    config.Config
	out    resultfmt.Format
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "pcomb",
		Short:         "Run parser-combinator grammars over text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultFile+" when present)")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug output")
	flags.StringVar(&a.format, "format", "text", "Output format: text, json, yaml or cbor")
	flags.BoolVar(&a.partial, "partial", false, "Accept input left over after the match")
	flags.BoolVar(&a.digest, "digest", false, "Add a BLAKE2b digest of the canonical result")
	flags.BoolVar(&a.stats, "stats", false, "Log parser call counts and timing")

	rootCmd.AddCommand(
		newGrammarsCmd(a),
		newParseCmd(a),
		newParamsCmd(a),
		newStringsCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads the config file and applies the flags the user set over it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, used, err := config.Load(a.configPath)
	if err != nil {
		return &CLIError{
			Message: "invalid configuration",
			Details: err.Error(),
			Hint:    "see internal/config/schema.json for the accepted keys",
			Err:     err,
		}
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = a.format
	}
	if flags.Changed("partial") {
		cfg.Partial = a.partial
	}
	if a.debug {
		cfg.Debug = true
	}

	out, err := resultfmt.ParseFormat(cfg.Format)
	if err != nil {
		return &CLIError{Message: err.Error(), Hint: "use --format text|json|yaml|cbor", Err: err}
	}

	a.cfg = cfg
	a.out = out
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.Debug)
	if used != "" {
		a.logger.Debug("loaded config", "path", used)
	}
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// parseContext builds the parse context for one run.
func (a *app) parseContext() parser.Context {
	opts := []parser.Opt{parser.WithLogger(a.logger)}
	if a.cfg.Debug {
		opts = append(opts, parser.WithDebugDetailed())
	}
	if a.stats {
		opts = append(opts, parser.WithTelemetryTiming())
	}
	return parser.NewContext(opts...)
}

// logStats reports the telemetry collected in ctx, busiest parsers first.
func (a *app) logStats(ctx parser.Context) {
	stats := ctx.Telemetry()
	if stats == nil {
		return
	}

	a.logger.Info("parse stats", "calls", stats.Calls, "matches", stats.Matches, "elapsed", stats.TotalTime)

	names := make([]string, 0, len(stats.ByParser))
	for name := range stats.ByParser {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := stats.ByParser[names[i]].Calls, stats.ByParser[names[j]].Calls
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		counts := stats.ByParser[name]
		a.logger.Info("parser", "name", name, "calls", counts.Calls, "matches", counts.Matches)
	}
}

// report prints the outcome of st and turns a failed or partial match into an error.
func report[T any](a *app, w io.Writer, name string, st parser.Status[T]) error {
	r := resultfmt.New(name, st, st.Value(), st.Consumed().RuneCount(), st.Residual().String())
	if a.digest {
		sealed, err := resultfmt.Seal(r)
		if err != nil {
			return err
		}
		r = sealed
	}
	if err := resultfmt.Encode(w, r, a.out); err != nil {
		return err
	}

	if !st.Match() {
		return errNoMatch
	}
	if left := st.Residual().RuneCount(); left > 0 && !a.cfg.Partial {
		return &CLIError{
			Message: fmt.Sprintf("%s: %d characters left", parser.ErrIncomplete, left),
			Hint:    "use --partial to accept trailing input",
			Err:     parser.ErrIncomplete,
		}
	}
	return nil
}
