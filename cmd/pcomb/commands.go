package main

import (
	"fmt"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/opal-lang/pcomb/internal/config"
	"github.com/opal-lang/pcomb/runtime/grammars"
	"github.com/opal-lang/pcomb/runtime/parser"
)

func newGrammarsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "grammars",
		Short: "List the built-in grammars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := grammars.Default()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range registry.Names() {
				g, err := registry.Lookup(name)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", g.Name, g.Description)
			}
			return tw.Flush()
		},
	}
}

func newParseCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "parse <grammar> [input]",
		Short: "Parse input with a built-in grammar",
		Long: "Parse input with a built-in grammar. The input is the second argument, " +
			"the file named by -f, or piped stdin.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammars.Default().Lookup(args[0])
			if err != nil {
				return &CLIError{
					Message: err.Error(),
					Hint:    "run 'pcomb grammars' to list the available grammars",
					Err:     err,
				}
			}

			input, err := readInput(cmd.InOrStdin(), args[1:], file)
			if err != nil {
				return err
			}

			ctx := a.parseContext()
			st := g.Parser.ParseWith(input, ctx)
			a.logStats(ctx)
			a.logger.Debug("parsed", "grammar", g.Name, "status", st.String())
			return report(a, cmd.OutOrStdout(), g.Name, st)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read input from file (- for stdin)")
	return cmd
}

func newParamsCmd(a *app) *cobra.Command {
	var (
		file            string
		start, sep, end string
	)

	cmd := &cobra.Command{
		Use:   "params [input]",
		Short: "Split a delimited parameter list such as (a, b, f(c))",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delims := a.cfg.Params
			if cmd.Flags().Changed("start") {
				delims.Start = start
			}
			if cmd.Flags().Changed("sep") {
				delims.Separator = sep
			}
			if cmd.Flags().Changed("end") {
				delims.End = end
			}
			for _, d := range []string{delims.Start, delims.Separator, delims.End} {
				if utf8.RuneCountInString(d) != 1 {
					return &CLIError{Message: fmt.Sprintf("delimiter %q must be a single character", d)}
				}
			}
			if err := (config.Config{Params: delims}).Validate(); err != nil {
				return &CLIError{Message: err.Error(), Err: err}
			}

			input, err := readInput(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}

			r0, r1, r2 := delims.Runes()
			p := parser.ParamList(parser.Delimiters(r0, r1, r2))
			ctx := a.parseContext()
			st := p.ParseWith(input, ctx)
			a.logStats(ctx)
			return report(a, cmd.OutOrStdout(), "param-list", st)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read input from file (- for stdin)")
	cmd.Flags().StringVar(&start, "start", "(", "List start character")
	cmd.Flags().StringVar(&sep, "sep", ",", "Parameter separator character")
	cmd.Flags().StringVar(&end, "end", ")", "List end character")
	return cmd
}

func newStringsCmd(a *app) *cobra.Command {
	var (
		file        string
		to          string
		keepEscapes bool
		skipPastEnd bool
		requireEnd  bool
	)

	cmd := &cobra.Command{
		Use:   "strings [input]",
		Short: "Capture text up to an unquoted, unescaped terminal character",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			terminal := a.cfg.Strings
			if cmd.Flags().Changed("to") {
				terminal.Terminal = to
			}
			if utf8.RuneCountInString(terminal.Terminal) != 1 {
				return &CLIError{
					Message: fmt.Sprintf("terminal %q must be a single character", terminal.Terminal),
					Hint:    "use --to with one character",
				}
			}

			input, err := readInput(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}

			var opts []parser.EscapeOpt
			if keepEscapes {
				opts = append(opts, parser.KeepEscapes())
			}
			if skipPastEnd {
				opts = append(opts, parser.SkipPastEnd())
			}
			if requireEnd {
				opts = append(opts, parser.NotToEndOfInput())
			}

			p := parser.StringWithEscapesUpTo(terminal.Rune(), opts...)
			ctx := a.parseContext()
			st := p.ParseWith(input, ctx)
			a.logStats(ctx)
			return report(a, cmd.OutOrStdout(), "strings", st)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read input from file (- for stdin)")
	cmd.Flags().StringVar(&to, "to", `"`, "Terminal character")
	cmd.Flags().BoolVar(&keepEscapes, "keep-escapes", false, "Keep escape sequences as written")
	cmd.Flags().BoolVar(&skipPastEnd, "skip-past-end", false, "Consume the terminal character")
	cmd.Flags().BoolVar(&requireEnd, "require-terminal", false, "Fail when the terminal is missing")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "pcomb %s\n", version)
			return err
		},
	}
}
