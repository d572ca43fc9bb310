// Command pcomb runs the built-in grammars and scanners over text and prints the
// parse outcome as text, JSON, YAML or canonical CBOR.
package main

import (
	"errors"
	"io"
	"os"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitNoMatch = 1
	ExitError   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errNoMatch):
		return ExitNoMatch
	default:
		FormatError(stderr, err, shouldUseColor(stderr))
		return ExitError
	}
}
