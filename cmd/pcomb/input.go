package main

import (
	"fmt"
	"io"
	"os"
)

// readInput returns the text to parse. The sources, in order:
//  1. an inline argument
//  2. a file named with -f, where "-" is stdin
//  3. piped stdin
func readInput(stdin io.Reader, args []string, file string) (string, error) {
	if len(args) > 0 && file != "" {
		return "", &CLIError{
			Message: "input given twice",
			Hint:    "pass either an input argument or -f, not both",
		}
	}
	if len(args) > 0 {
		return args[0], nil
	}

	switch {
	case file == "-":
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("error reading file %s: %w", file, err)
		}
		return string(data), nil
	case !hasPipedInput(stdin):
		return "", &CLIError{
			Message: "no input",
			Hint:    "pass the input as an argument, with -f <file>, or on stdin",
		}
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(data), nil
}

// hasPipedInput reports whether stdin is something other than a terminal.
// Readers that are not files count as piped.
func hasPipedInput(stdin io.Reader) bool {
	f, ok := stdin.(*os.File)
	if !ok {
		return stdin != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	// Pipes may not report a size, so only the mode is checked.
	return (stat.Mode() & os.ModeCharDevice) == 0
}
