package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

func applyColor(mode string) {
	switch mode {
	case "yes", "true", "1":
		color.NoColor = false
	case "no", "false", "0":
		color.NoColor = true
	}
}

// status prints a green progress line.
func status(w io.Writer, format string, args ...any) {
	_, _ = color.New(color.FgGreen).Fprintf(w, format+"\n", args...)
}

// warn prints a yellow line for problems that do not fail the command.
func warn(w io.Writer, format string, args ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(w, format+"\n", args...)
}

func printError(w io.Writer, err error) {
	_, _ = color.New(color.FgRed, color.Bold).Fprint(w, "error: ")
	_, _ = fmt.Fprintln(w, err)
}
