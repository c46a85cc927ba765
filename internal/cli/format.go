package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

func printSuccess(w io.Writer, msg string) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", msg)
}

func printError(w io.Writer, msg string) {
	_, _ = errorColor.Fprintf(w, "✗ %s\n", msg)
}

func printHeader(w io.Writer, title string) {
	_, _ = headerColor.Fprintf(w, "▸ %s\n", title)
}

func printLabelValue(w io.Writer, label string, value any) {
	_, _ = labelColor.Fprintf(w, "  %s: ", label)
	_, _ = fmt.Fprintln(w, value)
}

func printDim(w io.Writer, msg string) {
	_, _ = dimColor.Fprintln(w, msg)
}
