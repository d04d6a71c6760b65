package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"github.com/drengskapur/filemerge/pkg/merger"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.FgHiBlack)
)

func printSuccess(w io.Writer, format string, args ...any) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	_, _ = warnColor.Fprintf(w, "! %s\n", fmt.Sprintf(format, args...))
}

// PrintError writes err to w. Validation reports are printed one violation per line.
func PrintError(w io.Writer, err error) {
	var merr *multierror.Error
	if violations := merger.Violations(err); len(violations) > 0 && errors.As(err, &merr) {
		for _, v := range violations {
			_, _ = errorColor.Fprintf(w, "✗ %s\n", v.Error())
		}
		_, _ = dimColor.Fprintf(w, "%d problem(s) found\n", len(violations))
		return
	}
	_, _ = errorColor.Fprintf(w, "✗ %s\n", err)
}
