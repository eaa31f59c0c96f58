package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"regress/suite"
)

const separatorWidth = 70

var (
	separator1 = strings.Repeat("=", separatorWidth)
	separator2 = strings.Repeat("-", separatorWidth)
)

// TextReporter prints case results the way a classic text test runner does.
// Verbosity 2 and up prints a line per case, 1 a character per case (or a
// progress bar), 0 and below only the failures and the summary.
type TextReporter struct {
	out         io.Writer
	verbosity   int
	useProgress bool
	progress    *ProgressBar

	passed, failed int
}

// NewTextReporter creates a TextReporter. useProgress swaps the per-case
// characters of verbosity 1 for a progress bar.
func NewTextReporter(out io.Writer, verbosity int, useProgress bool) *TextReporter {
	return &TextReporter{out: out, verbosity: verbosity, useProgress: useProgress}
}

func (r *TextReporter) Start(total int) {
	if r.verbosity == 1 && r.useProgress && total > 0 {
		r.progress = NewProgressBar(total)
	}
}

func (r *TextReporter) StartCase(module string, c suite.Case) {
	if r.verbosity >= 2 {
		id := suite.Outcome{Module: module, Case: c.Name()}.ID()
		fmt.Fprintf(r.out, "%s ... ", id)
	}
}

func (r *TextReporter) EndCase(o suite.Outcome) {
	if o.Status == suite.StatusFail || o.Status == suite.StatusError {
		r.failed++
	} else {
		r.passed++
	}

	switch {
	case r.verbosity >= 2:
		fmt.Fprintln(r.out, statusWord(o))
	case r.verbosity == 1 && r.progress != nil:
		r.progress.Update(r.passed, r.failed)
	case r.verbosity == 1:
		fmt.Fprint(r.out, statusChar(o.Status))
	}
}

func (r *TextReporter) Finish(result *suite.Result) {
	if r.progress != nil {
		r.progress.Finish()
	}
	if r.verbosity >= 1 && result.TestsRun() > 0 {
		fmt.Fprintln(r.out)
	}

	r.printErrorList("ERROR", result.Errors())
	r.printErrorList("FAIL", result.Failures())

	fmt.Fprintln(r.out, separator2)
	plural := "s"
	if result.TestsRun() == 1 {
		plural = ""
	}
	fmt.Fprintf(r.out, "Ran %d test%s in %.3fs\n\n", result.TestsRun(), plural, result.Duration.Seconds())

	var infos []string
	if n := len(result.Failures()); n > 0 {
		infos = append(infos, fmt.Sprintf("failures=%d", n))
	}
	if n := len(result.Errors()); n > 0 {
		infos = append(infos, fmt.Sprintf("errors=%d", n))
	}
	if n := len(result.Skipped()); n > 0 {
		infos = append(infos, fmt.Sprintf("skipped=%d", n))
	}
	suffix := ""
	if len(infos) > 0 {
		suffix = " (" + strings.Join(infos, ", ") + ")"
	}

	if result.WasSuccessful() {
		color.New(color.FgGreen).Fprintf(r.out, "OK%s\n", suffix)
		return
	}
	color.New(color.FgRed).Fprintf(r.out, "FAILED%s\n", suffix)
}

func (r *TextReporter) printErrorList(flavour string, outcomes []suite.Outcome) {
	for _, o := range outcomes {
		fmt.Fprintln(r.out, separator1)
		fmt.Fprintf(r.out, "%s: %s\n", flavour, o.ID())
		fmt.Fprintln(r.out, separator2)
		fmt.Fprintf(r.out, "%s\n\n", strings.TrimRight(o.Message, "\n"))
	}
}

func statusWord(o suite.Outcome) string {
	switch o.Status {
	case suite.StatusFail:
		return color.RedString("FAIL")
	case suite.StatusError:
		return color.RedString("ERROR")
	case suite.StatusSkip:
		return color.YellowString("skipped '%s'", o.Message)
	default:
		return color.GreenString("ok")
	}
}

func statusChar(s suite.Status) string {
	switch s {
	case suite.StatusFail:
		return "F"
	case suite.StatusError:
		return "E"
	case suite.StatusSkip:
		return "s"
	default:
		return "."
	}
}
