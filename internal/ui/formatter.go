package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"regress/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	out     io.Writer
	testDir string
}

// NewFormatter creates a new Formatter. Paths are shown relative to testDir.
func NewFormatter(out io.Writer, testDir string) *Formatter {
	return &Formatter{out: out, testDir: testDir}
}

// PrintModuleList prints the modules a run would load, optionally with their cases.
// failed marks modules with failures in the last run.
func (f *Formatter) PrintModuleList(modules []domain.ModuleInfo, showCases bool, failed map[string]bool) {
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"Module", "Kind", "Cases", "Path"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Cases", Align: text.AlignRight},
	})

	total := 0
	for _, m := range modules {
		name := m.Name
		if failed[m.Name] {
			name += " [F]"
		}
		cases := "-"
		if m.HasSuite {
			cases = fmt.Sprint(len(m.Cases))
			total += len(m.Cases)
		}
		t.AppendRow(table.Row{name, string(m.Kind), cases, f.relPath(m.Path)})

		if showCases {
			for i, c := range m.Cases {
				branch := "├── "
				if i == len(m.Cases)-1 {
					branch = "└── "
				}
				t.AppendRow(table.Row{branch + c, "", "", ""})
			}
		}
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d module(s)", len(modules)), "", total, ""})
	t.Render()
}

// PrintRunStats prints the statistics and failures of a stored run
func (f *Formatter) PrintRunStats(output *domain.TestResultsOutput) {
	meta := output.Meta

	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetTitle("Test Execution Statistics")
	t.AppendRows([]table.Row{
		{"Run ID", meta.RunID},
		{"Modules", meta.Modules},
		{"Tests Run", meta.TestsRun},
		{"Passed", meta.Passed},
		{"Failures", meta.Failures},
		{"Errors", meta.Errors},
		{"Skipped", meta.Skipped},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds)},
		{"Timestamp", meta.Timestamp},
	})
	if meta.Failures+meta.Errors > 0 {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}
	t.Render()

	fmt.Fprintln(f.out)
	if len(output.Details) == 0 {
		fmt.Fprintln(f.out, color.GreenString("✓ All tests passed!"))
		return
	}
	fmt.Fprintln(f.out, color.RedString("✗ %d case(s) failed", len(output.Details)))
	fmt.Fprintln(f.out)
	f.printFailedTestsTree(output.Details)
}

// printFailedTestsTree prints failures grouped by module
func (f *Formatter) printFailedTestsTree(failures []domain.TestFailure) {
	byModule := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		byModule[failure.Module] = append(byModule[failure.Module], failure)
	}

	var modules []string
	for m := range byModule {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	for i, m := range modules {
		lastModule := i == len(modules)-1
		connector, indent := "├── ", "│   "
		if lastModule {
			connector, indent = "└── ", "    "
		}
		fmt.Fprintln(f.out, color.CyanString("%s%s", connector, m))

		cases := byModule[m]
		for j, c := range cases {
			branch := "├── "
			if j == len(cases)-1 {
				branch = "└── "
			}
			marker := ""
			if c.Resolved {
				marker = color.HiBlackString(" (resolved)")
			}
			fmt.Fprintf(f.out, "%s%s%s%s\n", indent, branch, color.RedString("%s %s", c.Status, c.TestName), marker)
		}
	}
}

func (f *Formatter) relPath(path string) string {
	if path == "" || f.testDir == "" {
		return path
	}
	if rel, err := filepath.Rel(f.testDir, path); err == nil {
		return rel
	}
	return path
}
