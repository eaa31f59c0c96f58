package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"regress/internal/domain"
	"regress/internal/storage"
)

// ErrorViewer displays the failures of the last run in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer. Resolved marks are saved through st.
func NewErrorViewer(st storage.Storage) *ErrorViewer {
	return &ErrorViewer{storage: st}
}

// View displays the failures in results
func (ev *ErrorViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	for i := range results.Details {
		list.AddItem(listItemText(results.Details[i], i), "", 0, nil)
	}

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	var saveErr error
	updateHeader := func() {
		headerView.SetText(headerText(results, saveErr))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(results.Details) {
			return
		}
		failure := results.Details[index]
		statsView.SetText(formatFailureStats(failure))
		detailsView.SetText(formatFailureDetails(failure))
		detailsView.ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() != 'r' && event.Rune() != 'R' {
				return event
			}
			index := list.GetCurrentItem()
			if index >= 0 && index < len(results.Details) {
				saveErr = ev.toggleResolved(results, index)
				list.SetItemText(index, listItemText(results.Details[index], index), "")
				updateHeader()
				updateDetails()
			}
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsView, 0, 1, false)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// toggleResolved flips the resolved mark of the failure at index and saves
// the record. The mark stays flipped in memory when the save fails.
func (ev *ErrorViewer) toggleResolved(results *domain.TestResultsOutput, index int) error {
	results.Details[index].Resolved = !results.Details[index].Resolved
	if err := ev.storage.SaveOutput(results); err != nil {
		return fmt.Errorf("save resolved mark: %w", err)
	}
	return nil
}

// headerText renders the viewer header. A failed save replaces the key help.
func headerText(results *domain.TestResultsOutput, saveErr error) string {
	unresolved := 0
	for _, f := range results.Details {
		if !f.Resolved {
			unresolved++
		}
	}
	if saveErr != nil {
		return fmt.Sprintf(" Test Failures (%d total, %d unresolved) | [red]%s[white] ",
			len(results.Details), unresolved, tview.Escape(saveErr.Error()))
	}
	return fmt.Sprintf(" Test Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, Ctrl+C exit ",
		len(results.Details), unresolved)
}

func listItemText(failure domain.TestFailure, index int) string {
	name := failure.TestName
	if name == "" {
		name = fmt.Sprintf("Test %d", index+1)
	}
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, tview.Escape(name))
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, tview.Escape(name))
}

// formatFailureDetails formats a failure using tview color tags
func formatFailureDetails(failure domain.TestFailure) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[red]✗ %s: %s[white]\n\n", failure.Status, tview.Escape(failure.TestName))
	fmt.Fprintf(&b, "[cyan]Module: %s[white]\n", tview.Escape(failure.Module))
	if failure.Duration != "" {
		fmt.Fprintf(&b, "[cyan]Duration: %s[white]\n", failure.Duration)
	}
	b.WriteString("\n")
	if failure.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n", tview.Escape(failure.Message))
	}
	return b.String()
}

func formatFailureStats(failure domain.TestFailure) string {
	module := failure.Module
	if module == "" {
		module = "unknown module"
	}
	return fmt.Sprintf("[cyan]case:[white] [yellow]%s[white] ([yellow]%s[white])\n",
		tview.Escape(failure.TestName), tview.Escape(module))
}
