package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"tse2e/internal/domain"
	"tse2e/internal/storage"
)

// ErrorViewer displays case failures in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
	logger  *zap.Logger
}

// NewErrorViewer creates a new ErrorViewer that persists resolved marks to st
func NewErrorViewer(st storage.Storage, logger *zap.Logger) *ErrorViewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorViewer{storage: st, logger: logger}
}

// View displays the failures of output. Callers handle the no-failure case.
func (ev *ErrorViewer) View(output *domain.RunOutput) error {
	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i := range output.Details {
		list.AddItem(listItemText(output.Details[i], i), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(headerText(output))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(output.Details) {
			statsView.SetText(formatFailureStats(output.Meta, output.Details[index]))
			detailsView.SetText(formatFailureDetails(output.Details[index]))
		}
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
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if ToggleResolved(output, index) {
					list.SetItemText(index, listItemText(output.Details[index], index), "")
					updateHeader()
					updateDetails()
					if err := ev.storage.SaveOutput(output); err != nil {
						ev.logger.Warn("failed to save resolved status", zap.Error(err))
					}
				}
				return nil
			}
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

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// ToggleResolved flips the resolved mark of the failure at index and
// reports whether index was valid.
func ToggleResolved(output *domain.RunOutput, index int) bool {
	if index < 0 || index >= len(output.Details) {
		return false
	}
	output.Details[index].Resolved = !output.Details[index].Resolved
	return true
}

// Unresolved counts failures not yet marked resolved.
func Unresolved(failures []domain.CaseFailure) int {
	count := 0
	for _, f := range failures {
		if !f.Resolved {
			count++
		}
	}
	return count
}

func headerText(output *domain.RunOutput) string {
	return fmt.Sprintf(" Case Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
		len(output.Details), Unresolved(output.Details))
}

func listItemText(failure domain.CaseFailure, index int) string {
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, tview.Escape(failure.Name))
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, tview.Escape(failure.Name))
}

// formatFailureDetails formats a failure using tview color tags
func formatFailureDetails(failure domain.CaseFailure) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "[red]✗ Case: %s[white]\n\n", tview.Escape(failure.Name))
	if failure.Duration != "" {
		fmt.Fprintf(&builder, "[cyan]Duration: %s[white]\n\n", failure.Duration)
	}
	fmt.Fprintf(&builder, "[yellow]Error:[white]\n%s\n", tview.Escape(failure.Error))
	if failure.Resolved {
		builder.WriteString("\n[gray]marked as resolved[white]\n")
	}
	return builder.String()
}

func formatFailureStats(meta domain.RunMeta, failure domain.CaseFailure) string {
	module, variant := SplitCaseName(failure.Name)
	return fmt.Sprintf("[cyan]run:[white] [yellow]%s[white] ([cyan]backend[white] %s, [cyan]seed[white] %d)\n[cyan]case:[white] [yellow]%s[white]::[yellow]%s[white]\n",
		meta.RunID, meta.Backend, meta.Seed, tview.Escape(module), tview.Escape(variant))
}
