package ui

import (
	"log/slog"

	"github.com/babarot/saferm/internal/ui/confirm"
	tea "github.com/charmbracelet/bubbletea"
)

// Confirm asks prompt and reports whether the user accepted. Anything
// other than an explicit yes, including a failure to run the prompt,
// counts as no.
func Confirm(prompt string, opts ...tea.ProgramOption) bool {
	m := confirm.New(prompt)

	p := tea.NewProgram(&m, opts...)
	if _, err := p.Run(); err != nil {
		slog.Error("confirm failed", "error", err)
		return false
	}

	return m.Selected().IsAccepted()
}
