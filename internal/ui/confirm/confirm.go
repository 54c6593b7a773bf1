// Package confirm is a bubbletea y/N prompt that decides on a single
// key press.
package confirm

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
	"github.com/muesli/termenv"
)

// Decision is the outcome of the prompt
type Decision int

const (
	Undecided Decision = iota
	Accepted
	Denied
)

// String satisfies the fmt.Stringer interface
func (d Decision) String() string {
	return [...]string{
		"undecided",
		"accepted",
		"denied",
	}[d]
}

// IsAccepted is a helper to indicate the positive confirmation state was selected
func (d Decision) IsAccepted() bool {
	return d == Accepted
}

// Styles holds relevant styles used for rendering
type Styles struct {
	PromptPrefix lipgloss.Style
	Prompt       lipgloss.Style
	Text         lipgloss.Style
	Placeholder  lipgloss.Style
}

// Model is the bubbletea model of the prompt
type Model struct {
	// PromptPrefix is shown before the prompt, separately styled
	PromptPrefix string

	// Prompt is the question asked
	Prompt string

	// AcceptedDecisionText and DeniedDecisionText are the answers; their
	// first letter is the key that picks them
	AcceptedDecisionText string
	DeniedDecisionText   string

	// DefaultValue is capitalized in the hint and starts out selected
	DefaultValue Decision

	Styles Styles

	selected Decision
	text     textinput.Model
	done     bool
}

// New creates a new model with default settings
func New(prompt string) Model {
	return Model{
		PromptPrefix:         "? ",
		Prompt:               prompt,
		AcceptedDecisionText: "y",
		DeniedDecisionText:   "n",
		DefaultValue:         Denied,
		Styles: Styles{
			PromptPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)),
			Text:         lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(termenv.ANSIBrightCyan)),
		},
	}
}

// Selected retrieves the default or user-selected Decision value
func (m *Model) Selected() Decision {
	return m.selected
}

// Value returns the chosen answer text
func (m *Model) Value() string {
	switch m.selected {
	case Accepted:
		return m.AcceptedDecisionText
	case Denied:
		return m.DeniedDecisionText
	}
	return ""
}

func (m *Model) hint() string {
	accept, deny := m.AcceptedDecisionText, m.DeniedDecisionText
	switch m.DefaultValue {
	case Accepted:
		accept = strings.ToUpper(accept)
	case Denied:
		deny = strings.ToUpper(deny)
	}
	return accept + "/" + deny
}

// Init satisfies the tea.Model interface
func (m *Model) Init() tea.Cmd {
	m.selected = m.DefaultValue

	input := textinput.New()
	input.Placeholder = m.hint()
	input.Prompt = m.Prompt
	if !strings.HasSuffix(input.Prompt, " ") {
		input.Prompt += " "
	}
	input.PromptStyle = m.Styles.Prompt
	input.PlaceholderStyle = m.Styles.Placeholder
	input.TextStyle = m.Styles.Text
	input.CharLimit = 1
	input.Focus()
	m.text = input
	return nil
}

func (m *Model) decide(d Decision) (tea.Model, tea.Cmd) {
	m.selected = d
	m.done = true
	return m, tea.Quit
}

// Update satisfies the tea.Model interface. Ctrl-C and Esc deny, enter
// takes the default, the first letter of either answer decides at once.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.decide(Denied)
	case tea.KeyEnter:
		return m.decide(m.DefaultValue)
	}

	s := key.String()
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) {
		return m, nil
	}
	switch strings.ToLower(s) {
	case strings.ToLower(m.AcceptedDecisionText[:1]):
		return m.decide(Accepted)
	case strings.ToLower(m.DeniedDecisionText[:1]):
		return m.decide(Denied)
	}
	return m, nil
}

// View satisfies the tea.Model interface
func (m *Model) View() string {
	var b strings.Builder
	if m.PromptPrefix != "" {
		b.WriteString(m.Styles.PromptPrefix.Inline(true).Render(m.PromptPrefix))
	}

	if m.done {
		// keep the question and the answer on screen
		promptRender := m.Styles.Prompt.Inline(true).Render
		b.WriteString(promptRender(m.Prompt))
		b.WriteString(promptRender(" "))
		b.WriteString(m.Styles.Text.Inline(true).Render(m.Value()))
		b.WriteRune('\n')
		return b.String()
	}

	b.WriteString(m.text.View())
	return b.String()
}
