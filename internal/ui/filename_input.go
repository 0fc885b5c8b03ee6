package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gomeasure/gomeasure/filename"
)

// FilenameInput is an interactive prompt for measurement filenames with
// placeholder validation and completion. Typing "{" opens a popup listing
// the available placeholders; the warning line reflects the current
// validation result.
type FilenameInput struct {
	input     textinput.Model
	validator *filename.Validator
	completer *filename.Completer

	result      filename.Result
	suggestions []string
	selected    int
	submitted   bool
	value       string
	width       int
}

// NewFilenameInput creates a filename prompt offering the given placeholder
// names in addition to the built-in ones.
func NewFilenameInput(placeholders []string) *FilenameInput {
	input := textinput.New()
	input.Placeholder = "measurement_{date}_{time}"
	input.CharLimit = 200
	input.Width = 50
	input.Focus()

	return &FilenameInput{
		input:     input,
		validator: filename.NewValidator(placeholders),
		completer: filename.NewCompleter(placeholders),
		width:     60,
	}
}

// SetValue replaces the current text and revalidates.
func (m *FilenameInput) SetValue(text string) {
	m.input.SetValue(text)
	m.refresh()
}

// Value returns the committed filename, fixed up if needed. Empty until
// the user submits.
func (m *FilenameInput) Value() string {
	return m.value
}

// Submitted reports whether the user committed an acceptable filename.
func (m *FilenameInput) Submitted() bool {
	return m.submitted
}

// Result returns the validation result for the current text.
func (m *FilenameInput) Result() filename.Result {
	return m.result
}

// Suggestions returns the completion entries currently offered.
func (m *FilenameInput) Suggestions() []string {
	return m.suggestions
}

func (m *FilenameInput) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FilenameInput) SetWidth(width int) {
	m.width = width
	if width > 10 {
		m.input.Width = width - 10
	}
}

func (m *FilenameInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetWidth(msg.Width)
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			if len(m.suggestions) > 0 {
				m.suggestions = nil
				m.selected = 0
				return nil
			}
			m.input.SetValue("")
			m.refresh()
			return nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("down"))):
			if len(m.suggestions) > 0 {
				m.selected = (m.selected + 1) % len(m.suggestions)
				return nil
			}

		case key.Matches(msg, key.NewBinding(key.WithKeys("up"))):
			if len(m.suggestions) > 0 {
				m.selected = (m.selected + len(m.suggestions) - 1) % len(m.suggestions)
				return nil
			}

		case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
			if len(m.suggestions) > 0 {
				m.acceptSuggestion(m.suggestions[m.selected])
				return nil
			}

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if len(m.suggestions) > 0 {
				m.acceptSuggestion(m.suggestions[m.selected])
				return nil
			}
			return m.commit()
		}

		m.input, cmd = m.input.Update(msg)
		m.refresh()
	}

	return cmd
}

// commit applies Fixup to unterminated trailing placeholders and accepts the
// text if it validates. Invalid filenames stay in the prompt.
func (m *FilenameInput) commit() tea.Cmd {
	text := m.validator.Fixup(m.input.Value())
	res := m.validator.Validate(text)
	if res.State != filename.Acceptable {
		m.input.SetValue(text)
		m.refresh()
		return nil
	}
	m.value = text
	m.submitted = true
	return nil
}

// acceptSuggestion replaces the text with the chosen completion, which is
// the full input up to and including the closed placeholder.
func (m *FilenameInput) acceptSuggestion(entry string) {
	m.input.SetValue(entry)
	m.input.CursorEnd()
	m.refresh()
}

// refresh revalidates the current text and recomputes the completion popup.
func (m *FilenameInput) refresh() {
	text := m.input.Value()
	m.result = m.validator.Validate(text)

	m.completer.Update(text)
	m.suggestions = m.completer.Filter(text)
	if m.selected >= len(m.suggestions) {
		m.selected = 0
	}
}

func (m *FilenameInput) View() string {
	var b strings.Builder

	b.WriteString(promptStyle.Render("Filename"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch m.result.State {
	case filename.Invalid:
		b.WriteString(errorStyle.Render("invalid filename"))
		b.WriteString("\n")
	case filename.Intermediate:
		b.WriteString(warningStyle.Render("unterminated placeholder (enter to fix up)"))
		b.WriteString("\n")
	case filename.Acceptable:
		if len(m.result.Unknown) > 0 {
			b.WriteString(warningStyle.Render(fmt.Sprintf(
				"unknown placeholders: %s", strings.Join(m.result.Unknown, ", "))))
			b.WriteString("\n")
		}
	}

	if len(m.suggestions) > 0 {
		var rows []string
		for i, s := range m.suggestions {
			if i == m.selected {
				rows = append(rows, selectedSuggestionStyle.Render("> "+s))
			} else {
				rows = append(rows, suggestionStyle.Render("  "+s))
			}
		}
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab/enter complete • enter submit • esc clear"))
	return b.String()
}
