package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hushchat/hush-tui/internal/constants"
)

// ComposeModel handles the message compose bar at the bottom of chat views.
type ComposeModel struct {
	textInput textinput.Model
	active    bool
	enabled   bool // false when the viewer is not a group member
}

// NewComposeModel creates a compose bar.
func NewComposeModel() ComposeModel {
	ti := textinput.New()
	ti.Placeholder = "Type a message"
	ti.CharLimit = constants.MaxComposeLength
	ti.Width = 60

	return ComposeModel{
		textInput: ti,
		enabled:   true,
	}
}

// SetEnabled gates the compose bar on group membership.
func (m *ComposeModel) SetEnabled(enabled bool) {
	m.enabled = enabled
	if !enabled {
		m.Blur()
	}
}

// Enabled reports whether composing is allowed in the current scope.
func (m ComposeModel) Enabled() bool {
	return m.enabled
}

// Focus activates the compose bar.
func (m *ComposeModel) Focus() tea.Cmd {
	if !m.enabled {
		return nil
	}
	m.active = true
	m.textInput.Focus()
	return textinput.Blink
}

// Blur deactivates the compose bar without clearing the draft.
func (m *ComposeModel) Blur() {
	m.active = false
	m.textInput.Blur()
}

// IsActive reports whether the compose bar has focus.
func (m ComposeModel) IsActive() bool {
	return m.active
}

// Value returns the current draft.
func (m ComposeModel) Value() string {
	return m.textInput.Value()
}

// Reset clears the draft after a send.
func (m *ComposeModel) Reset() {
	m.textInput.Reset()
}

// SetWidth sets the compose bar width.
func (m *ComposeModel) SetWidth(width int) {
	m.textInput.Width = width - 4 // Account for padding/border
}

// Update handles input updates.
func (m ComposeModel) Update(msg tea.Msg) (ComposeModel, tea.Cmd) {
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the compose bar. When disabled it shows the join hint instead
// of an input, matching the membership gate on group feeds.
func (m ComposeModel) View(width int) string {
	if !m.enabled {
		hint := dimmedStyle.Render("Join to send messages  ·  press 'J' to join")
		return inputDisabledStyle.Width(width - 2).Render(hint)
	}
	if !m.active {
		placeholder := dimmedStyle.Render("Press 'i' to type a message")
		return inputDisabledStyle.Width(width - 2).Render(placeholder)
	}
	return inputStyle.Width(width - 2).Render(m.textInput.View())
}
