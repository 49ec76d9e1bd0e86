package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hushchat/hush-tui/internal/constants"
)

// settingsItem identifies one row in the settings list.
type settingsItem int

const (
	settingEditProfile settingsItem = iota
	settingMessageColor
	settingSuperPowers
	settingPrivacy
	settingLogout
	settingsItemCount
)

func (s settingsItem) title() string {
	switch s {
	case settingEditProfile:
		return "Edit My Profile"
	case settingMessageColor:
		return "My Message Colour"
	case settingSuperPowers:
		return "My Super Powers"
	case settingPrivacy:
		return "Privacy & Security"
	case settingLogout:
		return "Log Out"
	}
	return ""
}

func (s settingsItem) subtitle() string {
	switch s {
	case settingEditProfile:
		return "Update your profile information"
	case settingMessageColor:
		return "Choose your message bubble color"
	case settingSuperPowers:
		return "Coming soon"
	case settingPrivacy:
		return "Manage your privacy settings"
	case settingLogout:
		return "Sign out of your account"
	}
	return ""
}

// renderSettings renders the settings list.
func renderSettings(selectedIdx int, currentColor string, width int) string {
	var rows []string
	for i := settingsItem(0); i < settingsItemCount; i++ {
		title := i.title()
		if i == settingLogout {
			title = dangerStyle.Render(title)
		}
		if i == settingMessageColor && currentColor != "" {
			title += "  " + lipgloss.NewStyle().Background(lipgloss.Color(currentColor)).Render("  ")
		}

		line := padRight(title, 34) + " " + dimmedStyle.Render(i.subtitle())
		if int(i) == selectedIdx {
			rows = append(rows, listItemSelectedStyle.Width(width).Render(line))
		} else {
			rows = append(rows, listItemStyle.Width(width).Render(line))
		}
	}

	return strings.Join(rows, "\n")
}

// renderColorPicker renders the bubble-color palette grid.
func renderColorPicker(selectedIdx int, currentColor string, width int) string {
	const perRow = 5

	var rows []string
	var cells []string
	for i, opt := range constants.MessageColorPalette {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(opt.Value)).Render("   ")
		label := opt.Name
		if opt.Value == currentColor {
			label += " ✓"
		}

		cell := swatch + " " + padRight(label, 11)
		if i == selectedIdx {
			cell = listItemSelectedStyle.Render(cell)
		} else {
			cell = listItemStyle.Render(cell)
		}
		cells = append(cells, cell)

		if len(cells) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}
	if len(cells) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	hint := dimmedStyle.Render("←/→/↑/↓ choose  ·  enter save  ·  esc cancel")

	return panelStyle.Width(width - 2).Render(
		sectionTitleStyle.Render("My Message Colour") + "\n" +
			strings.Join(rows, "\n") + "\n" + hint,
	)
}

// renderLogoutConfirm renders the destructive-action confirmation prompt.
func renderLogoutConfirm(width int) string {
	body := dangerStyle.Render("Log out of your account?") + "\n" +
		dimmedStyle.Render("[ y ] log out  ·  [ n ] cancel")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, panelStyle.Render(body))
}

// renderFriends renders the friends tab placeholder.
func renderFriends(width int) string {
	return emptyStyle.Width(width).Render("Friends coming soon")
}
