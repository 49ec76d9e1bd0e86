package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hushchat/hush-tui/internal/api"
)

// groupEmojis seeds a stable per-group glyph when the name carries none.
var groupEmojis = []string{"🎉", "🌟", "🔥", "💫", "⚡", "🎊", "✨", "🎈", "🎁", "🎯", "🎪", "🎭", "🎨", "🎬", "🎮", "🎲", "🎸", "🎺", "🎻", "🥁"}

// groupGlyph extracts the first emoji from the group name, or derives one
// from the group ID so the same group always shows the same glyph.
func groupGlyph(g api.Group) string {
	for _, r := range g.Name {
		if isEmoji(r) {
			return string(r)
		}
	}
	return groupEmojis[int(g.GroupID)%len(groupEmojis)]
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F9FF:
		return true
	case r >= 0x2600 && r <= 0x26FF:
		return true
	case r >= 0x2700 && r <= 0x27BF:
		return true
	}
	return false
}

// filterGroups narrows the public-group list by a case-insensitive name
// query. Joined groups are excluded: those appear in the chats list.
func filterGroups(groups []api.Group, query string) []api.Group {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []api.Group
	for _, g := range groups {
		if g.IsMember {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(g.Name), query) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// renderGroupList renders the groups tab content below the search box.
func renderGroupList(groups []api.Group, selectedIdx, width, height int) string {
	header := renderSectionTitle("PUBLIC GROUPS", width)

	if len(groups) == 0 {
		body := emptyStyle.Width(width).Render("No public groups available")
		return lipgloss.JoinVertical(lipgloss.Left, header, body)
	}

	var rows []string
	for i, g := range groups {
		rows = append(rows, renderGroupRow(g, i == selectedIdx, width))
	}
	content := strings.Join(rows, "\n")
	body := lipgloss.NewStyle().Width(width).Height(height - 1).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func renderGroupRow(g api.Group, selected bool, width int) string {
	name := truncateWithEllipsis(g.Name, 24)

	preview := g.LastMessageContent
	if preview == "" {
		preview = "No messages yet"
	}
	previewWidth := width - 24 - 10
	if previewWidth < 10 {
		previewWidth = 10
	}
	previewText := previewStyle.Render(truncateWithEllipsis(strings.ReplaceAll(preview, "\n", " "), previewWidth))

	line := groupGlyph(g) + " " + padRight(name, 24) + " " + previewText
	if when := formatRelativeTime(api.ParseTimestamp(g.LastMessageTime)); when != "" {
		line += "  " + dimmedStyle.Render(when)
	}

	if selected {
		return listItemSelectedStyle.Width(width).Render(line)
	}
	return listItemStyle.Width(width).Render(line)
}

// renderGroupSearch renders the search box above the group list.
func renderGroupSearch(query string, width int) string {
	content := "🔍 " + query
	if query == "" {
		content = "🔍 " + dimmedStyle.Render("Search groups... (press '/' to type)")
	}
	return panelStyle.Width(width - 2).Render(content)
}
