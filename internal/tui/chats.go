package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hushchat/hush-tui/internal/api"
)

// FilterMode selects which conversations the chats tab shows. Mirrors the
// top-nav icons: all, groups, private, favourites.
type FilterMode int

const (
	FilterAll FilterMode = iota
	FilterGroups
	FilterPrivate
	FilterFavourites
)

func (f FilterMode) String() string {
	switch f {
	case FilterGroups:
		return "groups"
	case FilterPrivate:
		return "private"
	case FilterFavourites:
		return "favourites"
	default:
		return "all"
	}
}

// filterConversations applies the active filter mode. All and private show
// the full one-to-one list; the remaining modes are placeholders.
func filterConversations(conversations []api.Conversation, mode FilterMode) ([]api.Conversation, string) {
	switch mode {
	case FilterAll, FilterPrivate:
		return conversations, ""
	case FilterGroups:
		return nil, "Group chats live in the Groups tab"
	default:
		return nil, "Favourite chats coming soon"
	}
}

// renderFilterBar renders the top-nav filter icons for the chats tab.
func renderFilterBar(active FilterMode, width int) string {
	labels := []struct {
		mode  FilterMode
		label string
	}{
		{FilterAll, "💬 all"},
		{FilterGroups, "👥 groups"},
		{FilterPrivate, "🔒 private"},
		{FilterFavourites, "♥ favourites"},
	}

	var parts []string
	for _, l := range labels {
		if l.mode == active {
			parts = append(parts, navItemActiveStyle.Render(l.label))
		} else {
			parts = append(parts, navItemStyle.Render(l.label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return lipgloss.NewStyle().Width(width).Render(bar)
}

// renderConversationList renders the chats tab content.
func renderConversationList(conversations []api.Conversation, selectedIdx, width, height int) string {
	if len(conversations) == 0 {
		return emptyStyle.Width(width).Render("No chats yet")
	}

	var rows []string
	for i, conv := range conversations {
		rows = append(rows, renderConversationRow(conv, i == selectedIdx, width))
	}
	content := strings.Join(rows, "\n")

	return lipgloss.NewStyle().Width(width).Height(height).Render(content)
}

func renderConversationRow(conv api.Conversation, selected bool, width int) string {
	name := truncateWithEllipsis(conv.DisplayTitle(), 20)

	like := "  "
	if conv.Liked {
		like = likedStyle.Render("♥") + " "
	}

	when := formatRelativeTime(api.ParseTimestamp(conv.LastMessageTime))

	previewWidth := width - 20 - 8 - lipgloss.Width(when)
	if previewWidth < 10 {
		previewWidth = 10
	}
	preview := previewStyle.Render(truncateWithEllipsis(strings.ReplaceAll(conv.Preview(), "\n", " "), previewWidth))

	line := like + padRight(name, 20) + " " + preview
	if when != "" {
		line += "  " + dimmedStyle.Render(when)
	}

	if selected {
		return listItemSelectedStyle.Width(width).Render(line)
	}
	return listItemStyle.Width(width).Render(line)
}

func padRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
