package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Colors - soft chat-app palette built around the Hush brand purple.
var (
	colorBrand    = lipgloss.Color("#8b5cf6") // Hush purple
	colorAccent   = lipgloss.Color("#ec4899") // Pink accent (likes, highlights)
	colorBrandDim = lipgloss.Color("#6d28d9")

	colorError   = lipgloss.Color("#ef4444")
	colorSuccess = lipgloss.Color("#22c55e")
	colorMuted   = lipgloss.Color("#6b7280")

	colorBg      = lipgloss.Color("#0f0f17")
	colorBgPanel = lipgloss.Color("#16161f")
	colorBorder  = lipgloss.Color("#2e2e44")
)

// Styles
var (
	// Top bar: page title or back-enabled chat header
	topBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBrand).
			Background(colorBgPanel).
			Padding(0, 1)

	backHintStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Bottom navigation tabs
	navItemStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 2)

	navItemActiveStyle = lipgloss.NewStyle().
				Foreground(colorBg).
				Background(colorBrand).
				Bold(true).
				Padding(0, 2)

	// List rows (conversations, groups, members)
	listItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	listItemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorBg).
				Background(colorBrand).
				Bold(true).
				Padding(0, 1)

	previewStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	likedStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	// Feed viewport frame
	feedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBrandDim)

	senderNameStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Input bar
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBrand).
			Padding(0, 1)

	inputDisabledStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 1)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(colorBrand).
				Bold(true)

	// Inline errors and empty states
	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Align(lipgloss.Center)

	dimmedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	sectionTitleStyle = lipgloss.NewStyle().
				Foreground(colorBrand).
				Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	// Settings / profile panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().
			Foreground(colorError)
)

// renderSectionTitle renders a section header spanning the full width.
func renderSectionTitle(title string, width int) string {
	titleWithSpaces := " " + title + " "
	titleDisplayWidth := lipgloss.Width(titleWithSpaces)
	availableWidth := width - titleDisplayWidth - 2
	if availableWidth < 2 {
		availableWidth = 2
	}
	leftDashes := availableWidth / 2
	rightDashes := availableWidth - leftDashes

	line := "─" + strings.Repeat("─", leftDashes) + titleWithSpaces + strings.Repeat("─", rightDashes) + "─"
	return sectionTitleStyle.Width(width).Render(line)
}

// truncateToWidth truncates a string to fit within maxWidth display columns.
// Rune-aware to avoid cutting multi-byte characters.
func truncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	currentWidth := 0
	for i, r := range s {
		charWidth := lipgloss.Width(string(r))
		if currentWidth+charWidth > maxWidth {
			return s[:i]
		}
		currentWidth += charWidth
	}
	return s
}

func truncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return truncateToWidth(s, maxWidth)
	}
	return truncateToWidth(s, maxWidth-3) + "..."
}

// wrapText wraps text to fit within maxWidth display columns, preserving
// words. Long words that exceed maxWidth are hard-wrapped.
func wrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		maxWidth = 80
	}

	var lines []string
	paragraphs := strings.Split(text, "\n")

	for _, para := range paragraphs {
		if para == "" {
			lines = append(lines, "")
			continue
		}

		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		currentLine := ""
		for _, word := range words {
			wordWidth := lipgloss.Width(word)

			if wordWidth > maxWidth {
				if currentLine != "" {
					lines = append(lines, currentLine)
					currentLine = ""
				}
				for len(word) > 0 {
					chunk := truncateToWidth(word, maxWidth)
					lines = append(lines, chunk)
					chunkRunes := []rune(chunk)
					wordRunes := []rune(word)
					if len(chunkRunes) < len(wordRunes) {
						word = string(wordRunes[len(chunkRunes):])
					} else {
						word = ""
					}
				}
				continue
			}

			if currentLine == "" {
				currentLine = word
			} else if lipgloss.Width(currentLine)+1+wordWidth <= maxWidth {
				currentLine += " " + word
			} else {
				lines = append(lines, currentLine)
				currentLine = word
			}
		}
		if currentLine != "" {
			lines = append(lines, currentLine)
		}
	}

	return lines
}

// formatRelativeTime renders a timestamp the way list rows show it.
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := time.Since(t)
	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return strconv.Itoa(minutes) + "m ago"
	case hours < 24:
		return strconv.Itoa(hours) + "h ago"
	case days < 7:
		return strconv.Itoa(days) + "d ago"
	}
	return t.Local().Format("Jan 2")
}
