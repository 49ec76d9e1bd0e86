package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	scrollbarThumb = "█"
	scrollbarTrack = "│"
)

// renderScrollbar creates a vertical scrollbar indicator for the feed view.
// Returns a multi-line string with one character per line.
func renderScrollbar(height int, totalLines int, scrollOffset int) string {
	if height <= 0 {
		return ""
	}

	trackStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	thumbStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// Content fits: empty track
	if totalLines <= height {
		track := make([]string, height)
		for i := 0; i < height; i++ {
			track[i] = trackStyle.Render(scrollbarTrack)
		}
		return strings.Join(track, "\n")
	}

	thumbSize := (height * height) / totalLines
	if thumbSize < 1 {
		thumbSize = 1
	}
	if thumbSize > height {
		thumbSize = height
	}

	scrollRatio := float64(scrollOffset) / float64(totalLines-height)
	if scrollRatio < 0 {
		scrollRatio = 0
	}
	if scrollRatio > 1 {
		scrollRatio = 1
	}

	maxThumbPos := height - thumbSize
	thumbPos := int(scrollRatio * float64(maxThumbPos))

	lines := make([]string, height)
	for i := 0; i < height; i++ {
		if i >= thumbPos && i < thumbPos+thumbSize {
			lines[i] = thumbStyle.Render(scrollbarThumb)
		} else {
			lines[i] = trackStyle.Render(scrollbarTrack)
		}
	}

	return strings.Join(lines, "\n")
}
