package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hushchat/hush-tui/internal/api"
	"github.com/hushchat/hush-tui/internal/feed"
	"github.com/hushchat/hush-tui/internal/session"
)

// renderFeed builds the complete feed content for the viewport. The caller
// swaps it in as one unit so the list never paints partially.
//
// colored selects group-style bubbles: each incoming message painted with
// the sender's persisted color, outgoing with the viewer's. One-to-one
// feeds stay in the neutral theme.
func renderFeed(messages []api.Message, sess *session.Session, cachedColor string, width int, colored bool) string {
	if len(messages) == 0 {
		return emptyStyle.Width(width).Render("No messages yet")
	}

	bubbleWidth := width * 2 / 3
	if bubbleWidth < 16 {
		bubbleWidth = 16
	}

	var blocks []string
	for _, msg := range messages {
		blocks = append(blocks, renderBubble(msg, sess, cachedColor, width, bubbleWidth, colored))
	}

	return strings.Join(blocks, "\n")
}

func renderBubble(msg api.Message, sess *session.Session, cachedColor string, width, bubbleWidth int, colored bool) string {
	outgoing := msg.SenderID == sess.UserID

	style := lipgloss.NewStyle().Padding(0, 1)
	if colored {
		background := feed.BubbleColor(msg, sess.UserID, sess.MessageColor, cachedColor)
		style = style.
			Background(lipgloss.Color(background)).
			Foreground(lipgloss.Color(feed.TextColor(background)))
	} else if outgoing {
		style = style.Background(colorBrand).Foreground(colorBg)
	} else {
		style = style.Background(colorBgPanel)
	}

	lines := wrapText(msg.Content, bubbleWidth-2)
	bubble := style.Render(strings.Join(lines, "\n"))

	var block string
	if outgoing {
		block = lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	} else {
		if !colored && msg.SenderName != "" {
			name := senderNameStyle.Render(truncateWithEllipsis(msg.SenderName, bubbleWidth))
			bubble = lipgloss.JoinVertical(lipgloss.Left, name, bubble)
		}
		block = lipgloss.PlaceHorizontal(width, lipgloss.Left, bubble)
	}

	return block
}
