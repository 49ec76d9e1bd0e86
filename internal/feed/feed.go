// Package feed orders and colors chat messages for display.
package feed

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/hushchat/hush-tui/internal/api"
	"github.com/hushchat/hush-tui/internal/constants"
)

// Sort orders messages by (created_at, id) ascending, in place. The ID
// tie-break guarantees a total order even when timestamp resolution is
// coarse, so two fetches of the same data always produce the same order.
func Sort(messages []api.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		a, b := messages[i], messages[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Luminance computes perceived brightness of a hex color, channels
// normalized to 0..1. Returns 0 for colors that do not parse, which classes
// them as dark backgrounds.
func Luminance(hexColor string) float64 {
	c, err := colorful.Hex(hexColor)
	if err != nil {
		return 0
	}
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// IsLight reports whether a background color wants a dark foreground.
func IsLight(hexColor string) bool {
	return Luminance(hexColor) > 0.5
}

// TextColor returns the readable foreground for a bubble background. Pure
// function of the background color only.
func TextColor(background string) string {
	if IsLight(background) {
		return constants.TextColorDark
	}
	return constants.TextColorLight
}

// BubbleColor resolves the background for a message bubble.
//
// Incoming messages use the sender's color persisted at send time so every
// viewer sees the sender's choice. Outgoing messages fall back through the
// viewer's current color and then the cached preference before the default
// grey.
func BubbleColor(msg api.Message, viewerID int64, viewerColor, cachedColor string) string {
	if msg.MessageColor != "" {
		return msg.MessageColor
	}
	if msg.SenderID == viewerID {
		if viewerColor != "" {
			return viewerColor
		}
		if cachedColor != "" {
			return cachedColor
		}
	}
	return constants.DefaultMessageColor
}
