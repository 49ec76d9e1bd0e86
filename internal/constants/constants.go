package constants

import "time"

// DefaultMessageColor is the bubble color used when neither the message nor
// the viewer carries a persisted preference.
const DefaultMessageColor = "#6b7280"

// DefaultAvatar is substituted when the server omits an avatar reference.
const DefaultAvatar = "default.png"

// MessagePreviewPlaceholder is shown for conversations with no messages yet.
const MessagePreviewPlaceholder = "Tap to open chat"

// ScrollSettleAttempts bounds how many frames the feed view polls before
// giving up on verified bottom scroll.
const ScrollSettleAttempts = 6

// ScrollSettleInterval is the delay between scroll verification attempts.
const ScrollSettleInterval = 16 * time.Millisecond

// ScrollBottomTolerance is how many lines from true bottom still count as
// "at bottom" when verifying the scroll position.
const ScrollBottomTolerance = 1

// SearchDebounceInterval delays group search filtering until typing pauses.
const SearchDebounceInterval = 150 * time.Millisecond

// RequestTimeout caps a single API round trip.
const RequestTimeout = 30 * time.Second

// MaxComposeLength limits outgoing message length client-side.
const MaxComposeLength = 1000

// ConversationCacheTTL is how long a cached snapshot is treated as fresh for
// back-navigation restoration without a refetch.
const ConversationCacheTTL = 2 * time.Minute

// TextColorDark is the foreground for light bubble backgrounds.
const TextColorDark = "#1a1a1a"

// TextColorLight is the foreground for dark bubble backgrounds.
const TextColorLight = "#f5f5f5"

// ColorOption is one selectable bubble color in settings.
type ColorOption struct {
	Name  string
	Value string
}

// MessageColorPalette mirrors the color choices offered in settings.
var MessageColorPalette = []ColorOption{
	{"Blue", "#3b82f6"},
	{"Purple", "#8b5cf6"},
	{"Pink", "#ec4899"},
	{"Red", "#ef4444"},
	{"Orange", "#f97316"},
	{"Yellow", "#eab308"},
	{"Green", "#22c55e"},
	{"Teal", "#14b8a6"},
	{"Cyan", "#06b6d4"},
	{"Indigo", "#6366f1"},
	{"Violet", "#a855f7"},
	{"Rose", "#f43f5e"},
	{"Amber", "#f59e0b"},
	{"Lime", "#84cc16"},
	{"Emerald", "#10b981"},
	{"Sky", "#0ea5e9"},
	{"Fuchsia", "#d946ef"},
	{"Slate", "#64748b"},
	{"Gray", "#6b7280"},
	{"Zinc", "#71717a"},
}
