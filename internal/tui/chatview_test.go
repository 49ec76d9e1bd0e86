package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/hushchat/hush-tui/internal/api"
	"github.com/hushchat/hush-tui/internal/session"
)

func testSession() *session.Session {
	return &session.Session{
		UserID:       1,
		Username:     "alice",
		DisplayName:  "Alice",
		MessageColor: "#3b82f6",
	}
}

func TestRenderFeedEmpty(t *testing.T) {
	out := renderFeed(nil, testSession(), "", 80, false)
	if !strings.Contains(out, "No messages yet") {
		t.Errorf("Expected empty state, got %q", out)
	}
}

func TestRenderFeedContainsAllMessages(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	messages := []api.Message{
		{ID: 1, SenderID: 2, Content: "hello there", CreatedAt: t0, SenderName: "Bob"},
		{ID: 2, SenderID: 1, Content: "hi bob", CreatedAt: t0.Add(time.Second)},
	}

	out := renderFeed(messages, testSession(), "", 80, false)

	if !strings.Contains(out, "hello there") || !strings.Contains(out, "hi bob") {
		t.Errorf("Feed missing message content:\n%s", out)
	}
	// Incoming one-to-one messages carry the sender name line.
	if !strings.Contains(out, "Bob") {
		t.Errorf("Incoming message missing sender name:\n%s", out)
	}
}

func TestRenderBubbleAlignment(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	sess := testSession()
	width := 60

	outgoing := renderBubble(api.Message{SenderID: 1, Content: "mine"}, sess, "", width, 30, false)
	incoming := renderBubble(api.Message{SenderID: 2, Content: "theirs"}, sess, "", width, 30, false)

	// Outgoing bubbles sit on the right edge: leading spaces before content.
	outLine := strings.Split(outgoing, "\n")[0]
	if !strings.HasPrefix(outLine, " ") {
		t.Errorf("Outgoing bubble not right-aligned: %q", outLine)
	}

	// Incoming bubbles start at the left edge (sender name line first).
	inLine := strings.Split(incoming, "\n")[0]
	if strings.HasPrefix(stripANSI(inLine), "  ") {
		t.Errorf("Incoming bubble not left-aligned: %q", inLine)
	}
}

func TestRenderBubbleGroupColors(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	defer lipgloss.SetColorProfile(termenv.Ascii)

	sess := testSession()

	// Group feeds paint incoming bubbles with the sender's persisted color.
	out := renderBubble(api.Message{SenderID: 2, Content: "x", MessageColor: "#ef4444"}, sess, "", 60, 30, true)
	if !strings.Contains(out, "239;68;68") {
		t.Errorf("Expected sender color background in output: %q", out)
	}

	// Outgoing without a persisted color falls back to the viewer's color.
	out = renderBubble(api.Message{SenderID: 1, Content: "y"}, sess, "", 60, 30, true)
	if !strings.Contains(out, "59;130;246") {
		t.Errorf("Expected viewer color background in output: %q", out)
	}
}

func TestRenderFeedMinimumBubbleWidth(t *testing.T) {
	// Very narrow terminals must not collapse bubbles below readability.
	messages := []api.Message{{ID: 1, SenderID: 2, Content: "a somewhat longer message body"}}

	out := renderFeed(messages, testSession(), "", 10, false)
	if out == "" {
		t.Error("Expected rendered feed for narrow width")
	}
}

// stripANSI removes escape sequences for positional assertions.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == 0x1b:
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
