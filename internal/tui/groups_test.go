package tui

import (
	"strings"
	"testing"

	"github.com/hushchat/hush-tui/internal/api"
)

func TestGroupGlyphFromName(t *testing.T) {
	g := api.Group{GroupID: 1, Name: "🎮 gamers lounge"}
	if got := groupGlyph(g); got != "🎮" {
		t.Errorf("Expected emoji from name, got %q", got)
	}
}

func TestGroupGlyphFallbackIsStable(t *testing.T) {
	g := api.Group{GroupID: 7, Name: "book club"}

	first := groupGlyph(g)
	second := groupGlyph(g)
	if first != second {
		t.Errorf("Glyph not stable: %q vs %q", first, second)
	}
	if first == "" {
		t.Error("Expected fallback glyph, got empty string")
	}
}

func TestFilterGroupsExcludesMembers(t *testing.T) {
	groups := []api.Group{
		{GroupID: 1, Name: "public one"},
		{GroupID: 2, Name: "already joined", IsMember: true},
		{GroupID: 3, Name: "public two"},
	}

	visible := filterGroups(groups, "")
	if len(visible) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(visible))
	}
	for _, g := range visible {
		if g.IsMember {
			t.Errorf("Joined group leaked into public list: %+v", g)
		}
	}
}

func TestFilterGroupsQuery(t *testing.T) {
	groups := []api.Group{
		{GroupID: 1, Name: "Book Club"},
		{GroupID: 2, Name: "Movie Night"},
		{GroupID: 3, Name: "cookbook swap"},
	}

	tests := []struct {
		query string
		want  int
	}{
		{"book", 2}, // case-insensitive, substring
		{"BOOK", 2},
		{"  movie  ", 1}, // whitespace trimmed
		{"zzz", 0},
		{"", 3},
	}

	for _, tt := range tests {
		got := filterGroups(groups, tt.query)
		if len(got) != tt.want {
			t.Errorf("Query %q: expected %d groups, got %d", tt.query, tt.want, len(got))
		}
	}
}

func TestRenderGroupList(t *testing.T) {
	groups := []api.Group{
		{GroupID: 1, Name: "book club", LastMessageContent: "next chapter?"},
	}

	out := renderGroupList(groups, 0, 80, 20)
	if !strings.Contains(out, "PUBLIC GROUPS") {
		t.Errorf("Missing section header: %q", out)
	}
	if !strings.Contains(out, "book club") {
		t.Errorf("Missing group name: %q", out)
	}

	empty := renderGroupList(nil, 0, 80, 20)
	if !strings.Contains(empty, "No public groups available") {
		t.Errorf("Missing empty state: %q", empty)
	}
}
