package tui

import (
	"strings"
	"testing"

	"github.com/hushchat/hush-tui/internal/api"
	"github.com/hushchat/hush-tui/internal/session"
)

func TestRenderOwnProfile(t *testing.T) {
	sess := &session.Session{
		UserID:      1,
		Username:    "alice",
		DisplayName: "Alice",
		Avatar:      "cat.png",
		Gender:      "female",
		Age:         30,
		HushPoints:  120,
		Gifts:       map[string]int{"🎁": 2},
	}

	out := renderOwnProfile(sess, "https://hush.example.com", false, 0, 80)

	if !strings.Contains(out, "Alice") || !strings.Contains(out, "@alice") {
		t.Errorf("Missing identity:\n%s", out)
	}
	if !strings.Contains(out, "120") {
		t.Errorf("Missing hush points:\n%s", out)
	}
	if !strings.Contains(out, "https://hush.example.com/profile/alice") {
		t.Errorf("Missing personal link:\n%s", out)
	}
	if !strings.Contains(out, "CHANGE AVATAR") {
		t.Errorf("Missing avatar hint:\n%s", out)
	}
}

func TestRenderOwnProfileWithPicker(t *testing.T) {
	sess := &session.Session{UserID: 1, Username: "alice", Avatar: "cat.png", Gifts: map[string]int{}}

	out := renderOwnProfile(sess, "http://localhost:5000", true, 0, 80)

	if !strings.Contains(out, "Choose your avatar") {
		t.Errorf("Picker not shown:\n%s", out)
	}
	if !strings.Contains(out, "cat ✓") {
		t.Errorf("Current avatar not marked:\n%s", out)
	}
}

func TestRenderUserProfileNil(t *testing.T) {
	out := renderUserProfile(nil, 80)
	if !strings.Contains(out, "Loading profile") {
		t.Errorf("Expected loading state, got %q", out)
	}
}

func TestRenderGroupInfo(t *testing.T) {
	detail := &api.GroupDetail{
		GroupID: 3,
		Name:    "book club",
		Members: []api.Member{
			{ID: 1, Username: "alice", DisplayName: "Alice"},
			{ID: 2, Username: "bob"},
		},
	}

	out := renderGroupInfo(detail, "https://hush.example.com", 80)

	if !strings.Contains(out, "book club") {
		t.Errorf("Missing group name:\n%s", out)
	}
	if !strings.Contains(out, "https://hush.example.com/groups/join/3") {
		t.Errorf("Missing invite link:\n%s", out)
	}
	if !strings.Contains(out, "MEMBERS (2)") {
		t.Errorf("Missing member count:\n%s", out)
	}
	if !strings.Contains(out, "@alice") || !strings.Contains(out, "@bob") {
		t.Errorf("Missing members:\n%s", out)
	}
}
