package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hushchat/hush-tui/internal/api"
	"github.com/hushchat/hush-tui/internal/session"
)

// availableAvatars is the fixed avatar set users can pick from.
var availableAvatars = []string{
	"brownbear.png", "cat.png", "cow.png", "gorilla.png",
	"lion.png", "panda.png", "panther.png", "smalldog.png",
}

// giftTypes are the gift kinds a profile can receive, in display order.
var giftTypes = []string{"🎁", "💝", "🌹", "⭐"}

// renderOwnProfile renders the signed-in user's profile view, optionally
// with the avatar picker open.
func renderOwnProfile(sess *session.Session, endpoint string, pickerOpen bool, pickerIdx, width int) string {
	var sections []string

	sections = append(sections, renderIdentityHeader(sess.DisplayName, sess.Username, sess.Avatar, width))
	sections = append(sections, renderInfoBar(sess.Gender, sess.Age, sess.HushPoints, width))
	sections = append(sections, renderGifts(sess.Gifts, width))

	link := fmt.Sprintf("%s/profile/%s", strings.TrimRight(endpoint, "/"), sess.Username)
	linkPanel := panelStyle.Width(width - 2).Render(
		sectionTitleStyle.Render("Your Personal Link") + "\n" +
			truncateWithEllipsis(link, width-6) + "\n" +
			dimmedStyle.Render("Share this link to let others find your profile"),
	)
	sections = append(sections, linkPanel)

	if pickerOpen {
		sections = append(sections, renderAvatarPicker(sess.Avatar, pickerIdx, width))
	} else {
		sections = append(sections, dimmedStyle.Render("[ a ] CHANGE AVATAR"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderUserProfile renders another user's profile.
func renderUserProfile(p *api.Profile, width int) string {
	if p == nil {
		return emptyStyle.Width(width).Render("Loading profile...")
	}

	var sections []string
	sections = append(sections, renderIdentityHeader(p.DisplayName, p.Username, p.Avatar, width))
	sections = append(sections, renderInfoBar(p.Gender, p.Age, p.HushPoints, width))
	sections = append(sections, renderGifts(p.Gifts, width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderIdentityHeader(displayName, username, avatar string, width int) string {
	name := sectionTitleStyle.Render(displayName)
	handle := dimmedStyle.Render("@" + username)
	avatarLine := dimmedStyle.Render("avatar: " + avatarLabel(avatar))

	block := lipgloss.JoinVertical(lipgloss.Center, name, handle, avatarLine)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func renderInfoBar(gender string, age, hushPoints, width int) string {
	genderDisplay := "Not set"
	if gender != "" {
		genderDisplay = strings.ToUpper(gender[:1]) + gender[1:]
	}

	ageDisplay := "N/A"
	if age > 0 {
		ageDisplay = fmt.Sprintf("%d", age)
	}

	bar := fmt.Sprintf(
		"%s %s  │  %s %s  │  %s %s",
		dimmedStyle.Render("Gender"), valueStyle.Render(genderDisplay),
		dimmedStyle.Render("Age"), valueStyle.Render(ageDisplay),
		dimmedStyle.Render("Hush Points"), valueStyle.Render(fmt.Sprintf("%d", hushPoints)),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, panelStyle.Render(bar))
}

func renderGifts(gifts map[string]int, width int) string {
	var parts []string
	for _, gift := range giftTypes {
		parts = append(parts, fmt.Sprintf("%s %d", gift, gifts[gift]))
	}
	row := strings.Join(parts, "   ")

	block := renderSectionTitle("GIFTS RECEIVED", width) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
	return block
}

// renderAvatarPicker renders the avatar selector: left/right to move, enter
// to confirm, esc to close.
func renderAvatarPicker(current string, selectedIdx, width int) string {
	var parts []string
	for i, avatar := range availableAvatars {
		label := avatarLabel(avatar)
		if avatar == current {
			label += " ✓"
		}
		if i == selectedIdx {
			parts = append(parts, listItemSelectedStyle.Render(label))
		} else {
			parts = append(parts, listItemStyle.Render(label))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	hint := dimmedStyle.Render("←/→ choose  ·  enter confirm  ·  esc cancel")

	return panelStyle.Width(width - 2).Render(
		sectionTitleStyle.Render("Choose your avatar") + "\n" + row + "\n" + hint,
	)
}

func avatarLabel(avatar string) string {
	return strings.TrimSuffix(avatar, ".png")
}
