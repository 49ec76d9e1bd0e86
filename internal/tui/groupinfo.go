package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hushchat/hush-tui/internal/api"
)

// renderGroupInfo renders the group info page: name, invite link, members.
func renderGroupInfo(detail *api.GroupDetail, endpoint string, width int) string {
	if detail == nil {
		return emptyStyle.Width(width).Render("Loading group info...")
	}

	var sections []string

	name := sectionTitleStyle.Render(detail.Name)
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, name))

	joinLink := fmt.Sprintf("%s/groups/join/%d", strings.TrimRight(endpoint, "/"), detail.GroupID)
	linkPanel := panelStyle.Width(width - 2).Render(
		sectionTitleStyle.Render("Group Invite Link") + "\n" +
			truncateWithEllipsis(joinLink, width-6) + "\n" +
			dimmedStyle.Render("Share this link to let others join the group"),
	)
	sections = append(sections, linkPanel)

	memberHeader := renderSectionTitle(fmt.Sprintf("MEMBERS (%d)", len(detail.Members)), width)
	sections = append(sections, memberHeader)

	if len(detail.Members) == 0 {
		sections = append(sections, emptyStyle.Width(width).Render("No members"))
	} else {
		var rows []string
		for _, m := range detail.Members {
			row := padRight(truncateWithEllipsis(m.DisplayTitle(), 24), 24) +
				" " + dimmedStyle.Render("@"+m.Username)
			rows = append(rows, listItemStyle.Width(width).Render(row))
		}
		sections = append(sections, strings.Join(rows, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
