package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/hushchat/hush-tui/internal/api"
	"github.com/hushchat/hush-tui/internal/cache"
	"github.com/hushchat/hush-tui/internal/constants"
)

// Every fetch command captures the navigation generation active when the
// request was issued. Update drops results whose generation no longer
// matches the stack, so the view only ever reflects the latest navigation.

type conversationsMsg struct {
	gen           uint64
	conversations []api.Conversation
	err           error
}

type groupsMsg struct {
	gen    uint64
	groups []api.Group
	err    error
}

type feedMsg struct {
	gen       uint64
	scope     cache.ScopeKind
	scopeID   int64
	messages  []api.Message
	notMember bool
	err       error
}

type groupDetailMsg struct {
	gen       uint64
	detail    *api.GroupDetail
	notMember bool
	err       error
}

type profileMsg struct {
	gen     uint64
	profile *api.Profile
	err     error
}

type sendResultMsg struct {
	gen     uint64
	scope   cache.ScopeKind
	scopeID int64
	err     error
}

type joinResultMsg struct {
	gen     uint64
	groupID int64
	err     error
}

type likeResultMsg struct {
	gen uint64
	err error
}

type colorSavedMsg struct {
	color string
	err   error
}

type avatarSavedMsg struct {
	avatar string
	err    error
}

type logoutMsg struct {
	err error
}

type scrollSettleMsg struct {
	gen     uint64
	attempt int
}

type searchDebounceMsg struct {
	seq int
}

func (m Model) fetchConversations(gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		conversations, err := m.client.Conversations(ctx)
		if err == nil {
			if cacheErr := m.cache.SaveConversations(conversations); cacheErr != nil {
				log.Warn().Err(cacheErr).Msg("Failed to cache conversations")
			}
		}
		return conversationsMsg{gen: gen, conversations: conversations, err: err}
	}
}

func (m Model) fetchGroups(gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		groups, err := m.client.Groups(ctx)
		return groupsMsg{gen: gen, groups: groups, err: err}
	}
}

func (m Model) fetchFeed(gen uint64, scope cache.ScopeKind, scopeID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		var messages []api.Message
		var err error
		if scope == cache.ScopeGroup {
			messages, err = m.client.GroupMessages(ctx, scopeID)
		} else {
			messages, err = m.client.Messages(ctx, scopeID)
		}

		if errors.Is(err, api.ErrNotMember) {
			return feedMsg{gen: gen, scope: scope, scopeID: scopeID, notMember: true}
		}
		if err == nil {
			if cacheErr := m.cache.SaveMessages(scope, scopeID, messages); cacheErr != nil {
				log.Warn().Err(cacheErr).Msg("Failed to cache messages")
			}
		}
		return feedMsg{gen: gen, scope: scope, scopeID: scopeID, messages: messages, err: err}
	}
}

func (m Model) fetchGroupDetail(gen uint64, groupID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		detail, err := m.client.GroupDetail(ctx, groupID)
		if errors.Is(err, api.ErrNotMember) {
			return groupDetailMsg{gen: gen, notMember: true}
		}
		return groupDetailMsg{gen: gen, detail: detail, err: err}
	}
}

func (m Model) fetchProfile(gen uint64, userID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		profile, err := m.client.UserProfile(ctx, userID)
		return profileMsg{gen: gen, profile: profile, err: err}
	}
}

func (m Model) sendMessage(gen uint64, scope cache.ScopeKind, scopeID int64, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		var err error
		if scope == cache.ScopeGroup {
			err = m.client.SendGroupMessage(ctx, scopeID, content)
		} else {
			err = m.client.SendMessage(ctx, scopeID, content)
		}
		return sendResultMsg{gen: gen, scope: scope, scopeID: scopeID, err: err}
	}
}

func (m Model) joinGroup(gen uint64, groupID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		err := m.client.JoinGroup(ctx, groupID)
		return joinResultMsg{gen: gen, groupID: groupID, err: err}
	}
}

func (m Model) toggleConversationLike(gen uint64, conv api.Conversation) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		var err error
		if conv.Liked {
			err = m.client.UnlikeConversation(ctx, conv.ConversationID)
		} else {
			err = m.client.LikeConversation(ctx, conv.ConversationID)
		}
		return likeResultMsg{gen: gen, err: err}
	}
}

func (m Model) toggleGroupLike(gen uint64, group api.Group) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		var err error
		if group.Liked {
			err = m.client.UnlikeGroup(ctx, group.GroupID)
		} else {
			err = m.client.LikeGroup(ctx, group.GroupID)
		}
		return likeResultMsg{gen: gen, err: err}
	}
}

func (m Model) saveMessageColor(color string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		err := m.client.SaveMessageColor(ctx, color)
		return colorSavedMsg{color: color, err: err}
	}
}

func (m Model) saveAvatar(avatar string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		err := m.client.UpdateAvatar(ctx, avatar)
		return avatarSavedMsg{avatar: avatar, err: err}
	}
}

func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		return logoutMsg{err: m.client.Logout(ctx)}
	}
}

// scrollSettle schedules one bounded scroll verification frame.
func scrollSettle(gen uint64, attempt int) tea.Cmd {
	return tea.Tick(constants.ScrollSettleInterval, func(time.Time) tea.Msg {
		return scrollSettleMsg{gen: gen, attempt: attempt}
	})
}

// debounceSearch schedules the pending search application. A newer
// keystroke bumps the sequence, turning this tick into a no-op: at most one
// pending search action exists at a time.
func debounceSearch(seq int) tea.Cmd {
	return tea.Tick(constants.SearchDebounceInterval, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}
