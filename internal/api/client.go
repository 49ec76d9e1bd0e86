// Package api is the HTTP JSON client for the Hush backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hushchat/hush-tui/internal/constants"
)

// ErrNotMember is returned when a group endpoint answers 403: the caller is
// not a member of the group.
var ErrNotMember = errors.New("not a group member")

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("server returned %d", e.Code)
}

// Client issues requests against the Hush backend. Pure I/O, no view logic.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given endpoint. A cookie jar carries the
// session credential across requests; sessionCookie, if non-empty, seeds it
// as `session=<value>` the way the browser client relied on its cookie.
func New(endpoint string, timeout time.Duration, sessionCookie string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}

	if sessionCookie != "" {
		if err := c.seedSessionCookie(sessionCookie); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Client) seedSessionCookie(value string) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	c.httpClient.Jar.SetCookies(req.URL, []*http.Cookie{
		{Name: "session", Value: value, Path: "/"},
	})
	return nil
}

// Me fetches the signed-in user's identity.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "/me", &u); err != nil {
		return nil, err
	}
	normalizeUser(&u)
	return &u, nil
}

// Conversations fetches the conversation list. A cache-busting query
// parameter forces fresh data on every visit to the chats tab.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	path := fmt.Sprintf("/conversations?t=%d", time.Now().UnixMilli())
	var conversations []Conversation
	if err := c.get(ctx, path, &conversations); err != nil {
		return nil, err
	}
	for i := range conversations {
		normalizeConversation(&conversations[i])
	}
	return conversations, nil
}

// Messages fetches the full message collection for a conversation.
func (c *Client) Messages(ctx context.Context, conversationID int64) ([]Message, error) {
	var messages []Message
	if err := c.get(ctx, fmt.Sprintf("/conversations/%d/messages", conversationID), &messages); err != nil {
		return nil, err
	}
	for i := range messages {
		normalizeMessage(&messages[i])
	}
	return messages, nil
}

// SendMessage posts a message into a conversation.
func (c *Client) SendMessage(ctx context.Context, conversationID int64, content string) error {
	body := map[string]any{
		"conversation_id": conversationID,
		"content":         content,
	}
	return c.post(ctx, "/messages", body, nil)
}

// LikeConversation marks a conversation as a favourite.
func (c *Client) LikeConversation(ctx context.Context, conversationID int64) error {
	return c.post(ctx, fmt.Sprintf("/conversations/%d/like", conversationID), nil, nil)
}

// UnlikeConversation removes the favourite mark.
func (c *Client) UnlikeConversation(ctx context.Context, conversationID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/conversations/%d/like", conversationID), nil, nil)
}

// Groups fetches the group list.
func (c *Client) Groups(ctx context.Context) ([]Group, error) {
	var groups []Group
	if err := c.get(ctx, "/groups", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GroupDetail fetches a group's membership view. Returns ErrNotMember when
// the server answers 403.
func (c *Client) GroupDetail(ctx context.Context, groupID int64) (*GroupDetail, error) {
	var detail GroupDetail
	if err := c.get(ctx, fmt.Sprintf("/groups/%d", groupID), &detail); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusForbidden {
			return nil, ErrNotMember
		}
		return nil, err
	}
	if detail.GroupID == 0 {
		detail.GroupID = groupID
	}
	for i := range detail.Members {
		if detail.Members[i].Avatar == "" {
			detail.Members[i].Avatar = constants.DefaultAvatar
		}
	}
	return &detail, nil
}

// JoinGroup adds the signed-in user to a group.
func (c *Client) JoinGroup(ctx context.Context, groupID int64) error {
	return c.post(ctx, fmt.Sprintf("/groups/%d/members", groupID), nil, nil)
}

// GroupMessages fetches the full message collection for a group. Returns
// ErrNotMember when the server answers 403.
func (c *Client) GroupMessages(ctx context.Context, groupID int64) ([]Message, error) {
	var messages []Message
	if err := c.get(ctx, fmt.Sprintf("/groups/%d/messages", groupID), &messages); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusForbidden {
			return nil, ErrNotMember
		}
		return nil, err
	}
	for i := range messages {
		normalizeMessage(&messages[i])
	}
	return messages, nil
}

// SendGroupMessage posts a message into a group.
func (c *Client) SendGroupMessage(ctx context.Context, groupID int64, content string) error {
	body := map[string]any{"content": content}
	return c.post(ctx, fmt.Sprintf("/groups/%d/messages", groupID), body, nil)
}

// LikeGroup marks a group as a favourite.
func (c *Client) LikeGroup(ctx context.Context, groupID int64) error {
	return c.post(ctx, fmt.Sprintf("/groups/%d/like", groupID), nil, nil)
}

// UnlikeGroup removes the favourite mark.
func (c *Client) UnlikeGroup(ctx context.Context, groupID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/groups/%d/like", groupID), nil, nil)
}

// MessageColor fetches the viewer's persisted bubble color preference.
func (c *Client) MessageColor(ctx context.Context) (string, error) {
	var resp struct {
		Color string `json:"color"`
	}
	if err := c.get(ctx, "/message-color", &resp); err != nil {
		return "", err
	}
	return resp.Color, nil
}

// SaveMessageColor persists the viewer's bubble color preference.
func (c *Client) SaveMessageColor(ctx context.Context, color string) error {
	return c.post(ctx, "/message-color", map[string]any{"color": color}, nil)
}

// UserProfile fetches another user's public profile.
func (c *Client) UserProfile(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	if err := c.get(ctx, fmt.Sprintf("/users/%d", userID), &p); err != nil {
		return nil, err
	}
	normalizeProfile(&p)
	return &p, nil
}

// UpdateAvatar changes the signed-in user's avatar.
func (c *Client) UpdateAvatar(ctx context.Context, avatar string) error {
	return c.post(ctx, "/update-avatar", map[string]any{"avatar": avatar}, nil)
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/logout", nil, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Str("request_id", requestID).Str("method", method).Str("path", path).Err(err).Msg("Request failed")
		return err
	}
	defer resp.Body.Close()

	log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Request complete")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(payload))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
