package api

import (
	"encoding/json"
	"time"

	"github.com/hushchat/hush-tui/internal/constants"
)

// User is the signed-in identity returned by /me.
type User struct {
	ID          int64          `json:"id"`
	Username    string         `json:"username"`
	DisplayName string         `json:"display_name"`
	Avatar      string         `json:"avatar"`
	Gender      string         `json:"gender"`
	Age         int            `json:"age"`
	HushPoints  int            `json:"hush_points"`
	Gifts       map[string]int `json:"gifts"`
}

// Conversation is a one-to-one chat summary row.
type Conversation struct {
	ConversationID     int64  `json:"conversation_id"`
	OtherUserID        int64  `json:"other_user_id"`
	OtherUsername      string `json:"other_username"`
	OtherDisplayName   string `json:"other_display_name"`
	OtherAvatar        string `json:"other_avatar"`
	LastMessageContent string `json:"last_message_content"`
	LastMessageTime    string `json:"last_message_time"`
	Liked              bool   `json:"liked"`
}

// DisplayTitle returns the name to show for the conversation partner.
func (c Conversation) DisplayTitle() string {
	if c.OtherDisplayName != "" {
		return c.OtherDisplayName
	}
	return c.OtherUsername
}

// Preview returns the last message text, with a placeholder for empty chats.
func (c Conversation) Preview() string {
	if c.LastMessageContent == "" {
		return constants.MessagePreviewPlaceholder
	}
	return c.LastMessageContent
}

// Message is a single chat message. Immutable once received.
type Message struct {
	ID           int64
	SenderID     int64
	Content      string
	CreatedAt    time.Time
	SenderAvatar string
	SenderName   string
	MessageColor string
}

// messageWire matches the server's JSON shape. Timestamps arrive as strings
// in more than one format, and older rows use "timestamp" instead of
// "created_at".
type messageWire struct {
	ID           int64  `json:"id"`
	SenderID     int64  `json:"sender_id"`
	Content      string `json:"content"`
	CreatedAt    string `json:"created_at"`
	Timestamp    string `json:"timestamp"`
	SenderAvatar string `json:"sender_avatar"`
	SenderName   string `json:"sender_display_name"`
	MessageColor string `json:"message_color"`
}

var messageTimeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

func parseMessageTime(s string) time.Time {
	for _, layout := range messageTimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseTimestamp decodes a server timestamp string in any of the shapes the
// backend produces. Returns the zero time when nothing matches.
func ParseTimestamp(s string) time.Time {
	return parseMessageTime(s)
}

// UnmarshalJSON decodes a message, tolerating the timestamp variants the
// server has produced over time. An unparseable timestamp yields the zero
// time rather than an error; ordering falls back to the message ID.
func (m *Message) UnmarshalJSON(data []byte) error {
	var w messageWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	ts := w.CreatedAt
	if ts == "" {
		ts = w.Timestamp
	}

	*m = Message{
		ID:           w.ID,
		SenderID:     w.SenderID,
		Content:      w.Content,
		CreatedAt:    parseMessageTime(ts),
		SenderAvatar: w.SenderAvatar,
		SenderName:   w.SenderName,
		MessageColor: w.MessageColor,
	}
	return nil
}

// Group is a group summary row from /groups.
type Group struct {
	GroupID            int64  `json:"group_id"`
	Name               string `json:"name"`
	IsMember           bool   `json:"is_member"`
	Liked              bool   `json:"liked"`
	LastMessageContent string `json:"last_message_content"`
	LastMessageTime    string `json:"last_message_time"`
	CreatedAt          string `json:"created_at"`
}

// GroupDetail is the membership view from /groups/{id}.
type GroupDetail struct {
	GroupID int64    `json:"group_id"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// Member is a group member entry.
type Member struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

// DisplayTitle returns the member's preferred name.
func (m Member) DisplayTitle() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Username
}

// Profile is another user's public profile from /users/{id}.
type Profile struct {
	ID          int64          `json:"id"`
	Username    string         `json:"username"`
	DisplayName string         `json:"display_name"`
	Avatar      string         `json:"avatar"`
	Gender      string         `json:"gender"`
	Age         int            `json:"age"`
	HushPoints  int            `json:"hush_points"`
	Gifts       map[string]int `json:"gifts"`
}

// normalizeUser fills defensive defaults for absent fields.
func normalizeUser(u *User) {
	if u.Avatar == "" {
		u.Avatar = constants.DefaultAvatar
	}
	if u.DisplayName == "" {
		u.DisplayName = u.Username
	}
	if u.Gifts == nil {
		u.Gifts = map[string]int{}
	}
}

func normalizeConversation(c *Conversation) {
	if c.OtherAvatar == "" {
		c.OtherAvatar = constants.DefaultAvatar
	}
}

func normalizeMessage(m *Message) {
	if m.SenderAvatar == "" {
		m.SenderAvatar = constants.DefaultAvatar
	}
}

func normalizeProfile(p *Profile) {
	if p.Avatar == "" {
		p.Avatar = constants.DefaultAvatar
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Username
	}
	if p.Gifts == nil {
		p.Gifts = map[string]int{}
	}
}
