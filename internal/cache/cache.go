// Package cache provides SQLite-based local snapshots of server data.
//
// Snapshots let back-navigation repaint a view instantly from the last
// fetched data while a background refresh runs, and keep the viewer's bubble
// color available when the preference endpoint is unreachable.
package cache

import (
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hushchat/hush-tui/internal/api"
	"github.com/hushchat/hush-tui/internal/config"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

const currentSchemaVersion = 1

// ScopeKind distinguishes conversation feeds from group feeds.
type ScopeKind string

const (
	ScopeConversation ScopeKind = "conversation"
	ScopeGroup        ScopeKind = "group"
)

// Cache provides access to the SQLite database.
type Cache struct {
	db *sql.DB
}

// New creates a Cache with the database at the default location.
func New() (*Cache, error) {
	dir, err := config.EnsureDataDir()
	if err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	return Open(filepath.Join(dir, "hush.db"))
}

// Open opens a database at the given path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return c, nil
}

// OpenMemory opens an in-memory database for testing.
func OpenMemory() (*Cache, error) {
	return Open(":memory:")
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// migrate runs schema migrations. Forward-only: a version mismatch drops the
// cache and recreates it, since everything here is refetchable.
func (c *Cache) migrate() error {
	var version int
	err := c.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		if _, err := c.db.Exec(schema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	if version == currentSchemaVersion {
		return nil
	}

	if _, err := c.db.Exec(`
		DROP TABLE IF EXISTS messages;
		DROP TABLE IF EXISTS conversations;
		DROP TABLE IF EXISTS snapshots;
		DROP TABLE IF EXISTS prefs;
		DROP TABLE IF EXISTS schema_version;
	`); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("recreate schema: %w", err)
	}

	return nil
}

// SaveConversations replaces the cached conversation list. No partial-update
// merging: each chats visit overwrites the previous snapshot wholesale.
func (c *Cache) SaveConversations(conversations []api.Conversation) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM conversations`); err != nil {
		return fmt.Errorf("clear conversations: %w", err)
	}

	for i, conv := range conversations {
		_, err := tx.Exec(`
			INSERT INTO conversations (conversation_id, position, other_user_id, other_username, other_display_name, other_avatar, last_message_content, last_message_time, liked)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, conv.ConversationID, i, conv.OtherUserID, conv.OtherUsername, conv.OtherDisplayName, conv.OtherAvatar, conv.LastMessageContent, conv.LastMessageTime, conv.Liked)
		if err != nil {
			return fmt.Errorf("insert conversation: %w", err)
		}
	}

	if err := touchSnapshot(tx, "chats", 0); err != nil {
		return err
	}

	return tx.Commit()
}

// Conversations returns the cached list in server order, with the snapshot
// time. A zero time means no snapshot exists.
func (c *Cache) Conversations() ([]api.Conversation, time.Time, error) {
	fetchedAt, err := c.snapshotTime("chats", 0)
	if err != nil {
		return nil, time.Time{}, err
	}

	rows, err := c.db.Query(`
		SELECT conversation_id, other_user_id, other_username, other_display_name, other_avatar, last_message_content, last_message_time, liked
		FROM conversations
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	var conversations []api.Conversation
	for rows.Next() {
		var conv api.Conversation
		if err := rows.Scan(&conv.ConversationID, &conv.OtherUserID, &conv.OtherUsername, &conv.OtherDisplayName, &conv.OtherAvatar, &conv.LastMessageContent, &conv.LastMessageTime, &conv.Liked); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, conv)
	}

	return conversations, fetchedAt, rows.Err()
}

// SaveMessages replaces the cached feed for a scope.
func (c *Cache) SaveMessages(kind ScopeKind, scopeID int64, messages []api.Message) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM messages WHERE scope_kind = ? AND scope_id = ?`, kind, scopeID); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}

	for _, msg := range messages {
		_, err := tx.Exec(`
			INSERT INTO messages (scope_kind, scope_id, message_id, sender_id, content, created_at, sender_avatar, sender_name, message_color)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, kind, scopeID, msg.ID, msg.SenderID, msg.Content, msg.CreatedAt.UTC(), msg.SenderAvatar, msg.SenderName, msg.MessageColor)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}

	if err := touchSnapshot(tx, string(kind), scopeID); err != nil {
		return err
	}

	return tx.Commit()
}

// Messages returns the cached feed for a scope with its snapshot time.
func (c *Cache) Messages(kind ScopeKind, scopeID int64) ([]api.Message, time.Time, error) {
	fetchedAt, err := c.snapshotTime(string(kind), scopeID)
	if err != nil {
		return nil, time.Time{}, err
	}

	rows, err := c.db.Query(`
		SELECT message_id, sender_id, content, created_at, sender_avatar, sender_name, message_color
		FROM messages
		WHERE scope_kind = ? AND scope_id = ?
		ORDER BY created_at ASC, message_id ASC
	`, kind, scopeID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []api.Message
	for rows.Next() {
		var msg api.Message
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.Content, &msg.CreatedAt, &msg.SenderAvatar, &msg.SenderName, &msg.MessageColor); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	return messages, fetchedAt, rows.Err()
}

// SetMessageColor persists the viewer's bubble color locally.
func (c *Cache) SetMessageColor(color string) error {
	_, err := c.db.Exec(`
		INSERT INTO prefs (key, value) VALUES ('message_color', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, color)
	return err
}

// MessageColor returns the locally cached bubble color, or empty if unset.
func (c *Cache) MessageColor() (string, error) {
	var color string
	err := c.db.QueryRow(`SELECT value FROM prefs WHERE key = 'message_color'`).Scan(&color)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return color, nil
}

func touchSnapshot(tx *sql.Tx, kind string, scopeID int64) error {
	_, err := tx.Exec(`
		INSERT INTO snapshots (scope_kind, scope_id, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(scope_kind, scope_id) DO UPDATE SET fetched_at = excluded.fetched_at
	`, kind, scopeID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("touch snapshot: %w", err)
	}
	return nil
}

func (c *Cache) snapshotTime(kind string, scopeID int64) (time.Time, error) {
	var fetchedAt time.Time
	err := c.db.QueryRow(`
		SELECT fetched_at FROM snapshots WHERE scope_kind = ? AND scope_id = ?
	`, kind, scopeID).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query snapshot: %w", err)
	}
	return fetchedAt, nil
}
