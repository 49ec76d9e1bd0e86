package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hushchat/hush-tui/internal/api"
	"github.com/hushchat/hush-tui/internal/cache"
	"github.com/hushchat/hush-tui/internal/constants"
	"github.com/hushchat/hush-tui/internal/nav"
	"github.com/hushchat/hush-tui/internal/session"
)

func newTestModel(t *testing.T, endpoint string) Model {
	t.Helper()

	if endpoint == "" {
		endpoint = "http://127.0.0.1:1"
	}
	client, err := api.New(endpoint, 2*time.Second, "test-session")
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}

	c, err := cache.OpenMemory()
	if err != nil {
		t.Fatalf("cache.OpenMemory: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	sess := &session.Session{
		UserID:       1,
		Username:     "alice",
		DisplayName:  "Alice",
		MessageColor: "#3b82f6",
		Gifts:        map[string]int{},
	}

	m := NewModel(client, c, sess, endpoint)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStaleFeedResultDropped(t *testing.T) {
	m := newTestModel(t, "")

	// Open chat 1, remember the load generation, then navigate away and
	// into chat 2.
	m, _ = m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindChat, EntityID: 1, Title: "bob"}))
	staleGen := m.stack.Gen()
	m, _ = m.dispatch(nav.Back())
	m, _ = m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindChat, EntityID: 2, Title: "carol"}))

	// The late result for chat 1 arrives now. It must be dropped.
	stale := feedMsg{
		gen:     staleGen,
		scope:   cache.ScopeConversation,
		scopeID: 1,
		messages: []api.Message{
			{ID: 99, SenderID: 2, Content: "stale content"},
		},
	}
	updated, _ := m.Update(stale)
	m = updated.(Model)

	if len(m.messages) != 0 {
		t.Errorf("Stale feed result was applied: %+v", m.messages)
	}

	// The current chat's result applies normally.
	fresh := feedMsg{
		gen:     m.stack.Gen(),
		scope:   cache.ScopeConversation,
		scopeID: 2,
		messages: []api.Message{
			{ID: 1, SenderID: 2, Content: "fresh content", CreatedAt: time.Now()},
		},
	}
	updated, _ = m.Update(fresh)
	m = updated.(Model)

	if len(m.messages) != 1 || m.messages[0].Content != "fresh content" {
		t.Errorf("Fresh feed result not applied: %+v", m.messages)
	}
}

func TestTabKeysResetStack(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindChat, EntityID: 1}))
	m, _ = m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindProfile, EntityID: 7}))

	updated, _ := m.Update(keyMsg("2"))
	m = updated.(Model)

	if m.stack.Depth() != 1 {
		t.Errorf("Tab key should reset stack, depth = %d", m.stack.Depth())
	}
	if m.stack.Current().Kind != nav.KindGroups {
		t.Errorf("Expected groups tab, got %q", m.stack.Current().Kind)
	}
}

func TestFailedRefreshKeepsPreviousFeed(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindChat, EntityID: 1}))

	ok := feedMsg{
		gen:     m.stack.Gen(),
		scope:   cache.ScopeConversation,
		scopeID: 1,
		messages: []api.Message{
			{ID: 1, SenderID: 2, Content: "first", CreatedAt: time.Now()},
			{ID: 2, SenderID: 1, Content: "second", CreatedAt: time.Now()},
		},
	}
	updated, _ := m.Update(ok)
	m = updated.(Model)

	failed := feedMsg{
		gen:     m.stack.Gen(),
		scope:   cache.ScopeConversation,
		scopeID: 1,
		err:     fmt.Errorf("connection refused"),
	}
	updated, _ = m.Update(failed)
	m = updated.(Model)

	if len(m.messages) != 2 {
		t.Errorf("Failed refresh discarded previous feed: %d messages", len(m.messages))
	}
	if m.feedErr == "" {
		t.Error("Expected feed error to be surfaced")
	}
}

func TestNotMemberGatesCompose(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindGroup, EntityID: 3, Title: "book club"}))

	updated, _ := m.Update(groupDetailMsg{gen: m.stack.Gen(), notMember: true})
	m = updated.(Model)
	updated, _ = m.Update(feedMsg{gen: m.stack.Gen(), scope: cache.ScopeGroup, scopeID: 3, notMember: true})
	m = updated.(Model)

	if m.isMember {
		t.Error("Expected non-member state")
	}
	if m.compose.Enabled() {
		t.Error("Compose should be disabled for non-members")
	}

	// Joining re-enables everything.
	updated, cmd := m.Update(joinResultMsg{gen: m.stack.Gen(), groupID: 3})
	m = updated.(Model)
	if !m.isMember || !m.compose.Enabled() {
		t.Error("Join should restore member state")
	}
	if cmd == nil {
		t.Error("Join should trigger a detail and feed reload")
	}
}

func TestSearchDebounce(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindGroups, Title: "Groups"}))

	// Start typing a query.
	updated, _ := m.Update(keyMsg("/"))
	m = updated.(Model)
	if !m.searchActive {
		t.Fatal("Expected search input active")
	}

	updated, _ = m.Update(keyMsg("b"))
	m = updated.(Model)
	firstSeq := m.searchSeq
	updated, _ = m.Update(keyMsg("o"))
	m = updated.(Model)

	if m.searchQuery != "" {
		t.Errorf("Query applied before debounce: %q", m.searchQuery)
	}
	if m.searchSeq == firstSeq {
		t.Error("Each keystroke should bump the debounce sequence")
	}

	// The superseded timer fires: ignored.
	updated, _ = m.Update(searchDebounceMsg{seq: firstSeq})
	m = updated.(Model)
	if m.searchQuery != "" {
		t.Errorf("Stale debounce applied the query: %q", m.searchQuery)
	}

	// The live timer fires: applied.
	updated, _ = m.Update(searchDebounceMsg{seq: m.searchSeq})
	m = updated.(Model)
	if m.searchQuery != "bo" {
		t.Errorf("Expected query %q, got %q", "bo", m.searchQuery)
	}
}

func TestScrollSettleIsBounded(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindChat, EntityID: 1}))

	updated, cmd := m.Update(feedMsg{
		gen:      m.stack.Gen(),
		scope:    cache.ScopeConversation,
		scopeID:  1,
		messages: []api.Message{{ID: 1, SenderID: 2, Content: "x", CreatedAt: time.Now()}},
	})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("Expected settle command after feed load")
	}

	ticks := 0
	for m.scrollAttempt != 0 {
		if ticks > constants.ScrollSettleAttempts {
			t.Fatalf("Settle loop did not terminate after %d ticks", ticks)
		}
		updated, _ = m.Update(scrollSettleMsg{gen: m.stack.Gen(), attempt: m.scrollAttempt})
		m = updated.(Model)
		ticks++
	}

	if ticks < 1 || ticks > constants.ScrollSettleAttempts {
		t.Errorf("Expected between 1 and %d settle ticks, got %d", constants.ScrollSettleAttempts, ticks)
	}
	if !m.atBottom() {
		t.Error("Viewport not at bottom after settle")
	}
}

func TestLogoutConfirmFlow(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindSettings, Title: "Settings"}))
	m.settingsCursor = int(settingLogout)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if !m.confirmLogout {
		t.Fatal("Expected logout confirmation prompt")
	}

	// Declining cancels.
	updated, cmd := m.Update(keyMsg("n"))
	m = updated.(Model)
	if m.confirmLogout || cmd != nil {
		t.Error("Decline should close the prompt without side effects")
	}

	// Confirming fires the logout request.
	m.confirmLogout = true
	updated, cmd = m.Update(keyMsg("y"))
	m = updated.(Model)
	if m.confirmLogout {
		t.Error("Confirm should close the prompt")
	}
	if cmd == nil {
		t.Error("Confirm should issue the logout command")
	}
}

func TestColorSavedUpdatesSessionAndCache(t *testing.T) {
	m := newTestModel(t, "")
	m.colorPicker = true

	updated, _ := m.Update(colorSavedMsg{color: "#ef4444"})
	m = updated.(Model)

	if m.colorPicker {
		t.Error("Picker should close after save")
	}
	if m.sess.MessageColor != "#ef4444" {
		t.Errorf("Session color not updated: %q", m.sess.MessageColor)
	}
	if cached, _ := m.cache.MessageColor(); cached != "#ef4444" {
		t.Errorf("Cached color not updated: %q", cached)
	}
}

// hushServer is a minimal in-memory Hush backend for scenario tests.
type hushServer struct {
	mu       sync.Mutex
	messages []api.Message
	nextID   int64
}

func (s *hushServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/conversations/42/messages", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]map[string]any, len(s.messages))
		for i, m := range s.messages {
			out[i] = map[string]any{
				"id":         m.ID,
				"sender_id":  m.SenderID,
				"content":    m.Content,
				"created_at": m.CreatedAt.Format(time.RFC3339),
			}
		}
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("/messages", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ConversationID int64  `json:"conversation_id"`
			Content        string `json:"content"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		s.mu.Lock()
		s.nextID++
		s.messages = append(s.messages, api.Message{
			ID:        s.nextID,
			SenderID:  1,
			Content:   body.Content,
			CreatedAt: time.Now(),
		})
		s.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	return mux
}

// Drives the full send path against a live test server: open a chat, type a
// message, send it, and watch the reloaded feed show it last.
func TestChatSendScenario(t *testing.T) {
	backend := &hushServer{nextID: 2}
	backend.messages = []api.Message{
		{ID: 1, SenderID: 2, Content: "hey alice", CreatedAt: time.Now().Add(-time.Minute)},
		{ID: 2, SenderID: 1, Content: "hey bob", CreatedAt: time.Now().Add(-30 * time.Second)},
	}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	m := newTestModel(t, server.URL)
	m, cmd := m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindChat, EntityID: 42, Title: "bob"}))

	// Run the load command synchronously.
	m = deliver(t, m, cmd)
	if len(m.messages) != 2 {
		t.Fatalf("Expected 2 messages after load, got %d", len(m.messages))
	}

	// Type and send.
	updated, _ := m.Update(keyMsg("i"))
	m = updated.(Model)
	if !m.compose.IsActive() {
		t.Fatal("Compose should be active")
	}
	for _, r := range "hi" {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("Enter should issue the send command")
	}

	// Send, then the triggered reload.
	m = deliver(t, m, cmd)

	if len(m.messages) != 3 {
		t.Fatalf("Expected 3 messages after send and reload, got %d", len(m.messages))
	}
	last := m.messages[len(m.messages)-1]
	if last.Content != "hi" || last.SenderID != 1 {
		t.Errorf("Sent message not last: %+v", last)
	}
	if m.compose.Value() != "" {
		t.Errorf("Compose not cleared after send: %q", m.compose.Value())
	}

	// The feed render includes the new message.
	if !strings.Contains(m.viewport.View(), "hi") {
		t.Error("Viewport does not show the sent message")
	}
}

// deliver runs commands to completion, feeding their messages back into the
// model the way the runtime would. Tick-based commands are skipped.
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		switch msg := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			for _, c := range msg {
				queue = append(queue, c)
			}
		case spinner.TickMsg, scrollSettleMsg:
			continue
		default:
			updated, follow := m.Update(msg)
			m = updated.(Model)
			if follow != nil {
				queue = append(queue, follow)
			}
		}
	}
	return m
}
