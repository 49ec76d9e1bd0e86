// Package tui implements the Hush terminal client: a tabbed chat interface
// with conversation lists, message feeds, group browsing, profiles, and
// settings, driven by a single update loop.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/hushchat/hush-tui/internal/api"
	"github.com/hushchat/hush-tui/internal/cache"
	"github.com/hushchat/hush-tui/internal/constants"
	"github.com/hushchat/hush-tui/internal/feed"
	"github.com/hushchat/hush-tui/internal/nav"
	"github.com/hushchat/hush-tui/internal/session"
)

// Model is the application state. All fields are owned by the update loop.
type Model struct {
	client   *api.Client
	cache    *cache.Cache
	sess     *session.Session
	endpoint string

	stack nav.Stack

	width  int
	height int
	ready  bool

	spinner spinner.Model
	loading bool
	errMsg  string
	notice  string

	// Chats tab
	conversations []api.Conversation
	filterMode    FilterMode
	chatCursor    int

	// Groups tab
	groups       []api.Group
	groupCursor  int
	searchQuery  string // applied filter
	searchDraft  string // being typed, applied after the debounce window
	searchActive bool
	searchSeq    int

	// Open feed (1:1 chat or group)
	messages      []api.Message
	feedScope     cache.ScopeKind
	feedScopeID   int64
	feedErr       string
	isMember      bool
	otherUserID   int64
	groupDetail   *api.GroupDetail
	viewport      viewport.Model
	scrollAttempt int
	compose       ComposeModel
	sending       bool

	// Profile
	profile      *api.Profile
	avatarPicker bool
	avatarCursor int

	// Settings
	settingsCursor int
	colorPicker    bool
	colorCursor    int
	confirmLogout  bool

	// Last bubble color persisted locally, the offline fallback for
	// outgoing bubbles.
	cachedColor string
}

// NewModel creates the application model. The session must already be
// populated from the identity fetch.
func NewModel(client *api.Client, c *cache.Cache, sess *session.Session, endpoint string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorBrand)

	cachedColor, err := c.MessageColor()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read cached message color")
	}

	m := Model{
		client:      client,
		cache:       c,
		sess:        sess,
		endpoint:    endpoint,
		stack:       nav.NewStack(),
		spinner:     sp,
		compose:     NewComposeModel(),
		isMember:    true,
		loading:     true,
		cachedColor: cachedColor,
		colorCursor: paletteIndex(sess.MessageColor),
	}

	return m
}

// Init starts the spinner and the initial conversation load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchConversations(m.stack.Gen()))
}

// Update is the single event handler. Asynchronous results carry the stack
// generation from request time; anything stale is dropped on arrival.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.viewport.Width = m.width - 3 // scrollbar column
		m.viewport.Height = m.feedHeight()
		m.compose.SetWidth(m.width)
		if m.inFeed() {
			m.setFeedContent()
			m.viewport.GotoBottom()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case conversationsMsg:
		if msg.gen != m.stack.Gen() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("Failed to load conversations")
			m.errMsg = "Couldn't load chats. Press 'r' to retry."
			return m, nil
		}
		m.errMsg = ""
		m.conversations = msg.conversations
		m.chatCursor = clamp(m.chatCursor, len(m.conversations))
		return m, nil

	case groupsMsg:
		if msg.gen != m.stack.Gen() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("Failed to load groups")
			m.errMsg = "Couldn't load groups. Press 'r' to retry."
			return m, nil
		}
		m.errMsg = ""
		m.groups = msg.groups
		m.groupCursor = clamp(m.groupCursor, len(filterGroups(m.groups, m.searchQuery)))
		return m, nil

	case feedMsg:
		if msg.gen != m.stack.Gen() || msg.scope != m.feedScope || msg.scopeID != m.feedScopeID {
			return m, nil
		}
		m.loading = false
		if msg.notMember {
			m.isMember = false
			m.compose.SetEnabled(false)
			m.messages = nil
			m.feedErr = ""
			m.setFeedContent()
			return m, nil
		}
		if msg.err != nil {
			// The previous feed stays on screen; only the error line changes.
			log.Error().Err(msg.err).Msg("Failed to load messages")
			m.feedErr = "Couldn't refresh messages"
			return m, nil
		}
		m.feedErr = ""
		messages := msg.messages
		feed.Sort(messages)
		m.messages = messages
		m.setFeedContent()
		m.viewport.GotoBottom()
		m.scrollAttempt = 1
		return m, scrollSettle(msg.gen, 1)

	case groupDetailMsg:
		if msg.gen != m.stack.Gen() {
			return m, nil
		}
		if msg.notMember {
			m.isMember = false
			m.compose.SetEnabled(false)
			return m, nil
		}
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("Failed to load group detail")
			m.errMsg = "Couldn't load group info"
			return m, nil
		}
		m.groupDetail = msg.detail
		m.isMember = true
		m.compose.SetEnabled(true)
		return m, nil

	case profileMsg:
		if msg.gen != m.stack.Gen() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("Failed to load profile")
			m.errMsg = "Couldn't load profile"
			return m, nil
		}
		m.profile = msg.profile
		return m, nil

	case sendResultMsg:
		m.sending = false
		if msg.gen != m.stack.Gen() {
			return m, nil
		}
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("Failed to send message")
			m.feedErr = "Couldn't send message"
			return m, nil
		}
		// No local insert: the reload is the source of truth for ordering
		// and server-assigned fields.
		m.compose.Reset()
		m.feedErr = ""
		return m, m.fetchFeed(m.stack.Gen(), msg.scope, msg.scopeID)

	case joinResultMsg:
		if msg.gen != m.stack.Gen() {
			return m, nil
		}
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("Failed to join group")
			m.errMsg = "Couldn't join group"
			return m, nil
		}
		m.isMember = true
		m.compose.SetEnabled(true)
		m.notice = "Joined!"
		gen := m.stack.Gen()
		return m, tea.Batch(
			m.fetchGroupDetail(gen, msg.groupID),
			m.fetchFeed(gen, cache.ScopeGroup, msg.groupID),
		)

	case likeResultMsg:
		if msg.gen != m.stack.Gen() {
			return m, nil
		}
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("Failed to toggle like")
			m.errMsg = "Couldn't update like"
			return m, nil
		}
		switch m.stack.Current().Kind {
		case nav.KindChats:
			return m, m.fetchConversations(msg.gen)
		case nav.KindGroups:
			return m, m.fetchGroups(msg.gen)
		}
		return m, nil

	case colorSavedMsg:
		m.colorPicker = false
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("Failed to save message color")
			m.errMsg = "Couldn't save colour"
			return m, nil
		}
		m.sess.SetMessageColor(msg.color)
		m.cachedColor = msg.color
		if err := m.cache.SetMessageColor(msg.color); err != nil {
			log.Warn().Err(err).Msg("Failed to cache message color")
		}
		m.notice = "Message colour saved"
		return m, nil

	case avatarSavedMsg:
		m.avatarPicker = false
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("Failed to update avatar")
			m.errMsg = "Couldn't update avatar"
			return m, nil
		}
		m.sess.SetAvatar(msg.avatar)
		m.notice = "Avatar updated"
		return m, nil

	case logoutMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("Logout request failed; quitting anyway")
		}
		return m, tea.Quit

	case scrollSettleMsg:
		// Bounded settle loop: content height can change as the terminal
		// reflows, so re-pin to the bottom for a few frames and stop.
		if msg.gen != m.stack.Gen() || msg.attempt != m.scrollAttempt {
			return m, nil
		}
		m.viewport.GotoBottom()
		if m.atBottom() || msg.attempt >= constants.ScrollSettleAttempts {
			m.scrollAttempt = 0
			return m, nil
		}
		m.scrollAttempt = msg.attempt + 1
		return m, scrollSettle(msg.gen, m.scrollAttempt)

	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.searchQuery = m.searchDraft
		m.groupCursor = 0
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.confirmLogout {
		switch msg.String() {
		case "y", "Y":
			m.confirmLogout = false
			return m, m.logout()
		case "n", "N", "esc":
			m.confirmLogout = false
		}
		return m, nil
	}

	if m.compose.IsActive() {
		return m.handleComposeKey(msg)
	}

	if m.searchActive {
		return m.handleSearchKey(msg)
	}

	if m.colorPicker {
		return m.handleColorPickerKey(msg)
	}

	if m.avatarPicker {
		return m.handleAvatarPickerKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		return m.dispatch(nav.Back())
	case "1":
		return m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindChats, Title: "My Chats"}))
	case "2":
		return m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindGroups, Title: "Groups"}))
	case "3":
		return m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindFriends, Title: "Friends"}))
	case "4":
		return m.dispatch(nav.Navigate(nav.Frame{Kind: nav.KindSettings, Title: "Settings"}))
	case "5":
		return m.dispatch(nav.Navigate(nav.Frame{
			Kind:     nav.KindProfile,
			EntityID: m.sess.UserID,
			Title:    "My Profile",
		}))
	}

	switch m.stack.Current().Kind {
	case nav.KindChats:
		return m.handleChatsKey(msg)
	case nav.KindGroups:
		return m.handleGroupsKey(msg)
	case nav.KindChat, nav.KindGroup:
		return m.handleFeedKey(msg)
	case nav.KindSettings:
		return m.handleSettingsKey(msg)
	case nav.KindProfile:
		if m.viewingOwnProfile() && msg.String() == "a" {
			m.avatarPicker = true
			m.avatarCursor = avatarIndex(m.sess.Avatar)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.compose.Blur()
		return m, nil
	case tea.KeyEnter:
		content := strings.TrimSpace(m.compose.Value())
		if content == "" || m.sending {
			return m, nil
		}
		m.sending = true
		return m, m.sendMessage(m.stack.Gen(), m.feedScope, m.feedScopeID, content)
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape, tea.KeyEnter:
		m.searchActive = false
		return m, nil
	case tea.KeyBackspace:
		if m.searchDraft != "" {
			runes := []rune(m.searchDraft)
			m.searchDraft = string(runes[:len(runes)-1])
		}
	case tea.KeyCtrlU:
		m.searchDraft = ""
	case tea.KeySpace:
		m.searchDraft += " "
	case tea.KeyRunes:
		m.searchDraft += string(msg.Runes)
	default:
		return m, nil
	}

	m.searchSeq++
	return m, debounceSearch(m.searchSeq)
}

func (m Model) handleColorPickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	const perRow = 5
	n := len(constants.MessageColorPalette)

	switch msg.String() {
	case "esc":
		m.colorPicker = false
	case "left", "h":
		if m.colorCursor > 0 {
			m.colorCursor--
		}
	case "right", "l":
		if m.colorCursor < n-1 {
			m.colorCursor++
		}
	case "up", "k":
		if m.colorCursor-perRow >= 0 {
			m.colorCursor -= perRow
		}
	case "down", "j":
		if m.colorCursor+perRow < n {
			m.colorCursor += perRow
		}
	case "enter":
		return m, m.saveMessageColor(constants.MessageColorPalette[m.colorCursor].Value)
	}
	return m, nil
}

func (m Model) handleAvatarPickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.avatarPicker = false
	case "left", "h":
		if m.avatarCursor > 0 {
			m.avatarCursor--
		}
	case "right", "l":
		if m.avatarCursor < len(availableAvatars)-1 {
			m.avatarCursor++
		}
	case "enter":
		return m, m.saveAvatar(availableAvatars[m.avatarCursor])
	}
	return m, nil
}

func (m Model) handleChatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible, _ := filterConversations(m.conversations, m.filterMode)

	switch msg.String() {
	case "up", "k":
		if m.chatCursor > 0 {
			m.chatCursor--
		}
	case "down", "j":
		if m.chatCursor < len(visible)-1 {
			m.chatCursor++
		}
	case "f":
		m.filterMode = (m.filterMode + 1) % 4
		m.chatCursor = 0
	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchConversations(m.stack.Gen()))
	case "L":
		if m.chatCursor < len(visible) {
			return m, m.toggleConversationLike(m.stack.Gen(), visible[m.chatCursor])
		}
	case "enter":
		if m.chatCursor < len(visible) {
			conv := visible[m.chatCursor]
			m.otherUserID = conv.OtherUserID
			return m.dispatch(nav.Navigate(nav.Frame{
				Kind:     nav.KindChat,
				EntityID: conv.ConversationID,
				Title:    conv.DisplayTitle(),
			}))
		}
	}
	return m, nil
}

func (m Model) handleGroupsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := filterGroups(m.groups, m.searchQuery)

	switch msg.String() {
	case "up", "k":
		if m.groupCursor > 0 {
			m.groupCursor--
		}
	case "down", "j":
		if m.groupCursor < len(visible)-1 {
			m.groupCursor++
		}
	case "/":
		m.searchActive = true
	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchGroups(m.stack.Gen()))
	case "L":
		if m.groupCursor < len(visible) {
			return m, m.toggleGroupLike(m.stack.Gen(), visible[m.groupCursor])
		}
	case "enter":
		if m.groupCursor < len(visible) {
			g := visible[m.groupCursor]
			return m.dispatch(nav.Navigate(nav.Frame{
				Kind:     nav.KindGroup,
				EntityID: g.GroupID,
				Title:    g.Name,
			}))
		}
	}
	return m, nil
}

func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	current := m.stack.Current()

	switch msg.String() {
	case "i":
		if cmd := m.compose.Focus(); cmd != nil {
			return m, cmd
		}
		return m, nil
	case "r":
		return m, m.fetchFeed(m.stack.Gen(), m.feedScope, m.feedScopeID)
	case "p":
		if current.Kind == nav.KindChat && m.otherUserID != 0 {
			return m.dispatch(nav.Navigate(nav.Frame{
				Kind:     nav.KindProfile,
				EntityID: m.otherUserID,
				Title:    current.Title,
			}))
		}
		return m, nil
	case "o":
		if current.Kind == nav.KindGroup {
			return m.dispatch(nav.Navigate(nav.Frame{
				Kind:     nav.KindGroupInfo,
				EntityID: current.EntityID,
				Title:    "Group Info",
			}))
		}
		return m, nil
	case "J":
		if current.Kind == nav.KindGroup && !m.isMember {
			return m, m.joinGroup(m.stack.Gen(), current.EntityID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case "down", "j":
		if m.settingsCursor < int(settingsItemCount)-1 {
			m.settingsCursor++
		}
	case "enter":
		switch settingsItem(m.settingsCursor) {
		case settingEditProfile:
			return m.dispatch(nav.Navigate(nav.Frame{
				Kind:     nav.KindProfile,
				EntityID: m.sess.UserID,
				Title:    "My Profile",
			}))
		case settingMessageColor:
			m.colorPicker = true
			m.colorCursor = paletteIndex(m.sess.MessageColor)
		case settingSuperPowers, settingPrivacy:
			m.notice = "Coming soon"
		case settingLogout:
			m.confirmLogout = true
		}
	}
	return m, nil
}

// dispatch runs one navigation event through the state machine and turns
// the resulting effects into commands.
func (m Model) dispatch(ev nav.Event) (Model, tea.Cmd) {
	next, effects := nav.Apply(m.stack, ev)
	m.stack = next
	m.errMsg = ""
	m.notice = ""

	var cmds []tea.Cmd
	for _, eff := range effects {
		var cmd tea.Cmd
		switch eff := eff.(type) {
		case nav.EffectLoad:
			m, cmd = m.loadFrame(eff.Frame, eff.Gen)
		case nav.EffectRestore:
			m, cmd = m.restoreFrame(eff.Frame, eff.Gen)
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// loadFrame prepares state for a freshly navigated-to frame and returns the
// fetch command. Cached snapshots paint immediately so the view never flashes
// empty while the network round-trip runs.
func (m Model) loadFrame(frame nav.Frame, gen uint64) (Model, tea.Cmd) {
	m.loading = false

	switch frame.Kind {
	case nav.KindChats:
		m.loading = true
		if cached, _, err := m.cache.Conversations(); err == nil && len(cached) > 0 {
			m.conversations = cached
		}
		return m, tea.Batch(m.spinner.Tick, m.fetchConversations(gen))

	case nav.KindGroups:
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchGroups(gen))

	case nav.KindChat:
		m = m.openFeed(cache.ScopeConversation, frame.EntityID)
		return m, tea.Batch(m.spinner.Tick, m.fetchFeed(gen, cache.ScopeConversation, frame.EntityID))

	case nav.KindGroup:
		m = m.openFeed(cache.ScopeGroup, frame.EntityID)
		m.groupDetail = nil
		return m, tea.Batch(
			m.spinner.Tick,
			m.fetchGroupDetail(gen, frame.EntityID),
			m.fetchFeed(gen, cache.ScopeGroup, frame.EntityID),
		)

	case nav.KindGroupInfo:
		return m, m.fetchGroupDetail(gen, frame.EntityID)

	case nav.KindProfile:
		m.avatarPicker = false
		m.profile = nil
		if frame.EntityID == m.sess.UserID {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchProfile(gen, frame.EntityID))
	}

	return m, nil
}

// restoreFrame re-activates a frame after back navigation. The previous
// render is repainted from cache; a refetch runs only when the snapshot has
// aged out, and never blocks the repaint.
func (m Model) restoreFrame(frame nav.Frame, gen uint64) (Model, tea.Cmd) {
	switch frame.Kind {
	case nav.KindChats:
		cached, fetchedAt, err := m.cache.Conversations()
		if err == nil && len(cached) > 0 {
			m.conversations = cached
		}
		if time.Since(fetchedAt) > constants.ConversationCacheTTL {
			return m, m.fetchConversations(gen)
		}
		return m, nil

	case nav.KindGroups:
		if len(m.groups) == 0 {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetchGroups(gen))
		}
		return m, nil

	case nav.KindChat:
		m = m.openFeed(cache.ScopeConversation, frame.EntityID)
		return m, m.fetchFeed(gen, cache.ScopeConversation, frame.EntityID)

	case nav.KindGroup:
		m = m.openFeed(cache.ScopeGroup, frame.EntityID)
		return m, tea.Batch(
			m.fetchGroupDetail(gen, frame.EntityID),
			m.fetchFeed(gen, cache.ScopeGroup, frame.EntityID),
		)
	}

	return m, nil
}

// openFeed switches the feed state to a scope and repaints from cache.
func (m Model) openFeed(scope cache.ScopeKind, scopeID int64) Model {
	m.feedScope = scope
	m.feedScopeID = scopeID
	m.feedErr = ""
	m.sending = false
	m.isMember = true
	m.compose.SetEnabled(true)
	m.compose.Blur()
	m.compose.Reset()
	m.loading = true

	m.messages = nil
	if cached, _, err := m.cache.Messages(scope, scopeID); err == nil {
		m.messages = cached
	}
	m.loading = len(m.messages) == 0
	m.viewport.Width = m.width - 3
	m.viewport.Height = m.feedHeight()
	m.setFeedContent()
	m.viewport.GotoBottom()

	return m
}

// setFeedContent swaps the full rendered feed into the viewport as one unit.
func (m *Model) setFeedContent() {
	if !m.inFeed() {
		return
	}
	if !m.isMember {
		m.viewport.SetContent(emptyStyle.Width(m.viewport.Width).Render("Join the group to see messages"))
		return
	}
	m.viewport.SetContent(renderFeed(m.messages, m.sess, m.cachedColor, m.viewport.Width, m.feedScope == cache.ScopeGroup))
}

// atBottom reports whether the viewport sits within tolerance of the true
// bottom of its content.
func (m Model) atBottom() bool {
	remaining := m.viewport.TotalLineCount() - (m.viewport.YOffset + m.viewport.Height)
	return remaining <= constants.ScrollBottomTolerance
}

func (m Model) inFeed() bool {
	kind := m.stack.Current().Kind
	return kind == nav.KindChat || kind == nav.KindGroup
}

func (m Model) viewingOwnProfile() bool {
	current := m.stack.Current()
	return current.Kind == nav.KindProfile && current.EntityID == m.sess.UserID
}

// feedHeight is the viewport height after top bar, status line, and compose
// bar chrome.
func (m Model) feedHeight() int {
	h := m.height - 1 - 1 - 3
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) contentHeight() int {
	h := m.height - 1 - 1 - 1 // top bar, status, bottom nav
	if h < 3 {
		h = 3
	}
	return h
}

// View renders the current frame with its chrome.
func (m Model) View() string {
	if !m.ready {
		return "Starting Hush..."
	}

	current := m.stack.Current()

	var b strings.Builder
	b.WriteString(m.renderTopBar(current))
	b.WriteString("\n")
	b.WriteString(m.renderContent(current))
	b.WriteString("\n")
	b.WriteString(m.renderStatus(current))

	if current.ShowsBottomNav() {
		b.WriteString("\n")
		b.WriteString(renderBottomNav(current.Kind, m.width))
	}

	return b.String()
}

func (m Model) renderTopBar(current nav.Frame) string {
	title := topBarStyle.Render(current.Title)
	if current.ShowsBackButton() {
		return backHintStyle.Render("← esc ") + title
	}
	return title
}

func (m Model) renderContent(current nav.Frame) string {
	switch current.Kind {
	case nav.KindChats:
		return m.renderChatsTab()
	case nav.KindGroups:
		return m.renderGroupsTab()
	case nav.KindChat, nav.KindGroup:
		return m.renderFeedView(current)
	case nav.KindGroupInfo:
		return renderGroupInfo(m.groupDetail, m.endpoint, m.width)
	case nav.KindFriends:
		return renderFriends(m.width)
	case nav.KindSettings:
		return m.renderSettingsTab()
	case nav.KindProfile:
		if m.viewingOwnProfile() {
			return renderOwnProfile(m.sess, m.endpoint, m.avatarPicker, m.avatarCursor, m.width)
		}
		if m.loading {
			return m.spinner.View() + " Loading profile..."
		}
		return renderUserProfile(m.profile, m.width)
	}
	return ""
}

func (m Model) renderChatsTab() string {
	bar := renderFilterBar(m.filterMode, m.width)

	visible, placeholder := filterConversations(m.conversations, m.filterMode)
	var body string
	switch {
	case placeholder != "":
		body = emptyStyle.Width(m.width).Render(placeholder)
	case m.loading && len(visible) == 0:
		body = m.spinner.View() + " Loading chats..."
	default:
		body = renderConversationList(visible, m.chatCursor, m.width, m.contentHeight()-1)
	}

	return lipgloss.JoinVertical(lipgloss.Left, bar, body)
}

func (m Model) renderGroupsTab() string {
	search := renderGroupSearch(m.searchDraft, m.width)

	visible := filterGroups(m.groups, m.searchQuery)
	var body string
	if m.loading && len(visible) == 0 {
		body = m.spinner.View() + " Loading groups..."
	} else {
		body = renderGroupList(visible, m.groupCursor, m.width, m.contentHeight()-3)
	}

	return lipgloss.JoinVertical(lipgloss.Left, search, body)
}

func (m Model) renderFeedView(current nav.Frame) string {
	var body string
	if m.loading && len(m.messages) == 0 && m.isMember {
		body = lipgloss.NewStyle().Height(m.viewport.Height).Render(m.spinner.View() + " Loading messages...")
	} else {
		scrollbar := renderScrollbar(m.viewport.Height, m.viewport.TotalLineCount(), m.viewport.YOffset)
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), " ", scrollbar)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.compose.View(m.width))
}

func (m Model) renderSettingsTab() string {
	if m.confirmLogout {
		return renderLogoutConfirm(m.width)
	}
	if m.colorPicker {
		return renderColorPicker(m.colorCursor, m.sess.MessageColor, m.width)
	}
	return renderSettings(m.settingsCursor, m.sess.MessageColor, m.width)
}

func (m Model) renderStatus(current nav.Frame) string {
	switch {
	case m.errMsg != "":
		return errorStyle.Render(m.errMsg)
	case m.inFeed() && m.feedErr != "":
		return errorStyle.Render(m.feedErr)
	case m.notice != "":
		return successStyle.Render(m.notice)
	}
	return dimmedStyle.Render(statusHint(current.Kind))
}

func statusHint(kind nav.Kind) string {
	switch kind {
	case nav.KindChats:
		return "↑/↓ move · enter open · L like · f filter · 1-5 tabs · q quit"
	case nav.KindGroups:
		return "↑/↓ move · enter open · / search · L like · q quit"
	case nav.KindChat:
		return "i type · p profile · r refresh · esc back"
	case nav.KindGroup:
		return "i type · o info · r refresh · esc back"
	case nav.KindProfile:
		return "a avatar · esc back"
	case nav.KindSettings:
		return "↑/↓ move · enter select"
	}
	return "esc back"
}

// renderBottomNav renders the tab bar shown on top-level views.
func renderBottomNav(active nav.Kind, width int) string {
	tabs := []struct {
		kind  nav.Kind
		label string
	}{
		{nav.KindChats, "💬 Chats"},
		{nav.KindGroups, "👥 Groups"},
		{nav.KindFriends, "🫂 Friends"},
		{nav.KindSettings, "⚙ Settings"},
	}

	var parts []string
	for _, t := range tabs {
		if t.kind == active {
			parts = append(parts, navItemActiveStyle.Render(t.label))
		} else {
			parts = append(parts, navItemStyle.Render(t.label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return lipgloss.NewStyle().Width(width).Render(bar)
}

func paletteIndex(color string) int {
	for i, opt := range constants.MessageColorPalette {
		if opt.Value == color {
			return i
		}
	}
	return 0
}

func avatarIndex(avatar string) int {
	for i, a := range availableAvatars {
		if a == avatar {
			return i
		}
	}
	return 0
}

func clamp(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
