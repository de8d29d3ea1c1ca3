package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"satchel/internal/api"
)

// newPostArea builds the textarea used by the draft and edit overlays.
func newPostArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "What's on your mind?"
	ta.SetWidth(78)
	ta.SetHeight(6)
	ta.CharLimit = api.MaxPostLength
	ta.ShowLineNumbers = false
	return ta
}

// Key handling

func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CycleFilter):
		return m.cycleFeed()
	case key.Matches(msg, m.keys.Compose):
		return m.startDraft()
	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleLike()
	case key.Matches(msg, m.keys.Open):
		return m.openProfile()
	case key.Matches(msg, m.keys.PrevPage):
		return m.changePostsPage(-1)
	case key.Matches(msg, m.keys.NextPage):
		return m.changePostsPage(1)
	}

	switch msg.String() {
	case "j", "down":
		m.postCursor = min(m.postCursor+1, max(m.posts.Len()-1, 0))
	case "k", "up":
		m.postCursor = max(m.postCursor-1, 0)
	case "g", "home":
		m.postCursor = 0
	case "G", "end":
		m.postCursor = max(m.posts.Len()-1, 0)
	}
	return m, nil
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleFollow()
	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()
	case key.Matches(msg, m.keys.PrevPage):
		return m.changePostsPage(-1)
	case key.Matches(msg, m.keys.NextPage):
		return m.changePostsPage(1)
	}

	switch msg.String() {
	case "j", "down":
		m.postCursor = min(m.postCursor+1, max(m.posts.Len()-1, 0))
	case "k", "up":
		m.postCursor = max(m.postCursor-1, 0)
	case "g", "home":
		m.postCursor = 0
	case "G", "end":
		m.postCursor = max(m.posts.Len()-1, 0)
	}
	return m, nil
}

func (m Model) handleDraftKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Close the overlay; the text stays for next time.
		m.draftOpen = false
		m.draft.Blur()
		return m, nil
	case "ctrl+s":
		return m.submitDraft()
	}
	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel without a request; the list keeps the server's copy.
		m.editID = 0
		m.editor.Blur()
		return m, nil
	case "ctrl+s":
		return m.submitEdit()
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// Actions

// cycleFeed flips between the shared feed and the following feed. The
// following feed needs a session.
func (m Model) cycleFeed() (tea.Model, tea.Cmd) {
	kind := api.FeedFollowing
	if m.feedKind == api.FeedFollowing {
		kind = api.FeedAll
	}
	if kind == api.FeedFollowing && !m.feedLoggedIn() {
		m.openLogin(ScreenFeed)
		m.alert.ShowWarning("Sign in to see posts from people you follow.")
		return m, nil
	}
	m.feedKind = kind
	m.postCursor = 0
	m.alert.Clear()
	return m, m.loadPostsCmd(kind, "", 1)
}

func (m Model) startDraft() (tea.Model, tea.Cmd) {
	if !m.feedLoggedIn() {
		m.openLogin(ScreenFeed)
		m.alert.ShowWarning("Sign in to post.")
		return m, nil
	}
	m.draftOpen = true
	m.alert.Clear()
	return m, m.draft.Focus()
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	post, ok := m.posts.Item(m.postCursor)
	if !ok || !post.CanEdit {
		return m, nil
	}
	m.editID = post.ID
	m.editor.Reset()
	m.editor.SetValue(post.Content)
	m.alert.Clear()
	return m, m.editor.Focus()
}

func (m Model) toggleLike() (tea.Model, tea.Cmd) {
	if !m.feedLoggedIn() {
		m.openLogin(m.screen)
		m.alert.ShowWarning("Sign in to like posts.")
		return m, nil
	}
	post, ok := m.posts.Item(m.postCursor)
	if !ok || m.busy(postLikeOp(post.ID)) {
		return m, nil
	}
	m.begin(postLikeOp(post.ID))
	return m, tea.Batch(m.toggleLikeCmd(post.ID), m.spin.Tick)
}

func (m Model) toggleFollow() (tea.Model, tea.Cmd) {
	if m.profile == nil || m.profile.IsSelf || m.busy(opFollow) {
		return m, nil
	}
	if !m.feedLoggedIn() {
		m.openLogin(ScreenProfile)
		m.alert.ShowWarning("Sign in to follow people.")
		return m, nil
	}
	m.begin(opFollow)
	return m, tea.Batch(m.toggleFollowCmd(m.profile.Username), m.spin.Tick)
}

// openProfile visits the author of the selected post.
func (m Model) openProfile() (tea.Model, tea.Cmd) {
	post, ok := m.posts.Item(m.postCursor)
	if !ok {
		return m, nil
	}
	m.profileName = post.Author
	m.profile = nil
	m.postCursor = 0
	m.navigate(ScreenProfile)
	return m, tea.Batch(
		m.loadProfileCmd(post.Author),
		m.loadPostsCmd(api.FeedProfile, post.Author, 1),
	)
}

// changePostsPage loads an adjacent page of whichever post list is showing.
func (m Model) changePostsPage(delta int) (tea.Model, tea.Cmd) {
	page := m.posts.Page() + delta
	if page < 1 || (m.posts.TotalPages() > 0 && page > m.posts.TotalPages()) {
		return m, nil
	}
	m.postCursor = 0
	if m.screen == ScreenProfile {
		return m, m.loadPostsCmd(api.FeedProfile, m.profileName, page)
	}
	return m, m.loadPostsCmd(m.feedKind, "", page)
}

func (m Model) submitDraft() (tea.Model, tea.Cmd) {
	if m.busy(opCreatePost) {
		return m, nil
	}
	content := strings.TrimSpace(m.draft.Value())
	if content == "" {
		m.alert.ShowWarning("Post content cannot be empty.")
		return m, nil
	}
	if utf8.RuneCountInString(content) > api.MaxPostLength {
		m.alert.ShowWarning(fmt.Sprintf("Posts are limited to %d characters.", api.MaxPostLength))
		return m, nil
	}
	m.begin(opCreatePost)
	return m, tea.Batch(m.createPostCmd(content), m.spin.Tick)
}

func (m Model) submitEdit() (tea.Model, tea.Cmd) {
	if m.editID == 0 || m.busy(opEditPost) {
		return m, nil
	}
	content := strings.TrimSpace(m.editor.Value())
	if content == "" {
		m.alert.ShowWarning("Post content cannot be empty.")
		return m, nil
	}
	if utf8.RuneCountInString(content) > api.MaxPostLength {
		m.alert.ShowWarning(fmt.Sprintf("Posts are limited to %d characters.", api.MaxPostLength))
		return m, nil
	}
	m.begin(opEditPost)
	return m, tea.Batch(m.editPostCmd(m.editID, content), m.spin.Tick)
}

func (m Model) feedLoggedIn() bool {
	return m.feed != nil && m.feed.LoggedIn()
}

// Message handlers

func (m *Model) handlePostsLoaded(msg postsLoadedMsg) {
	if msg.err != nil {
		if !m.posts.Fail(msg.seq, msg.err) {
			return // stale response
		}
		if api.IsAuth(msg.err) && (m.screen == ScreenFeed || m.screen == ScreenProfile) {
			target := m.screen
			m.openLogin(target)
			m.alert.ShowWarning(api.Message(msg.err, "Sign in to view this feed."))
		}
		return
	}

	selected := m.selectedPostID()
	if !m.posts.Resolve(msg.seq, msg.page.Results, msg.page.TotalPages) {
		return // stale response
	}
	m.postCursor = indexOfPost(m.posts.Items(), selected)
	m.feedPager.Page = max(msg.page.Page-1, 0)
	m.feedPager.TotalPages = max(msg.page.TotalPages, 1)
}

func (m *Model) handlePostCreated(msg postCreatedMsg) tea.Cmd {
	m.finish(opCreatePost)
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			m.openLogin(ScreenFeed)
			m.alert.ShowWarning(api.Message(msg.err, "Sign in to post."))
			return nil
		}
		m.alert.ShowError(api.Message(msg.err, "Could not publish the post."))
		return nil
	}

	// Published; drop the draft and show the fresh feed from the top.
	m.draftOpen = false
	m.draft.Reset()
	m.draft.Blur()
	m.postCursor = 0
	m.alert.ShowSuccess("Post published.")
	return m.loadPostsCmd(m.feedKind, "", 1)
}

func (m *Model) handlePostEdited(msg postEditedMsg) {
	m.finish(opEditPost)
	if msg.err != nil {
		if api.IsAuth(msg.err) && (m.screen == ScreenFeed || m.screen == ScreenProfile) {
			m.openLogin(m.screen)
			m.alert.ShowWarning(api.Message(msg.err, "Sign in to edit your posts."))
			return
		}
		m.alert.ShowError(api.Message(msg.err, "Could not save the post."))
		return
	}

	m.editID = 0
	m.editor.Blur()
	for i, p := range m.posts.Items() {
		if p.ID == msg.id {
			m.posts.Replace(i, msg.post)
			break
		}
	}
}

func (m *Model) handleLikeToggled(msg likeToggledMsg) {
	m.finish(postLikeOp(msg.id))
	if msg.err != nil {
		if api.IsAuth(msg.err) && (m.screen == ScreenFeed || m.screen == ScreenProfile) {
			m.openLogin(m.screen)
			m.alert.ShowWarning(api.Message(msg.err, "Sign in to like posts."))
			return
		}
		m.alert.ShowError(api.Message(msg.err, "Could not update the like."))
		return
	}

	for i, p := range m.posts.Items() {
		if p.ID == msg.id {
			m.posts.Replace(i, msg.post)
			break
		}
	}
}

func (m *Model) handleProfileLoaded(msg profileLoadedMsg) tea.Cmd {
	if m.screen != ScreenProfile || msg.username != m.profileName {
		return nil // navigated away; drop the stale payload
	}
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			m.openLogin(ScreenProfile)
			m.alert.ShowWarning(api.Message(msg.err, "Sign in to view profiles."))
			return nil
		}
		m.profileName = ""
		m.navigate(ScreenFeed)
		m.alert.ShowError(api.Message(msg.err, "Could not load the profile."))
		return m.loadPostsCmd(m.feedKind, "", 1)
	}

	profile := msg.profile
	m.profile = &profile
	return nil
}

func (m *Model) handleFollowToggled(msg followToggledMsg) {
	m.finish(opFollow)
	if msg.err != nil {
		if api.IsAuth(msg.err) && m.screen == ScreenProfile {
			m.openLogin(ScreenProfile)
			m.alert.ShowWarning(api.Message(msg.err, "Sign in to follow people."))
			return
		}
		m.alert.ShowError(api.Message(msg.err, "Could not update the follow."))
		return
	}

	if m.profile == nil || m.profile.Username != msg.username {
		return
	}
	m.profile.IsFollowing = msg.state.IsFollowing
	m.profile.Followers = msg.state.Followers
	m.profile.Following = msg.state.Following
}

// Helpers

func (m Model) selectedPostID() int {
	if p, ok := m.posts.Item(m.postCursor); ok {
		return p.ID
	}
	return 0
}

func indexOfPost(items []api.Post, id int) int {
	for i, p := range items {
		if p.ID == id {
			return i
		}
	}
	return 0
}

func postLikeOp(id int) string {
	return fmt.Sprintf("post.like.%d", id)
}

// Rendering

func (m Model) renderFeed() string {
	if m.draftOpen {
		return m.renderPostEditor("New post", m.draft)
	}
	if m.editID != 0 {
		return m.renderPostEditor("Edit post", m.editor)
	}

	styles := m.theme.Styles()
	if err := m.posts.Err(); err != nil {
		return m.renderLoadFailure(err, "Could not load the feed.")
	}
	if !m.posts.Loaded() {
		return m.placeCenter(styles.MutedText.Render("Loading posts..."))
	}
	if m.posts.Empty() {
		return m.placeCenter(styles.MutedText.Render(m.emptyFeedText()))
	}

	return m.renderPostList(m.feedLabel(), m.contentHeight())
}

func (m Model) renderProfile() string {
	if m.editID != 0 {
		return m.renderPostEditor("Edit post", m.editor)
	}

	styles := m.theme.Styles()
	if m.profile == nil {
		return m.placeCenter(styles.MutedText.Render("Loading profile..."))
	}
	p := *m.profile

	var head strings.Builder
	head.WriteString(styles.AccentText.Bold(true).Render("@" + p.Username))
	head.WriteString("  ")
	head.WriteString(styles.Text.Render(fmt.Sprintf("%d", p.Followers)))
	head.WriteString(styles.MutedText.Render(" followers"))
	head.WriteString(styles.FaintText.Render(" · "))
	head.WriteString(styles.Text.Render(fmt.Sprintf("%d", p.Following)))
	head.WriteString(styles.MutedText.Render(" following"))
	switch {
	case p.IsSelf:
		head.WriteString("  ")
		head.WriteString(styles.FaintText.Render("(you)"))
	case p.IsFollowing:
		head.WriteString("  ")
		head.WriteString(styles.SuccessText.Render("✓ following"))
	}
	header := lipgloss.NewStyle().Padding(0, 1).Render(head.String())

	pad := lipgloss.NewStyle().Padding(0, 1)
	var body string
	switch {
	case m.posts.Err() != nil:
		body = pad.Render(styles.DangerText.Render(api.Message(m.posts.Err(), "Could not load posts.")))
	case !m.posts.Loaded():
		body = pad.Render(styles.MutedText.Render("Loading posts..."))
	case m.posts.Empty():
		body = pad.Render(styles.MutedText.Render("No posts yet."))
	default:
		body = m.renderPostList("Posts", m.contentHeight()-2)
	}

	return header + "\n\n" + body
}

// renderPostList renders the windowed post rows with the pager underneath.
func (m Model) renderPostList(title string, height int) string {
	styles := m.theme.Styles()

	boxHeight := max(height-1, 3)
	rowWidth := m.width - 2
	start, end := listWindow(m.posts.Len(), m.postCursor, boxHeight-2)

	var lines []string
	for i := start; i < end; i++ {
		post, _ := m.posts.Item(i)
		lines = append(lines, m.renderPostRow(post, rowWidth, i == m.postCursor))
	}

	box := m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, boxHeight, true)
	pager := styles.MutedText.Render("Page " + m.feedPager.View())
	return box + "\n" + lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(pager)
}

// renderPostRow renders one feed line: author, content, likes, timestamp.
func (m Model) renderPostRow(p api.Post, width int, selected bool) string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	likeGlyph := "♡"
	likeStyle := styles.MutedText
	if p.Liked {
		likeGlyph = "♥"
		likeStyle = styles.DangerText
	}
	likes := fmt.Sprintf("%s %d", likeGlyph, p.LikeCount)

	ts := p.CreatedAtDisplay
	if ts == "" {
		ts = p.CreatedAt
	}

	content := firstLine(p.Content)
	if p.UpdatedAt != "" {
		content += " · edited"
	}

	contentStyle := styles.Text
	if selected {
		contentStyle = contentStyle.Foreground(lipgloss.Color(m.theme.SelectionText))
	}

	contentWidth := width - 23 - len([]rune(likes)) - len([]rune(ts))
	if contentWidth < 8 {
		contentWidth = 8
	}

	line := bg.Space() +
		bg.Render(padRight(truncate(p.Author, 16), 16), styles.AccentText) + bg.Space() +
		bg.Render(padRight(truncate(content, contentWidth), contentWidth), contentStyle) + bg.Space() +
		bg.Render(likes, likeStyle) + bg.Space() +
		bg.Render(ts, styles.FaintText)

	return bg.FillLine(line, width)
}

// renderPostEditor renders the draft or edit overlay with a length counter.
func (m Model) renderPostEditor(title string, ta textarea.Model) string {
	styles := m.theme.Styles()

	used := utf8.RuneCountInString(ta.Value())
	counter := fmt.Sprintf("%d/%d", used, api.MaxPostLength)
	counterStyle := styles.MutedText
	if used > api.MaxPostLength {
		counterStyle = styles.DangerText
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n\n")
	b.WriteString(ta.View())
	b.WriteString("\n")
	b.WriteString(counterStyle.Render(counter))
	if m.busy(opCreatePost) || m.busy(opEditPost) {
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render("Publishing..."))
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}

func (m Model) emptyFeedText() string {
	if m.feedKind == api.FeedFollowing {
		return "No posts from people you follow yet."
	}
	return "No posts yet."
}

// Messages

type postsLoadedMsg struct {
	seq  uint64
	page api.PostPage
	err  error
}

type postCreatedMsg struct {
	post api.Post
	err  error
}

type postEditedMsg struct {
	id   int
	post api.Post
	err  error
}

type likeToggledMsg struct {
	id   int
	post api.Post
	err  error
}

type profileLoadedMsg struct {
	username string
	profile  api.Profile
	err      error
}

type followToggledMsg struct {
	username string
	state    api.FollowState
	err      error
}

// Commands

// loadPostsCmd starts a tagged post load. filter encodes the feed and, for
// profile pages, the user, so a late response from another view is stale.
func (m *Model) loadPostsCmd(kind, username string, page int) tea.Cmd {
	if m.feed == nil {
		return nil
	}
	seq := m.posts.Begin(feedFilter(kind, username), page)
	fetch := func() tea.Msg {
		result, err := m.feed.Posts(m.ctx, api.PostQuery{Feed: kind, Page: page, Username: username})
		return postsLoadedMsg{seq: seq, page: result, err: err}
	}
	return tea.Batch(fetch, m.spin.Tick)
}

func feedFilter(kind, username string) string {
	if username != "" {
		return kind + ":" + username
	}
	return kind
}

func (m Model) createPostCmd(content string) tea.Cmd {
	return func() tea.Msg {
		post, err := m.feed.CreatePost(m.ctx, content)
		return postCreatedMsg{post: post, err: err}
	}
}

func (m Model) editPostCmd(id int, content string) tea.Cmd {
	return func() tea.Msg {
		post, err := m.feed.EditPost(m.ctx, id, content)
		return postEditedMsg{id: id, post: post, err: err}
	}
}

func (m Model) toggleLikeCmd(id int) tea.Cmd {
	return func() tea.Msg {
		post, err := m.feed.ToggleLike(m.ctx, id)
		return likeToggledMsg{id: id, post: post, err: err}
	}
}

func (m Model) loadProfileCmd(username string) tea.Cmd {
	return func() tea.Msg {
		profile, err := m.feed.Profile(m.ctx, username)
		return profileLoadedMsg{username: username, profile: profile, err: err}
	}
}

func (m Model) toggleFollowCmd(username string) tea.Cmd {
	return func() tea.Msg {
		state, err := m.feed.ToggleFollow(m.ctx, username)
		return followToggledMsg{username: username, state: state, err: err}
	}
}
