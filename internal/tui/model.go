package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/reachon-admin/internal/api"
	"github.com/glabrego/reachon-admin/internal/app"
	"github.com/glabrego/reachon-admin/internal/content"
	"github.com/glabrego/reachon-admin/internal/media"
	tuiactions "github.com/glabrego/reachon-admin/internal/tui/actions"
	tuitheme "github.com/glabrego/reachon-admin/internal/tui/theme"
	"github.com/glabrego/reachon-admin/internal/tui/view"
)

// Options carries the collaborators of the UI. Nil funcs disable the
// matching feature.
type Options struct {
	Service  tuiactions.Service
	Previews media.PreviewStore
	Recorder media.Device
	OpenFn   func(string) error
	CopyFn   func(string) error
	ReadFn   func(path string, limit media.Limit) (media.Blob, error)
	Now      func() time.Time
}

type clearStatusMsg struct {
	id int
}

type Model struct {
	service  tuiactions.Service
	previews media.PreviewStore
	recorder media.Device
	openFn   func(string) error
	copyFn   func(string) error
	readFn   func(string, media.Limit) (media.Blob, error)
	nowFn    func() time.Time
	theme    tuitheme.Theme

	screen   view.Screen
	width    int
	height   int
	loading  bool
	spinner  spinner.Model
	status   string
	statusID int
	warning  string

	email      textinput.Model
	password   textinput.Model
	loginFocus int
	loginErr   string
	restoring  bool

	feed          content.Feed
	filter        content.Status
	visible       []content.FeedItem
	cursor        int
	pending       map[string]bool
	confirmDelete string
	relativeTime  bool
	detailTop     int

	users      []api.User
	userCursor int
	userQuery  textinput.Model
	searching  bool

	compose *composeForm
}

func NewModel(opts Options) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "Email:    "
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	query := textinput.New()
	query.Placeholder = "search users"
	query.Prompt = "/ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return Model{
		service:      opts.Service,
		previews:     opts.Previews,
		recorder:     opts.Recorder,
		openFn:       opts.OpenFn,
		copyFn:       opts.CopyFn,
		readFn:       opts.ReadFn,
		nowFn:        nowFn,
		theme:        tuitheme.Default(),
		screen:       view.ScreenLogin,
		spinner:      sp,
		email:        email,
		password:     password,
		userQuery:    query,
		filter:       content.StatusAll,
		feed:         content.NewFeed(nil),
		pending:      make(map[string]bool),
		relativeTime: true,
		restoring:    opts.Service != nil,
	}
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.spinner.Tick, tuiactions.RestoreSessionCmd(m.service))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.closeCompose()
			return m, tea.Quit
		}
		switch m.screen {
		case view.ScreenLogin:
			return m.updateLoginKey(msg)
		case view.ScreenDetail:
			return m.updateDetailKey(msg)
		case view.ScreenUsers:
			return m.updateUsersKey(msg)
		case view.ScreenPost, view.ScreenFastR:
			return m.updateComposeKey(msg)
		}
		return m.updateFeedKey(msg)

	case tuiactions.SessionRestoredMsg:
		m.restoring = false
		if msg.Err != nil {
			m.loginErr = "Could not read the saved session. Please sign in."
			return m, nil
		}
		if !msg.Active {
			return m, nil
		}
		return m.enterFeed()
	case tuiactions.LoginSuccessMsg:
		m.loading = false
		m.loginErr = ""
		m.password.Reset()
		return m.enterFeed()
	case tuiactions.LoginErrorMsg:
		m.loading = false
		m.loginErr = api.UserMessage(msg.Err, app.MsgLoginFailed)
		return m, nil
	case tuiactions.SignedOutMsg:
		m.loading = false
		m.screen = view.ScreenLogin
		m.feed = content.NewFeed(nil)
		m.visible = nil
		m.users = nil
		m.warning = ""
		m.cursor = 0
		m.loginFocus = 0
		m.password.Reset()
		m.password.Blur()
		if msg.Err != nil {
			m.loginErr = "Signed out, but the saved session could not be cleared."
		}
		cmd := m.email.Focus()
		return m, cmd

	case tuiactions.FeedLoadSuccessMsg:
		m.loading = false
		m.warning = ""
		m.feed = msg.Feed
		m.applyFilter()
		return m, nil
	case tuiactions.FeedLoadErrorMsg:
		if api.IsUnauthorized(msg.Err) {
			return m.expireSession(msg.Err)
		}
		m.loading = false
		m.feed = content.NewFeed(nil)
		m.applyFilter()
		m.warning = api.UserMessage(msg.Err, app.MsgLoadFeedFailed)
		return m, nil
	case tuiactions.ModerationSuccessMsg:
		return m.applyModeration(msg)
	case tuiactions.ModerationErrorMsg:
		delete(m.pending, msg.Item.ID)
		if api.IsUnauthorized(msg.Err) {
			return m.expireSession(msg.Err)
		}
		m.warning = api.UserMessage(msg.Err, "Failed to "+string(msg.Action)+" "+sourceNoun(msg.Item))
		return m, nil

	case tuiactions.UsersLoadSuccessMsg:
		if msg.Query != m.userQuery.Value() {
			return m, nil
		}
		m.loading = false
		m.users = msg.Users
		m.userCursor = 0
		return m, nil
	case tuiactions.UsersLoadErrorMsg:
		if msg.Query != m.userQuery.Value() {
			return m, nil
		}
		if api.IsUnauthorized(msg.Err) {
			return m.expireSession(msg.Err)
		}
		m.loading = false
		m.users = []api.User{}
		m.userCursor = 0
		m.warning = api.UserMessage(msg.Err, app.MsgLoadUsersFailed)
		return m, nil

	case tuiactions.SubmitSuccessMsg:
		return m.applySubmitSuccess(msg)
	case tuiactions.SubmitErrorMsg:
		if m.compose != nil && m.compose.draft.ID == msg.DraftID {
			m.compose.submitting = false
			m.compose.err = api.UserMessage(msg.Err, submitFailureMessage(msg.Kind))
		}
		return m, nil
	case recordTickMsg:
		return m.applyRecordTick(msg)

	case tuiactions.PlatformSuccessMsg:
		return m.setStatus(msg.Status, 3*time.Second)
	case tuiactions.PlatformErrorMsg:
		return m.setStatus(msg.Err.Error(), 4*time.Second)
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	th := m.theme

	header := th.Title.Render("Reachon Admin") + " " + th.ModePill.Render(string(m.screen))
	if m.loading || m.restoring || (m.compose != nil && m.compose.submitting) {
		header += " " + m.spinner.View()
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(th.MetaLabel.Render(view.Toolbar(m.screen)))
	b.WriteString("\n\n")
	if m.warning != "" && m.screen != view.ScreenLogin {
		b.WriteString(th.Banner.Render("! " + m.warning + "  (x to dismiss)"))
		b.WriteString("\n\n")
	}

	switch m.screen {
	case view.ScreenLogin:
		b.WriteString(m.loginView())
	case view.ScreenDetail:
		b.WriteString(m.detailView())
	case view.ScreenUsers:
		b.WriteString(m.usersView())
	case view.ScreenPost, view.ScreenFastR:
		b.WriteString(m.composeView())
	default:
		b.WriteString(m.feedView())
	}

	b.WriteString("\n")
	b.WriteString(view.CompactMessage(m.loading, m.warning != "", m.status, m.warning, th))
	b.WriteString("\n")
	if m.screen != view.ScreenLogin {
		b.WriteString(view.CompactFooter(m.screen, m.filter, len(m.visible), m.feed.Len(), th))
		b.WriteString("\n")
	}
	return b.String()
}

// expireSession signs out after the backend rejected the stored token and
// leaves the reason on the login screen.
func (m Model) expireSession(err error) (tea.Model, tea.Cmd) {
	m.loading = false
	m.loginErr = api.UserMessage(err, app.MsgLoginFailed)
	if m.service == nil {
		return m, nil
	}
	m.loading = true
	return m, tuiactions.SignOutCmd(m.service)
}

func (m Model) setStatus(status string, after time.Duration) (tea.Model, tea.Cmd) {
	cmd := m.flash(status, after)
	return m, cmd
}

// flash shows status until after has passed or a newer status replaces it.
func (m *Model) flash(status string, after time.Duration) tea.Cmd {
	m.status = status
	m.statusID++
	return clearStatusCmd(m.statusID, after)
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width - 1
	}
	return 100
}

// bodyHeight is the number of lines left for the screen body once the
// header, toolbar, banner and footer are drawn.
func (m Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	used := 6
	if m.warning != "" {
		used += 2
	}
	if h := m.height - used; h > 3 {
		return h
	}
	return 3
}
