package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/reachon-admin/internal/app"
	tuiactions "github.com/glabrego/reachon-admin/internal/tui/actions"
	"github.com/glabrego/reachon-admin/internal/tui/view"
)

func (m Model) updateLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading || m.restoring {
		return m, nil
	}
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		return m.toggleLoginFocus()
	case "enter":
		if m.loginFocus == 0 {
			return m.toggleLoginFocus()
		}
		return m.submitLogin()
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) toggleLoginFocus() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.loginFocus = 1
		m.email.Blur()
		cmd = m.password.Focus()
	} else {
		m.loginFocus = 0
		m.password.Blur()
		cmd = m.email.Focus()
	}
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	if email == "" || password == "" {
		m.loginErr = app.ErrMissingCredentials.UserMessage()
		return m, nil
	}
	if m.service == nil {
		return m, nil
	}
	m.loginErr = ""
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, tuiactions.LoginCmd(m.service, email, password))
}

// enterFeed switches to the feed screen and starts the first load.
func (m Model) enterFeed() (tea.Model, tea.Cmd) {
	m.screen = view.ScreenFeed
	m.email.Blur()
	m.password.Blur()
	if m.service == nil {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, tuiactions.LoadFeedCmd(m.service))
}

func (m Model) loginView() string {
	var b strings.Builder
	th := m.theme
	b.WriteString(th.Section.Render("Sign in"))
	b.WriteString("\n\n")
	if m.restoring {
		b.WriteString("Restoring saved session...\n")
		return b.String()
	}
	b.WriteString(loginField(m.email, m.loginFocus == 0, m))
	b.WriteString("\n")
	b.WriteString(loginField(m.password, m.loginFocus == 1, m))
	b.WriteString("\n")
	if m.loading {
		b.WriteString("\nSigning in...\n")
	}
	if m.loginErr != "" {
		b.WriteString("\n")
		b.WriteString(th.StateWarn.Render(m.loginErr))
		b.WriteString("\n")
	}
	return b.String()
}

func loginField(input textinput.Model, focused bool, m Model) string {
	marker := "  "
	if focused {
		marker = m.theme.FieldFocus.Render("> ")
	}
	return marker + input.View()
}
