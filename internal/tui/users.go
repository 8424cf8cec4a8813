package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	tuiactions "github.com/glabrego/reachon-admin/internal/tui/actions"
	tuistate "github.com/glabrego/reachon-admin/internal/tui/state"
	"github.com/glabrego/reachon-admin/internal/tui/view"
)

func (m Model) openUsers() (tea.Model, tea.Cmd) {
	m.screen = view.ScreenUsers
	m.userCursor = 0
	m.userQuery.Reset()
	m.searching = false
	if m.service == nil {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, tuiactions.LoadUsersCmd(m.service, ""))
}

func (m Model) updateUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.userQuery.Blur()
			if m.service == nil {
				return m, nil
			}
			m.loading = true
			return m, tuiactions.LoadUsersCmd(m.service, m.userQuery.Value())
		case "esc":
			m.searching = false
			m.userQuery.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.userQuery, cmd = m.userQuery.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.screen = view.ScreenFeed
		return m, nil
	case "up", "k":
		m.userCursor = tuistate.ClampCursor(m.userCursor-1, len(m.users))
	case "down", "j":
		m.userCursor = tuistate.ClampCursor(m.userCursor+1, len(m.users))
	case "/":
		m.searching = true
		cmd := m.userQuery.Focus()
		return m, cmd
	case "x":
		m.warning = ""
	case "r":
		if m.service == nil || m.loading {
			return m, nil
		}
		m.loading = true
		return m, tuiactions.LoadUsersCmd(m.service, m.userQuery.Value())
	case "y":
		if len(m.users) == 0 {
			return m, nil
		}
		u := m.users[tuistate.ClampCursor(m.userCursor, len(m.users))]
		return m, tuiactions.CopyCmd(u.Email, "Email", m.copyFn)
	}
	return m, nil
}

func (m Model) usersView() string {
	var b strings.Builder
	th := m.theme
	b.WriteString(th.Section.Render("Users") + " " + th.Count.Render(fmt.Sprintf("(%d total)", len(m.users))))
	b.WriteString("\n")
	if m.searching || m.userQuery.Value() != "" {
		b.WriteString(m.userQuery.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.loading {
		b.WriteString("Loading users...\n")
		return b.String()
	}
	if len(m.users) == 0 {
		b.WriteString("No users found.\n")
		return b.String()
	}
	rows := len(m.users)
	if h := m.bodyHeight(); h > 0 {
		rows = max(1, h-3)
	}
	start, end := tuistate.CenteredWindow(len(m.users), m.userCursor, rows)
	for i := start; i < end; i++ {
		b.WriteString(view.RenderUserLine(m.users[i], i == m.userCursor, m.contentWidth(), th))
		b.WriteString("\n")
	}
	if u := m.users[tuistate.ClampCursor(m.userCursor, len(m.users))]; u.LastLogin != "" || u.Signup != "" {
		b.WriteString("\n")
		b.WriteString(th.MetaLabel.Render("signed up ") + th.MetaValue.Render(orDash(u.Signup)))
		b.WriteString(th.MetaLabel.Render("  last login ") + th.MetaValue.Render(orDash(u.LastLogin)))
		b.WriteString("\n")
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
