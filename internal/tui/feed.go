package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/reachon-admin/internal/content"
	"github.com/glabrego/reachon-admin/internal/submission"
	tuiactions "github.com/glabrego/reachon-admin/internal/tui/actions"
	tuistate "github.com/glabrego/reachon-admin/internal/tui/state"
	"github.com/glabrego/reachon-admin/internal/tui/view"
)

func (m Model) updateFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.confirmDelete != "" {
		id := m.confirmDelete
		m.confirmDelete = ""
		if key == "y" {
			return m.moderate(tuiactions.ModerationDelete, id)
		}
		return m.setStatus("Delete cancelled", 2*time.Second)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor = tuistate.ClampCursor(m.cursor-1, len(m.visible))
	case "down", "j":
		m.cursor = tuistate.ClampCursor(m.cursor+1, len(m.visible))
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = tuistate.ClampCursor(len(m.visible)-1, len(m.visible))
	case "pgup", "ctrl+b":
		m.cursor = tuistate.ClampCursor(m.cursor-m.pageStep(), len(m.visible))
	case "pgdown", "ctrl+f":
		m.cursor = tuistate.ClampCursor(m.cursor+m.pageStep(), len(m.visible))
	case "f":
		m.filter = m.filter.Next()
		m.applyFilter()
		return m.setStatus("Showing "+string(m.filter), 2*time.Second)
	case "t":
		m.relativeTime = !m.relativeTime
	case "x", "esc":
		m.warning = ""
	case "enter":
		if _, ok := m.currentItem(); ok {
			m.screen = view.ScreenDetail
			m.detailTop = 0
		}
	case "d":
		return m.askDelete()
	case "b":
		if item, ok := m.currentItem(); ok {
			return m.moderate(tuiactions.ModerationBlock, item.ID)
		}
	case "r":
		if m.service == nil || m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, tuiactions.LoadFeedCmd(m.service))
	case "u":
		return m.openUsers()
	case "n":
		return m.openCompose(submission.KindPost)
	case "N":
		return m.openCompose(submission.KindFastR)
	case "L":
		if m.service == nil {
			return m, nil
		}
		m.loginErr = ""
		m.loading = true
		return m, tuiactions.SignOutCmd(m.service)
	}
	return m, nil
}

func (m Model) updateDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.confirmDelete != "" {
		id := m.confirmDelete
		m.confirmDelete = ""
		if key == "y" {
			return m.moderate(tuiactions.ModerationDelete, id)
		}
		return m.setStatus("Delete cancelled", 2*time.Second)
	}

	item, ok := m.currentItem()
	if !ok {
		m.screen = view.ScreenFeed
		return m, nil
	}
	switch key {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.screen = view.ScreenFeed
		m.detailTop = 0
	case "up", "k":
		if m.detailTop > 0 {
			m.detailTop--
		}
	case "down", "j":
		lines := view.DetailLines(item, m.contentWidth())
		if m.detailTop < view.DetailMaxTop(len(lines), m.detailHeight()) {
			m.detailTop++
		}
	case "x":
		m.warning = ""
	case "d":
		return m.askDelete()
	case "b":
		return m.moderate(tuiactions.ModerationBlock, item.ID)
	}
	return m, nil
}

func (m Model) askDelete() (tea.Model, tea.Cmd) {
	item, ok := m.currentItem()
	if !ok {
		return m, nil
	}
	m.confirmDelete = item.ID
	m.status = fmt.Sprintf("Delete %s %q? Press y to confirm", sourceNoun(item), item.Title)
	m.statusID++
	return m, nil
}

// moderate dispatches a delete or block for the item with id. Items with an
// action already in flight are left alone.
func (m Model) moderate(action tuiactions.Moderation, id string) (tea.Model, tea.Cmd) {
	item, ok := m.feed.Find(id)
	if !ok || m.service == nil {
		return m, nil
	}
	if m.pending[id] {
		return m.setStatus("Still working on that item", 2*time.Second)
	}
	m.pending[id] = true
	m.status = ""
	if action == tuiactions.ModerationDelete {
		return m, tuiactions.DeleteCmd(m.service, item)
	}
	return m, tuiactions.BlockCmd(m.service, item)
}

func (m Model) applyModeration(msg tuiactions.ModerationSuccessMsg) (tea.Model, tea.Cmd) {
	delete(m.pending, msg.Item.ID)
	noun := sourceNoun(msg.Item)
	var status string
	switch msg.Action {
	case tuiactions.ModerationDelete:
		m.feed.Remove(msg.Item.ID)
		status = strings.ToUpper(noun[:1]) + noun[1:] + " deleted"
		if m.screen == view.ScreenDetail && m.selectedID() == msg.Item.ID {
			m.screen = view.ScreenFeed
			m.detailTop = 0
		}
	default:
		m.feed.MarkBlocked(msg.Item.ID)
		status = strings.ToUpper(noun[:1]) + noun[1:] + " blocked"
	}
	m.applyFilter()
	return m.setStatus(status, 3*time.Second)
}

// applyFilter rebuilds the visible rows from the snapshot, keeping the
// cursor on the same item when it is still listed.
func (m *Model) applyFilter() {
	anchor := m.selectedID()
	m.visible = m.feed.Filter(m.filter)
	m.cursor = tuistate.CursorAfterChange(m.visible, anchor, m.cursor)
}

func (m Model) currentItem() (content.FeedItem, bool) {
	if len(m.visible) == 0 {
		return content.FeedItem{}, false
	}
	return m.visible[tuistate.ClampCursor(m.cursor, len(m.visible))], true
}

func (m Model) selectedID() string {
	if item, ok := m.currentItem(); ok {
		return item.ID
	}
	return ""
}

func (m Model) pageStep() int {
	return tuistate.PageStep(m.height, view.ItemRowLines, m.warning != "")
}

func (m Model) detailHeight() int {
	if h := m.bodyHeight(); h > 0 {
		return h
	}
	return 16
}

func (m Model) feedView() string {
	var b strings.Builder
	if m.loading && m.feed.Len() == 0 {
		b.WriteString("Loading posts and FastRs...\n")
		return b.String()
	}
	if len(m.visible) == 0 {
		if m.feed.Len() == 0 {
			b.WriteString("No posts or FastRs available.\n")
		} else {
			b.WriteString("Nothing matches the " + string(m.filter) + " filter.\n")
		}
		return b.String()
	}

	rows := len(m.visible)
	if h := m.bodyHeight(); h > 0 {
		rows = max(1, h/view.ItemRowLines)
	}
	start, end := tuistate.CenteredWindow(len(m.visible), m.cursor, rows)
	now := m.nowFn()
	for i := start; i < end; i++ {
		item := m.visible[i]
		lines := view.RenderItemLines(view.ItemLineParams{
			Item:         item,
			Now:          now,
			RelativeTime: m.relativeTime,
			Active:       i == m.cursor,
			Pending:      m.pending[item.ID],
			Width:        m.contentWidth(),
		}, m.theme)
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) detailView() string {
	item, ok := m.currentItem()
	if !ok {
		return "No item selected.\n"
	}
	lines := view.DetailLines(item, m.contentWidth())
	rendered := view.RenderDetailLines(lines, m.detailTop, m.detailHeight(), m.theme)
	return strings.Join(rendered, "\n") + "\n"
}

func sourceNoun(item content.FeedItem) string {
	if item.Source == content.SourceFastR {
		return "FastR"
	}
	return "post"
}
