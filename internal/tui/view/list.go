package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/glabrego/reachon-admin/internal/api"
	"github.com/glabrego/reachon-admin/internal/content"
	"github.com/glabrego/reachon-admin/internal/render/preview"
	tuitheme "github.com/glabrego/reachon-admin/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// ItemRowLines is how many terminal lines one feed item takes.
const ItemRowLines = 2

type ItemLineParams struct {
	Item         content.FeedItem
	Now          time.Time
	RelativeTime bool
	Active       bool
	Pending      bool
	Width        int
}

// RenderItemLines returns the title line and the preview snippet line of a
// feed item.
func RenderItemLines(p ItemLineParams, th tuitheme.Theme) []string {
	date := p.Item.CreatedAt.UTC().Format(time.DateOnly)
	if p.RelativeTime {
		date = RelativeTimeLabel(p.Now, p.Item.CreatedAt)
	}

	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	pendingMarker := " "
	if p.Pending {
		pendingMarker = "~"
	}
	prefix := fmt.Sprintf("  %s%s ", cursorMarker, pendingMarker)
	right := th.SourceBadge(p.Item) + " " + th.StatusBadge(p.Item) + " [" + date + "]"

	available := p.Width - visibleLen(prefix) - 1 - visibleLen(right)
	if available < 1 {
		available = 1
	}
	label := truncateRunes(strings.TrimSpace(p.Item.Title), available)
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	title := th.RenderActiveLine(p.Active, prefix+th.StyleItemTitle(p.Item, label)+strings.Repeat(" ", gap)+right)

	indent := strings.Repeat(" ", visibleLen(prefix))
	snippet := truncateRunes(Snippet(p.Item), max(1, p.Width-len(indent)))
	return []string{title, indent + th.Snippet.Render(snippet)}
}

// Snippet is the single-line preview of an item's markup.
func Snippet(item content.FeedItem) string {
	if item.ContentType == content.ContentAudio && item.Content == "" {
		return "Audio post"
	}
	truncated := preview.Truncate(item.Content, preview.DefaultLimit)
	return strings.Join(strings.Fields(preview.PlainText(truncated)), " ")
}

func RenderUserLine(u api.User, active bool, width int, th tuitheme.Theme) string {
	cursorMarker := " "
	if active {
		cursorMarker = ">"
	}
	name := strings.TrimSpace(u.Username)
	if name == "" {
		name = "(no username)"
	}
	role := u.Role
	if role == "" {
		role = "user"
	}
	right := th.MetaValue.Render(role)
	left := fmt.Sprintf("  %s %s  %s", cursorMarker, name, th.MetaLabel.Render(u.Email))
	left = truncateRunes(left, max(1, width-visibleLen(right)-1))
	gap := width - visibleLen(left) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(active, left+strings.Repeat(" ", gap)+right)
}

func RelativeTimeLabel(now, then time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	if then.IsZero() {
		return "unknown"
	}
	if then.After(now) {
		return "just now"
	}
	d := now.Sub(then)
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		n := int(d / time.Minute)
		if n == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", n)
	}
	if d < 24*time.Hour {
		n := int(d / time.Hour)
		if n == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", n)
	}
	n := int(d / (24 * time.Hour))
	if n == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", n)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if visibleLen(s) <= maxLen {
		return s
	}
	s = stripANSIText(s)
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
