package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/reachon-admin/internal/content"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Section    lipgloss.Style
	Count      lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	Snippet    lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style
	Banner     lipgloss.Style
	FieldFocus lipgloss.Style

	TitlePublished lipgloss.Style
	TitleBlocked   lipgloss.Style
	BadgePublished lipgloss.Style
	BadgeBlocked   lipgloss.Style
	BadgePost      lipgloss.Style
	BadgeFastR     lipgloss.Style
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpSky := lipgloss.Color("#89dceb")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay0 := lipgloss.Color("#6c7086")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:   lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		Count:      lipgloss.NewStyle().Foreground(cpYellow).Bold(true),
		ActiveLine: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		Snippet:    lipgloss.NewStyle().Foreground(cpOverlay0),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),
		Banner:     lipgloss.NewStyle().Bold(true).Foreground(cpRed),
		FieldFocus: lipgloss.NewStyle().Bold(true).Foreground(cpLavender),

		TitlePublished: lipgloss.NewStyle().Bold(true).Foreground(cpText),
		TitleBlocked:   lipgloss.NewStyle().Strikethrough(true).Foreground(cpSubtext0),
		BadgePublished: lipgloss.NewStyle().Foreground(cpGreen),
		BadgeBlocked:   lipgloss.NewStyle().Foreground(cpRed),
		BadgePost:      lipgloss.NewStyle().Foreground(cpSky),
		BadgeFastR:     lipgloss.NewStyle().Foreground(cpPeach),
	}
}

func (t Theme) StyleItemTitle(item content.FeedItem, title string) string {
	if title == "" {
		return title
	}
	if item.IsActive {
		return t.TitlePublished.Render(title)
	}
	return t.TitleBlocked.Render(title)
}

func (t Theme) StatusBadge(item content.FeedItem) string {
	if item.IsActive {
		return t.BadgePublished.Render(item.StatusLabel())
	}
	return t.BadgeBlocked.Render(item.StatusLabel())
}

func (t Theme) SourceBadge(item content.FeedItem) string {
	if item.Source == content.SourceFastR {
		return t.BadgeFastR.Render(string(item.Source))
	}
	return t.BadgePost.Render(string(item.Source))
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
