package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/reachon-admin/internal/content"
	tuitheme "github.com/glabrego/reachon-admin/internal/tui/theme"
)

type Screen string

const (
	ScreenLogin  Screen = "login"
	ScreenFeed   Screen = "feed"
	ScreenDetail Screen = "detail"
	ScreenUsers  Screen = "users"
	ScreenPost   Screen = "new post"
	ScreenFastR  Screen = "new FastR"
)

func Toolbar(screen Screen) string {
	switch screen {
	case ScreenLogin:
		return "tab: next field | enter: sign in | ctrl+c: quit"
	case ScreenDetail:
		return "j/k scroll | d delete | b block | esc back"
	case ScreenUsers:
		return "j/k move | / search | enter apply | y copy email | r refresh | esc back"
	case ScreenPost:
		return "tab: next field | enter: add tag/file | ctrl+x: remove | left/right: area | ctrl+a: ads | ctrl+l: layout | ctrl+p: preview | ctrl+s: submit | esc: cancel"
	case ScreenFastR:
		return "tab: next field | enter: attach | ctrl+r: record/stop | ctrl+p: play | ctrl+d: discard audio | ctrl+x: remove | ctrl+s: submit | esc: cancel"
	}
	return "j/k move | enter open | f filter | d delete | b block | n post | N FastR | u users | t time | r refresh | x dismiss | L sign out | q quit"
}

func CompactFooter(screen Screen, filter content.Status, shown, total int, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("screen") + " " + th.MetaValue.Render(string(screen)),
		th.MetaLabel.Render("filter") + " " + th.MetaValue.Render(string(filter)),
		th.MetaValue.Render(fmt.Sprintf("%d of %d shown", shown, total)),
	}
	return strings.Join(parts, " • ")
}

func CompactMessage(loading bool, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
