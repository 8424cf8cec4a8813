package platform

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
)

// OpenWithSystem hands a URL or local file to the desktop's default handler.
// Audio previews are played this way.
func OpenWithSystem(target string) error {
	name, args := openCommand(runtime.GOOS, target)
	return exec.Command(name, args...).Run()
}

func openCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

func CopyToClipboard(text string) error {
	commands := [][]string{
		{"pbcopy"},
		{"xclip", "-selection", "clipboard"},
		{"wl-copy"},
	}

	for _, c := range commands {
		if _, err := exec.LookPath(c[0]); err != nil {
			continue
		}
		cmd := exec.Command(c[0], c[1:]...)
		cmd.Stdin = bytes.NewBufferString(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no clipboard command available")
}
