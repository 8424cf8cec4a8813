package platform

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/glabrego/reachon-admin/internal/media"
)

// ReadAttachment loads a local file as a blob. The size limit is checked
// against the file's stat before anything is read.
func ReadAttachment(path string, limit media.Limit) (media.Blob, error) {
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		return media.Blob{}, fmt.Errorf("no file path given")
	}
	info, err := os.Stat(path)
	if err != nil {
		return media.Blob{}, fmt.Errorf("stat attachment: %w", err)
	}
	if info.IsDir() {
		return media.Blob{}, fmt.Errorf("%s is a directory", path)
	}
	if err := limit.Check(info.Size()); err != nil {
		return media.Blob{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return media.Blob{}, fmt.Errorf("read attachment: %w", err)
	}
	return media.Blob{
		Name:        filepath.Base(path),
		ContentType: contentType(path, data),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func contentType(path string, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return byExt
	}
	return http.DetectContentType(data)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
