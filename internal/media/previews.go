package media

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sync"
)

// PreviewStore hands out local playback handles for blobs. Every handle must
// be revoked once superseded or discarded.
type PreviewStore interface {
	Create(b Blob) (string, error)
	Revoke(handle string)
}

// TempPreviews materializes blobs as temp files so an external player can
// open them.
type TempPreviews struct {
	dir string

	mu    sync.Mutex
	files map[string]struct{}
}

// NewTempPreviews stores previews under dir, or the system temp dir when
// dir is empty.
func NewTempPreviews(dir string) *TempPreviews {
	return &TempPreviews{dir: dir, files: make(map[string]struct{})}
}

func (p *TempPreviews) Create(b Blob) (string, error) {
	f, err := os.CreateTemp(p.dir, "reachon-preview-*"+extensionFor(b))
	if err != nil {
		return "", fmt.Errorf("create preview file: %w", err)
	}
	if _, err := f.Write(b.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write preview file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close preview file: %w", err)
	}

	p.mu.Lock()
	p.files[f.Name()] = struct{}{}
	p.mu.Unlock()
	return f.Name(), nil
}

func (p *TempPreviews) Revoke(handle string) {
	if handle == "" {
		return
	}
	p.mu.Lock()
	_, ok := p.files[handle]
	delete(p.files, handle)
	p.mu.Unlock()
	if ok {
		_ = os.Remove(handle)
	}
}

// Outstanding reports handles created but not yet revoked.
func (p *TempPreviews) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.files)
}

// Close revokes everything still outstanding.
func (p *TempPreviews) Close() {
	p.mu.Lock()
	handles := make([]string, 0, len(p.files))
	for h := range p.files {
		handles = append(handles, h)
	}
	p.mu.Unlock()
	for _, h := range handles {
		p.Revoke(h)
	}
}

func extensionFor(b Blob) string {
	if ext := filepath.Ext(b.Name); ext != "" {
		return ext
	}
	if exts, _ := mime.ExtensionsByType(b.ContentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}
