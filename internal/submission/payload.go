package submission

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/glabrego/reachon-admin/internal/media"
)

// Payload is a ready-to-send multipart body.
type Payload struct {
	Body        *bytes.Buffer
	ContentType string
}

// Build validates d and assembles the multipart body for kind. Absent
// attachments are omitted.
func Build(kind Kind, d *Draft) (*Payload, error) {
	if err := Validate(kind, d); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	var err error
	if kind == KindFastR {
		err = writeFastR(w, d)
	} else {
		err = writePost(w, d)
	}
	if err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}
	return &Payload{Body: &buf, ContentType: w.FormDataContentType()}, nil
}

func writePost(w *multipart.Writer, d *Draft) error {
	tags, err := json.Marshal(d.Tags.Normalized())
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	layout := d.Layout
	if layout == "" {
		layout = LayoutDefault
	}
	fields := [][2]string{
		{"title", strings.TrimSpace(d.Title)},
		{"content", d.Content},
		{"tags", string(tags)},
		{"layout", string(layout)},
		{"postArea", strings.TrimSpace(d.PostArea)},
		{"adsEnabled", strconv.FormatBool(d.AdsEnabled)},
	}
	if err := writeFields(w, fields); err != nil {
		return err
	}
	if err := writeFile(w, "thumbnail", d.Thumbnail, "thumbnail"); err != nil {
		return err
	}
	if err := writeFile(w, "layoutImage", d.LayoutImage, "layout"); err != nil {
		return err
	}
	for i := range d.Documents {
		if err := writeFile(w, "pdfUrl", &d.Documents[i], "document"); err != nil {
			return err
		}
	}
	return nil
}

func writeFastR(w *multipart.Writer, d *Draft) error {
	tags, err := json.Marshal(d.Tags.Normalized())
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	fields := [][2]string{
		{"title", strings.TrimSpace(d.Title)},
		{"tags", string(tags)},
		{"type", "fastr"},
	}
	if err := writeFields(w, fields); err != nil {
		return err
	}
	if err := writeFile(w, "content", d.Image, "image.jpg"); err != nil {
		return err
	}
	return writeFile(w, "audio", d.Audio, "audio.mp3")
}

func writeFields(w *multipart.Writer, fields [][2]string) error {
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("write field %s: %w", f[0], err)
		}
	}
	return nil
}

func writeFile(w *multipart.Writer, field string, b *media.Blob, fallbackName string) error {
	if b == nil || b.Empty() {
		return nil
	}
	name := b.Name
	if name == "" {
		name = fallbackName
	}
	contentType := b.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create %s part: %w", field, err)
	}
	if _, err := part.Write(b.Data); err != nil {
		return fmt.Errorf("write %s part: %w", field, err)
	}
	return nil
}
