package submission

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"reflect"
	"testing"

	"github.com/glabrego/reachon-admin/internal/media"
)

type part struct {
	name     string
	filename string
	value    string
}

func readParts(t *testing.T, p *Payload) []part {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(p.ContentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("unexpected content type %q: %v", p.ContentType, err)
	}
	r := multipart.NewReader(p.Body, params["boundary"])
	var out []part
	for {
		mp, err := r.NextPart()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		raw, err := io.ReadAll(mp)
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		out = append(out, part{name: mp.FormName(), filename: mp.FileName(), value: string(raw)})
	}
}

func TestTags_AddDedupesAndTrims(t *testing.T) {
	var tags Tags
	for _, in := range []string{"a", " a ", "b", "", "B"} {
		tags.Add(in)
	}
	if want := (Tags{"a", "b", "B"}); !reflect.DeepEqual(tags, want) {
		t.Fatalf("unexpected tags: %#v", tags)
	}
	tags.Remove("b")
	if want := (Tags{"a", "B"}); !reflect.DeepEqual(tags, want) {
		t.Fatalf("unexpected tags after remove: %#v", tags)
	}
}

func TestTags_Normalized(t *testing.T) {
	tags := Tags{"a", "a", " b", "b "}
	if got := tags.Normalized(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected normalized tags: %#v", got)
	}
	if got := Tags(nil).Normalized(); got == nil {
		t.Fatal("expected non-nil empty slice")
	}
}

func TestValidate_PostMissingPostArea(t *testing.T) {
	d := NewDraft()
	d.Title = "Title"
	d.Content = "<p>Body</p>"

	_, err := Build(KindPost, d)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !reflect.DeepEqual(vErr.Missing, []string{"postArea"}) {
		t.Fatalf("unexpected missing fields: %v", vErr.Missing)
	}
	if vErr.UserMessage() != "Please fill in title, content, and select a post area" {
		t.Fatalf("unexpected message: %q", vErr.UserMessage())
	}

	d.PostArea = "History"
	if _, err := Build(KindPost, d); err != nil {
		t.Fatalf("expected complete draft to build, got %v", err)
	}
}

func TestValidate_WhitespaceOnly(t *testing.T) {
	d := NewDraft()
	d.Title = "   "
	d.Content = "\n"
	d.PostArea = " "
	err := Validate(KindPost, d)
	var vErr *ValidationError
	if !errors.As(err, &vErr) || len(vErr.Missing) != 3 {
		t.Fatalf("expected three missing fields, got %v", err)
	}
	if err := Validate(KindFastR, &Draft{Title: "clip"}); err != nil {
		t.Fatalf("FastR with title must validate, got %v", err)
	}
}

func TestBuild_PostParts(t *testing.T) {
	d := NewDraft()
	d.Title = "  Launch  "
	d.Content = "<p>Body</p>"
	d.Tags = Tags{"go", "go", "tui"}
	d.PostArea = " Technology "
	d.Layout = LayoutUpload
	d.Thumbnail = &media.Blob{Name: "thumb.png", ContentType: "image/png", Data: []byte("png")}
	d.Documents = []media.Blob{
		{Name: "a.pdf", ContentType: "application/pdf", Data: []byte("pdf1")},
		{Name: "b.docx", Data: []byte("doc2")},
	}

	p, err := Build(KindPost, d)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	got := readParts(t, p)
	want := []part{
		{name: "title", value: "Launch"},
		{name: "content", value: "<p>Body</p>"},
		{name: "tags", value: `["go","tui"]`},
		{name: "layout", value: "upload"},
		{name: "postArea", value: "Technology"},
		{name: "adsEnabled", value: "false"},
		{name: "thumbnail", filename: "thumb.png", value: "png"},
		{name: "pdfUrl", filename: "a.pdf", value: "pdf1"},
		{name: "pdfUrl", filename: "b.docx", value: "doc2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected parts:\n got %#v\nwant %#v", got, want)
	}
}

func TestBuild_FastRParts(t *testing.T) {
	d := NewDraft()
	d.Title = "Morning"
	d.Image = &media.Blob{ContentType: "image/jpeg", Data: []byte("jpg")}
	d.Audio = &media.Blob{Name: "voice.m4a", ContentType: "audio/mp4", Data: []byte("m4a")}

	p, err := Build(KindFastR, d)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	got := readParts(t, p)
	want := []part{
		{name: "title", value: "Morning"},
		{name: "tags", value: "[]"},
		{name: "type", value: "fastr"},
		{name: "content", filename: "image.jpg", value: "jpg"},
		{name: "audio", filename: "voice.m4a", value: "m4a"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected parts:\n got %#v\nwant %#v", got, want)
	}
}

func TestBuild_FastROmitsAbsentAttachments(t *testing.T) {
	p, err := Build(KindFastR, &Draft{Title: "Text only", Audio: &media.Blob{}})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	for _, part := range readParts(t, p) {
		if part.name == "content" || part.name == "audio" {
			t.Fatalf("unexpected attachment part %q", part.name)
		}
	}
}

func TestGate(t *testing.T) {
	g := NewGate()
	release, err := g.Acquire("d1")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if _, err := g.Acquire("d1"); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}
	if _, err := g.Acquire("d2"); err != nil {
		t.Fatalf("other drafts must not be blocked: %v", err)
	}
	release()
	if _, err := g.Acquire("d1"); err != nil {
		t.Fatalf("expected d1 released, got %v", err)
	}
}

func TestValidPostAreaAndDocument(t *testing.T) {
	if !ValidPostArea("TV Shows") || ValidPostArea("tv shows") {
		t.Fatal("post area match must be exact")
	}
	if !ValidDocument("Report.PDF") || ValidDocument("notes.txt") {
		t.Fatal("unexpected document extension check")
	}

	d := NewDraft()
	d.Title, d.Content, d.PostArea = "T", "C", "Cooking"
	if err := Validate(KindPost, d); err == nil {
		t.Fatal("expected an unknown post area to be rejected")
	}
}
