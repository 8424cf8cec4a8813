package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/glabrego/reachon-admin/internal/api"
	"github.com/glabrego/reachon-admin/internal/app"
	"github.com/glabrego/reachon-admin/internal/media"
	"github.com/glabrego/reachon-admin/internal/submission"
	tuiactions "github.com/glabrego/reachon-admin/internal/tui/actions"
	"github.com/glabrego/reachon-admin/internal/tui/view"
)

type composeField int

const (
	fieldTitle composeField = iota
	fieldContent
	fieldTags
	fieldArea
	fieldThumbnail
	fieldLayoutImage
	fieldDocument
	fieldImage
	fieldAudio
)

var (
	postFields  = []composeField{fieldTitle, fieldContent, fieldTags, fieldArea, fieldThumbnail, fieldLayoutImage, fieldDocument}
	fastRFields = []composeField{fieldTitle, fieldTags, fieldImage, fieldAudio}
)

var fieldLabels = map[composeField]string{
	fieldTitle:       "Title",
	fieldContent:     "Content",
	fieldTags:        "Tags",
	fieldArea:        "Post area",
	fieldThumbnail:   "Thumbnail",
	fieldLayoutImage: "Layout image",
	fieldDocument:    "Documents",
	fieldImage:       "Image",
	fieldAudio:       "Audio",
}

type recordTickMsg struct {
	session int
}

// composeForm is the editing state behind the post and FastR screens. The
// draft is only synced from the inputs on submit.
type composeForm struct {
	kind   submission.Kind
	draft  *submission.Draft
	fields []composeField
	focus  int

	inputs  map[composeField]*textinput.Model
	content textarea.Model
	areaIdx int

	thumbnail   *media.ImageCapture
	layoutImage *media.ImageCapture
	image       *media.ImageCapture
	audio       *media.AudioCapture

	recordSession int
	submitting    bool
	err           string
}

func newComposeForm(kind submission.Kind, previews media.PreviewStore, recorder media.Device, width int) *composeForm {
	f := &composeForm{
		kind:    kind,
		draft:   submission.NewDraft(),
		inputs:  make(map[composeField]*textinput.Model),
		areaIdx: -1,
	}
	if kind == submission.KindFastR {
		f.fields = fastRFields
		f.image = media.NewImageCapture(previews, media.ImageLimit)
		f.audio = media.NewAudioCapture(recorder, previews)
	} else {
		f.fields = postFields
		f.thumbnail = media.NewImageCapture(previews, media.NoLimit)
		f.layoutImage = media.NewImageCapture(previews, media.NoLimit)
		f.content = textarea.New()
		f.content.Placeholder = "Write the post body (HTML allowed)"
		f.content.ShowLineNumbers = false
		f.content.SetWidth(min(max(width-4, 20), 80))
		f.content.SetHeight(5)
	}
	for _, field := range f.fields {
		if field == fieldContent || field == fieldArea {
			continue
		}
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholderFor(field)
		f.inputs[field] = &in
	}
	f.inputs[fieldTitle].CharLimit = 200
	return f
}

func placeholderFor(field composeField) string {
	switch field {
	case fieldTitle:
		return "title"
	case fieldTags:
		return "type a tag, enter to add"
	case fieldDocument:
		return "path to pdf/png/jpg/jpeg/doc/docx, enter to attach"
	case fieldAudio:
		return "path to audio file, enter to attach (or ctrl+r to record)"
	}
	return "path to image, enter to attach"
}

func (f *composeForm) current() composeField {
	return f.fields[f.focus]
}

func (f *composeForm) focusField(idx int) tea.Cmd {
	if cur, ok := f.inputs[f.current()]; ok {
		cur.Blur()
	}
	if f.current() == fieldContent {
		f.content.Blur()
	}
	f.focus = (idx + len(f.fields)) % len(f.fields)
	if f.current() == fieldContent {
		return f.content.Focus()
	}
	if next, ok := f.inputs[f.current()]; ok {
		return next.Focus()
	}
	return nil
}

func (f *composeForm) capture(field composeField) *media.ImageCapture {
	switch field {
	case fieldThumbnail:
		return f.thumbnail
	case fieldLayoutImage:
		return f.layoutImage
	case fieldImage:
		return f.image
	}
	return nil
}

// syncDraft copies the visible form state into the draft.
func (f *composeForm) syncDraft() {
	d := f.draft
	d.Title = f.inputs[fieldTitle].Value()
	d.Thumbnail, d.LayoutImage, d.Image, d.Audio = nil, nil, nil, nil
	if f.kind == submission.KindFastR {
		d.Image = blobPtr(f.image.Current())
		d.Audio = blobPtr(f.audio.Current())
		return
	}
	d.Content = f.content.Value()
	d.PostArea = ""
	if f.areaIdx >= 0 {
		d.PostArea = submission.PostAreas[f.areaIdx]
	}
	d.Thumbnail = blobPtr(f.thumbnail.Current())
	d.LayoutImage = blobPtr(f.layoutImage.Current())
}

func (f *composeForm) close() {
	if f.audio != nil {
		_ = f.audio.Close()
	}
	for _, c := range []*media.ImageCapture{f.thumbnail, f.layoutImage, f.image} {
		if c != nil {
			c.Close()
		}
	}
}

func blobPtr(b media.Blob, ok bool) *media.Blob {
	if !ok {
		return nil
	}
	return &b
}

func (m Model) openCompose(kind submission.Kind) (tea.Model, tea.Cmd) {
	m.closeCompose()
	m.compose = newComposeForm(kind, m.previews, m.recorder, m.contentWidth())
	m.screen = view.ScreenPost
	if kind == submission.KindFastR {
		m.screen = view.ScreenFastR
	}
	cmd := m.compose.focusField(0)
	return m, cmd
}

// Close releases the microphone and previews held by an open form. The
// program can exit without a final Update, so callers run it on the model
// returned from Run.
func (m Model) Close() {
	if m.compose != nil {
		m.compose.close()
	}
}

func (m *Model) closeCompose() {
	if m.compose == nil {
		return
	}
	m.compose.close()
	m.compose = nil
}

func (m Model) updateComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.compose
	if f == nil {
		m.screen = view.ScreenFeed
		return m, nil
	}
	key := msg.String()
	if key == "esc" {
		m.closeCompose()
		m.screen = view.ScreenFeed
		return m.setStatus("Draft discarded", 2*time.Second)
	}
	if f.submitting {
		return m, nil
	}

	switch key {
	case "tab", "down":
		if key == "down" && f.current() == fieldContent {
			break
		}
		return m, f.focusField(f.focus + 1)
	case "shift+tab", "up":
		if key == "up" && f.current() == fieldContent {
			break
		}
		return m, f.focusField(f.focus - 1)
	case "ctrl+s":
		return m.submitCompose()
	case "ctrl+p":
		return m, tuiactions.PlayPreviewCmd(m.previewPath(), m.openFn)
	case "ctrl+x":
		return m.removeAttachment()
	}
	if f.kind == submission.KindFastR {
		switch key {
		case "ctrl+r":
			return m.toggleRecording()
		case "ctrl+d":
			return m.discardAudio()
		}
	} else {
		switch key {
		case "ctrl+a":
			f.draft.AdsEnabled = !f.draft.AdsEnabled
			return m, nil
		case "ctrl+l":
			if f.draft.Layout == submission.LayoutUpload {
				f.draft.Layout = submission.LayoutDefault
			} else {
				f.draft.Layout = submission.LayoutUpload
			}
			return m, nil
		}
	}

	switch f.current() {
	case fieldArea:
		switch key {
		case "left", "h":
			f.areaIdx = cycleArea(f.areaIdx, -1)
		case "right", "l", " ":
			f.areaIdx = cycleArea(f.areaIdx, 1)
		case "enter":
			return m, f.focusField(f.focus + 1)
		}
		return m, nil
	case fieldContent:
		var cmd tea.Cmd
		f.content, cmd = f.content.Update(msg)
		return m, cmd
	}

	if key == "enter" {
		return m.commitField()
	}
	in := f.inputs[f.current()]
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

func cycleArea(idx, delta int) int {
	n := len(submission.PostAreas)
	if idx < 0 {
		if delta < 0 {
			return n - 1
		}
		return 0
	}
	return (idx + delta + n) % n
}

// commitField handles enter on a single-line input: it adds a tag, attaches
// a file or moves on.
func (m Model) commitField() (tea.Model, tea.Cmd) {
	f := m.compose
	field := f.current()
	in := f.inputs[field]
	value := strings.TrimSpace(in.Value())

	switch field {
	case fieldTitle:
		return m, f.focusField(f.focus + 1)
	case fieldTags:
		if f.draft.Tags.Add(value) {
			f.err = ""
		}
		in.Reset()
		return m, nil
	}
	if value == "" || m.readFn == nil {
		return m, nil
	}

	switch field {
	case fieldDocument:
		if !submission.ValidDocument(value) {
			f.err = "Documents must be " + strings.Join(submission.DocumentExtensions, ", ") + " files"
			return m, nil
		}
		blob, err := m.readFn(value, media.NoLimit)
		if err != nil {
			f.err = api.UserMessage(err, "Could not read "+value)
			return m, nil
		}
		f.draft.Documents = append(f.draft.Documents, blob)
		in.Reset()
		f.err = ""
		return m.setStatus("Attached "+describeBlob(blob), 3*time.Second)
	case fieldAudio:
		blob, err := m.readFn(value, media.AudioLimit)
		if err != nil {
			f.err = api.UserMessage(err, "Could not read "+value)
			return m, nil
		}
		err = f.audio.Upload(blob)
		if errors.Is(err, media.ErrRecording) {
			f.err = "Stop recording before attaching a file"
			return m, nil
		}
		var sizeErr *media.SizeError
		if errors.As(err, &sizeErr) {
			f.err = sizeErr.UserMessage()
			return m, nil
		}
		in.Reset()
		f.err = ""
		if err != nil {
			return m.setStatus("Attached "+describeBlob(blob)+" (preview unavailable)", 3*time.Second)
		}
		return m.setStatus("Attached "+describeBlob(blob), 3*time.Second)
	}

	capture := f.capture(field)
	if capture == nil {
		return m, nil
	}
	limit := media.NoLimit
	if field == fieldImage {
		limit = media.ImageLimit
	}
	blob, err := m.readFn(value, limit)
	if err != nil {
		f.err = api.UserMessage(err, "Could not read "+value)
		return m, nil
	}
	err = capture.Select(blob)
	var sizeErr *media.SizeError
	if errors.As(err, &sizeErr) {
		f.err = sizeErr.UserMessage()
		return m, nil
	}
	in.Reset()
	f.err = ""
	if err != nil {
		return m.setStatus("Attached "+describeBlob(blob)+" (preview unavailable)", 3*time.Second)
	}
	return m.setStatus("Attached "+describeBlob(blob), 3*time.Second)
}

func (m Model) removeAttachment() (tea.Model, tea.Cmd) {
	f := m.compose
	switch field := f.current(); field {
	case fieldTags:
		if n := len(f.draft.Tags); n > 0 {
			f.draft.Tags.Remove(f.draft.Tags[n-1])
		}
	case fieldDocument:
		if n := len(f.draft.Documents); n > 0 {
			f.draft.Documents = f.draft.Documents[:n-1]
		}
	case fieldAudio:
		return m.discardAudio()
	default:
		if c := f.capture(field); c != nil {
			c.Remove()
		}
	}
	return m, nil
}

func (m Model) previewPath() string {
	f := m.compose
	if c := f.capture(f.current()); c != nil {
		return c.PreviewURL()
	}
	if f.audio != nil {
		return f.audio.PreviewURL()
	}
	return ""
}

func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	f := m.compose
	if f.audio.State() == media.Recording {
		f.recordSession++
		return m.recordingFinished("Recording saved", f.audio.Stop())
	}
	if err := f.audio.Start(); err != nil {
		if errors.Is(err, media.ErrNoDevice) {
			f.err = "No audio recorder available on this system"
		} else {
			f.err = "Could not access the microphone"
		}
		return m, nil
	}
	f.err = ""
	f.recordSession++
	return m, recordTickCmd(f.recordSession)
}

func recordTickCmd(session int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return recordTickMsg{session: session}
	})
}

// applyRecordTick advances the recording clock. Ticks from a stopped or
// replaced recording are ignored.
func (m Model) applyRecordTick(msg recordTickMsg) (tea.Model, tea.Cmd) {
	f := m.compose
	if f == nil || f.audio == nil || msg.session != f.recordSession {
		return m, nil
	}
	stopped, err := f.audio.Tick()
	if stopped || err != nil {
		return m.recordingFinished(fmt.Sprintf("Recording stopped at %d seconds", media.MaxRecording), err)
	}
	if f.audio.State() != media.Recording {
		return m, nil
	}
	return m, recordTickCmd(msg.session)
}

// recordingFinished reports the end of a recording. A clip that was kept
// but could not be previewed is still usable.
func (m Model) recordingFinished(status string, err error) (tea.Model, tea.Cmd) {
	f := m.compose
	if err == nil {
		return m.setStatus(status, 3*time.Second)
	}
	if f.audio.State() == media.RecordedReady {
		return m.setStatus(status+" (preview unavailable)", 3*time.Second)
	}
	f.err = "Recording failed: " + err.Error()
	return m, nil
}

func (m Model) discardAudio() (tea.Model, tea.Cmd) {
	f := m.compose
	if f.audio.State() == media.Recording {
		f.err = "Stop recording before discarding"
		return m, nil
	}
	gen := f.audio.InputGeneration()
	f.audio.Discard()
	if f.audio.InputGeneration() != gen {
		f.inputs[fieldAudio].Reset()
	}
	return m, nil
}

func (m Model) submitCompose() (tea.Model, tea.Cmd) {
	f := m.compose
	if f.submitting {
		return m, nil
	}
	if f.audio != nil && f.audio.State() == media.Recording {
		f.err = "Stop recording before submitting"
		return m, nil
	}
	f.syncDraft()
	if err := submission.Validate(f.kind, f.draft); err != nil {
		f.err = api.UserMessage(err, submitFailureMessage(f.kind))
		return m, nil
	}
	if m.service == nil {
		return m, nil
	}
	f.err = ""
	f.submitting = true
	return m, tea.Batch(m.spinner.Tick, tuiactions.SubmitCmd(m.service, f.kind, f.draft))
}

func (m Model) applySubmitSuccess(msg tuiactions.SubmitSuccessMsg) (tea.Model, tea.Cmd) {
	if m.compose != nil && m.compose.draft.ID == msg.DraftID {
		m.closeCompose()
		m.screen = view.ScreenFeed
	}
	status := "Post created"
	if msg.Kind == submission.KindFastR {
		status = "FastR created"
	}
	cmds := []tea.Cmd{m.flash(status, 3*time.Second)}
	if m.service != nil {
		m.loading = true
		cmds = append(cmds, m.spinner.Tick, tuiactions.LoadFeedCmd(m.service))
	}
	return m, tea.Batch(cmds...)
}

func submitFailureMessage(kind submission.Kind) string {
	if kind == submission.KindFastR {
		return app.MsgSubmitFastR
	}
	return app.MsgSubmitPost
}

func describeBlob(b media.Blob) string {
	return fmt.Sprintf("%s (%s)", b.Name, humanize.Bytes(uint64(b.Size)))
}

func (m Model) composeView() string {
	f := m.compose
	if f == nil {
		return ""
	}
	th := m.theme
	var b strings.Builder
	title := "New post"
	if f.kind == submission.KindFastR {
		title = "New FastR"
	}
	b.WriteString(th.Section.Render(title))
	b.WriteString("\n\n")

	for i, field := range f.fields {
		label := fmt.Sprintf("%-13s", fieldLabels[field])
		if i == f.focus {
			label = th.FieldFocus.Render("> " + label)
		} else {
			label = "  " + th.MetaLabel.Render(label)
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(m.fieldValue(field))
		b.WriteString("\n")
		if field == fieldContent && i == f.focus {
			b.WriteString(f.content.View())
			b.WriteString("\n")
		}
	}

	if f.kind == submission.KindPost {
		ads := "off"
		if f.draft.AdsEnabled {
			ads = "on"
		}
		b.WriteString("\n")
		b.WriteString(th.MetaLabel.Render("  layout ") + th.MetaValue.Render(string(f.draft.Layout)))
		b.WriteString(th.MetaLabel.Render("  ads ") + th.MetaValue.Render(ads))
		b.WriteString("\n")
	}

	if f.submitting {
		b.WriteString("\nSubmitting...\n")
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(th.StateWarn.Render(f.err))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) fieldValue(field composeField) string {
	f := m.compose
	th := m.theme
	switch field {
	case fieldContent:
		text := strings.Join(strings.Fields(f.content.Value()), " ")
		if text == "" {
			return th.Snippet.Render("(empty)")
		}
		return truncateLabel(text, 60)
	case fieldArea:
		if f.areaIdx < 0 {
			return th.Snippet.Render("(none, left/right to choose)")
		}
		return "< " + submission.PostAreas[f.areaIdx] + " >"
	case fieldTags:
		out := f.inputs[field].View()
		if len(f.draft.Tags) > 0 {
			out = th.MetaValue.Render("["+strings.Join(f.draft.Tags, "] [")+"]") + " " + out
		}
		return out
	case fieldDocument:
		out := f.inputs[field].View()
		if n := len(f.draft.Documents); n > 0 {
			names := make([]string, 0, n)
			for _, d := range f.draft.Documents {
				names = append(names, d.Name)
			}
			out = th.MetaValue.Render(strings.Join(names, ", ")) + " " + out
		}
		return out
	case fieldAudio:
		return m.audioValue() + " " + f.inputs[field].View()
	}

	in := f.inputs[field]
	if c := f.capture(field); c != nil {
		if blob, ok := c.Current(); ok {
			return th.MetaValue.Render(describeBlob(blob)) + " " + in.View()
		}
	}
	return in.View()
}

func (m Model) audioValue() string {
	a := m.compose.audio
	th := m.theme
	switch a.State() {
	case media.Recording:
		return th.StateWarn.Render(fmt.Sprintf("● recording %02d/%02ds", a.Elapsed(), media.MaxRecording))
	case media.RecordedReady, media.UploadedReady:
		blob, _ := a.Current()
		return th.MetaValue.Render(a.State().String() + ": " + describeBlob(blob))
	}
	return th.Snippet.Render("(none)")
}

func truncateLabel(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
