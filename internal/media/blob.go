package media

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const MB = 1 << 20

// Blob is an in-memory attachment: a recorded clip, an uploaded audio file,
// an image or a supporting document.
type Blob struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

func (b Blob) Empty() bool {
	return len(b.Data) == 0
}

// Len is the larger of the declared size and the bytes actually held.
func (b Blob) Len() int64 {
	return max(b.Size, int64(len(b.Data)))
}

// Limit is a size ceiling for one kind of attachment. A zero Max means no
// ceiling.
type Limit struct {
	Subject string
	Max     int64
}

var (
	AudioLimit = Limit{Subject: "Audio file", Max: 30 * MB}
	ImageLimit = Limit{Subject: "Image", Max: 5 * MB}
	NoLimit    = Limit{}
)

func (l Limit) Check(size int64) error {
	if l.Max > 0 && size > l.Max {
		return &SizeError{Limit: l, Size: size}
	}
	return nil
}

// SizeError rejects an attachment over its ceiling. The capture state is
// left as it was.
type SizeError struct {
	Limit Limit
	Size  int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s is %s, over the %s limit",
		e.Limit.Subject, humanize.IBytes(uint64(e.Size)), humanize.IBytes(uint64(e.Limit.Max)))
}

func (e *SizeError) UserMessage() string {
	return fmt.Sprintf("%s size should be less than %dMB", e.Limit.Subject, e.Limit.Max/MB)
}
