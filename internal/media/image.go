package media

// ImageCapture holds at most one selected image under a size limit.
type ImageCapture struct {
	previews PreviewStore
	limit    Limit

	current Blob
	preview string
}

func NewImageCapture(previews PreviewStore, limit Limit) *ImageCapture {
	return &ImageCapture{previews: previews, limit: limit}
}

func (c *ImageCapture) Selected() bool { return !c.current.Empty() }

func (c *ImageCapture) Current() (Blob, bool) {
	return c.current, c.Selected()
}

func (c *ImageCapture) PreviewURL() string { return c.preview }

// Select replaces the current image. An oversized image leaves the previous
// selection in place.
func (c *ImageCapture) Select(b Blob) error {
	if err := c.limit.Check(b.Len()); err != nil {
		return err
	}
	c.Remove()
	b.Size = b.Len()
	c.current = b
	if c.previews == nil {
		return nil
	}
	handle, err := c.previews.Create(b)
	if err != nil {
		return err
	}
	c.preview = handle
	return nil
}

func (c *ImageCapture) Remove() {
	if c.previews != nil {
		c.previews.Revoke(c.preview)
	}
	c.preview = ""
	c.current = Blob{}
}

func (c *ImageCapture) Close() {
	c.Remove()
}
