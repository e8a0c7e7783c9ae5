package vg

// CreateImage uploads pixels (tightly packed RGBA8, width*height*4 bytes)
// as a new GPU texture and returns its handle. Returns handle.Invalid (via
// handleInvalid) if the image table is at capacity.
func (c *Context) CreateImage(width, height int, flags uint32, pixels []byte) uint32 {
	tex := c.backend.CreateTexture(width, height, pixels)
	h := c.images.Alloc(Image{
		Width:        width,
		Height:       height,
		SamplerFlags: flags,
		Texture:      tex,
		Owned:        true,
	})
	if h == handleInvalid {
		c.backend.DestroyTexture(tex)
		Logger().Warn("vg: image table exhausted")
	}
	return h
}

// UpdateImage replaces a sub-rectangle of an existing image's pixels.
// No-op on an invalid handle.
func (c *Context) UpdateImage(imageHandle uint32, x, y, w, h int, pixels []byte) {
	img, ok := c.images.Get(imageHandle)
	if !ok {
		Logger().Warn("vg: UpdateImage with an invalid handle")
		return
	}
	c.backend.UpdateTexture(img.Texture, x, y, w, h, pixels)
}

// DestroyImage releases an image's GPU texture and frees its handle.
// No-op on an invalid or already-freed handle.
func (c *Context) DestroyImage(imageHandle uint32) {
	img, ok := c.images.Get(imageHandle)
	if !ok {
		return
	}
	if img.Owned {
		c.backend.DestroyTexture(img.Texture)
	}
	c.images.Free(imageHandle)
}

// IsImageValid reports whether imageHandle currently names a live image.
func (c *Context) IsImageValid(imageHandle uint32) bool {
	return c.images.Valid(imageHandle)
}

// GetImageSize returns the pixel dimensions of imageHandle, or (0, 0) if
// invalid.
func (c *Context) GetImageSize(imageHandle uint32) (width, height int) {
	img, ok := c.images.Get(imageHandle)
	if !ok {
		return 0, 0
	}
	return img.Width, img.Height
}
