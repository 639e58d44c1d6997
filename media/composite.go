package media

// CompositeFrame is one output tick's full visual and audio contents: an
// ordered stack of Frames in painter's order, first entry at the bottom.
// Later layers composite over earlier ones, visually and acoustically.
//
// The composition operations below distribute over every layer, so a
// composite produced by a nested transition behaves as a single unit when
// an enclosing transition fades, moves, or attenuates it.
type CompositeFrame struct {
	Format FormatDesc

	layers []*Frame
}

// NewComposite returns an empty composite for one tick of the given format.
func NewComposite(format FormatDesc) *CompositeFrame {
	return &CompositeFrame{Format: format}
}

// SingleLayer wraps one frame in a composite, the common case for leaf
// producers.
func SingleLayer(format FormatDesc, f *Frame) *CompositeFrame {
	c := NewComposite(format)
	c.Add(f)
	return c
}

// Add appends a frame as the new top layer. nil frames are ignored; an
// absent sub-frame contributes nothing to the composite.
func (c *CompositeFrame) Add(f *Frame) {
	if f == nil {
		return
	}
	c.layers = append(c.layers, f)
}

// Append stacks all of other's layers on top of c, preserving their
// relative order. A nil other is a no-op.
func (c *CompositeFrame) Append(other *CompositeFrame) {
	if other == nil {
		return
	}
	c.layers = append(c.layers, other.layers...)
}

// Layers returns the layer stack in painter's order. Callers must not
// reorder it.
func (c *CompositeFrame) Layers() []*Frame {
	if c == nil {
		return nil
	}
	return c.layers
}

// Empty reports whether the composite has no layers.
func (c *CompositeFrame) Empty() bool {
	return c == nil || len(c.layers) == 0
}

// ScaleVolume applies the fixed-point volume scale to every layer's audio.
// Safe on a nil composite.
func (c *CompositeFrame) ScaleVolume(volume int) {
	if c == nil {
		return
	}
	for _, l := range c.layers {
		l.ScaleVolume(volume)
	}
}

// ScaleOpacity multiplies every layer's opacity by a, preserving the
// relative opacities of nested layers.
func (c *CompositeFrame) ScaleOpacity(a float64) {
	if c == nil {
		return
	}
	for _, l := range c.layers {
		l.Opacity *= a
	}
}

// Translate offsets every layer by (x, y) in normalized coordinates,
// on top of any translation a nested transition already applied.
func (c *CompositeFrame) Translate(x, y float64) {
	if c == nil {
		return
	}
	for _, l := range c.layers {
		l.TransX += x
		l.TransY += y
	}
}

// SetSampleRect clips every layer's sample rectangle to r.
func (c *CompositeFrame) SetSampleRect(r Rect) {
	if c == nil {
		return
	}
	for _, l := range c.layers {
		l.SampleRect = r
	}
}
