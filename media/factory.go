package media

// FrameFactory is the frame-construction context a channel hands to its
// producers at initialization. Producers treat it as opaque beyond these
// two methods; transitions forward it unchanged during chain promotion.
type FrameFactory interface {
	// NewFrame allocates a frame for one tick: full opacity, full sample
	// rectangle, and a silent audio buffer sized to the format's cadence.
	NewFrame() *Frame

	// Format returns the output format the factory allocates for.
	Format() FormatDesc
}

type factory struct {
	desc FormatDesc
}

// NewFactory returns a FrameFactory for the given output format.
func NewFactory(desc FormatDesc) FrameFactory {
	return &factory{desc: desc}
}

func (f *factory) NewFrame() *Frame {
	return &Frame{
		Opacity:    1,
		SampleRect: FullRect(),
		Audio:      make([]int16, f.desc.SamplesPerTick()),
	}
}

func (f *factory) Format() FormatDesc {
	return f.desc
}
