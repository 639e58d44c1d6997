// Package media defines the frame types that flow through the playout
// pipeline, from producers through transition composition to consumers.
package media

// Frame is one producer's contribution to a single output tick. It carries
// the composition attributes the downstream renderer applies (opacity,
// translation, sample rectangle), one tick of interleaved audio, and an
// opaque picture payload the composition engine never inspects.
//
// A Frame is exclusively owned by the producer that created it until it is
// added to a CompositeFrame, which takes ownership for the duration of the
// tick. Frames are never shared across ticks and never mutated after the
// composite is handed to a consumer.
type Frame struct {
	// Opacity is the layer opacity in [0,1]. Factory frames start at 1.
	Opacity float64

	// TransX and TransY translate the frame in normalized picture
	// coordinates, where ±1 is one full frame width or height.
	TransX float64
	TransY float64

	// SampleRect is the region of the frame's picture the renderer samples,
	// in normalized coordinates. Defaults to the full frame.
	SampleRect Rect

	// Audio is one tick of channel-interleaved signed 16-bit samples.
	Audio []int16

	// Data is the picture payload for the render backend.
	Data []byte
}

// Rect is a fractional sample rectangle in left, top, right, bottom order,
// top-left origin with Y increasing downward in texture space.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// FullRect is the sample rectangle covering the entire frame.
func FullRect() Rect {
	return Rect{Left: 0, Top: 1, Right: 1, Bottom: 0}
}

// ScaleVolume scales every audio sample by an integer volume in [0,256]
// using the fixed-point form sample*volume >> 8. The arithmetic right shift
// truncates toward negative infinity for negative samples; consumers depend
// on this exact behavior for bit-compatible output.
func (f *Frame) ScaleVolume(volume int) {
	for i, s := range f.Audio {
		f.Audio[i] = int16((int(s) * volume) >> 8)
	}
}
