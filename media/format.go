package media

import (
	"fmt"
	"time"
)

// FormatDesc describes a channel's output format: picture geometry, frame
// rate as a rational, and the audio cadence of one tick. It is fixed for
// the lifetime of a channel and shared read-only by every producer on it.
type FormatDesc struct {
	Name         string
	Width        int
	Height       int
	FrameRateNum int
	FrameRateDen int
	SampleRate   int
	Channels     int
}

// TickInterval returns the wall-clock duration of one output tick.
func (d FormatDesc) TickInterval() time.Duration {
	return time.Duration(int64(time.Second) * int64(d.FrameRateDen) / int64(d.FrameRateNum))
}

// SamplesPerTick returns the number of interleaved audio samples in one
// tick across all channels. Formats in the table divide evenly; a format
// with a fractional cadence would need sample accumulation upstream.
func (d FormatDesc) SamplesPerTick() int {
	return d.SampleRate * d.FrameRateDen / d.FrameRateNum * d.Channels
}

func (d FormatDesc) String() string {
	return d.Name
}

// Formats holds the supported output formats, keyed by lowercase name.
var Formats = map[string]FormatDesc{
	"pal":       {Name: "pal", Width: 720, Height: 576, FrameRateNum: 25, FrameRateDen: 1, SampleRate: 48000, Channels: 2},
	"720p2500":  {Name: "720p2500", Width: 1280, Height: 720, FrameRateNum: 25, FrameRateDen: 1, SampleRate: 48000, Channels: 2},
	"720p5000":  {Name: "720p5000", Width: 1280, Height: 720, FrameRateNum: 50, FrameRateDen: 1, SampleRate: 48000, Channels: 2},
	"720p6000":  {Name: "720p6000", Width: 1280, Height: 720, FrameRateNum: 60, FrameRateDen: 1, SampleRate: 48000, Channels: 2},
	"1080p2500": {Name: "1080p2500", Width: 1920, Height: 1080, FrameRateNum: 25, FrameRateDen: 1, SampleRate: 48000, Channels: 2},
	"1080p5000": {Name: "1080p5000", Width: 1920, Height: 1080, FrameRateNum: 50, FrameRateDen: 1, SampleRate: 48000, Channels: 2},
	"1080p6000": {Name: "1080p6000", Width: 1920, Height: 1080, FrameRateNum: 60, FrameRateDen: 1, SampleRate: 48000, Channels: 2},
}

// FormatByName looks up a format descriptor by its case-sensitive lowercase
// name, e.g. "720p5000".
func FormatByName(name string) (FormatDesc, error) {
	d, ok := Formats[name]
	if !ok {
		return FormatDesc{}, fmt.Errorf("media: unknown format %q", name)
	}
	return d, nil
}
