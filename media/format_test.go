package media

import (
	"testing"
	"time"
)

func TestFormatByName(t *testing.T) {
	t.Parallel()

	d, err := FormatByName("720p5000")
	if err != nil {
		t.Fatalf("FormatByName: %v", err)
	}
	if d.Width != 1280 || d.Height != 720 || d.FrameRateNum != 50 {
		t.Errorf("720p5000: got %dx%d@%d/%d", d.Width, d.Height, d.FrameRateNum, d.FrameRateDen)
	}

	if _, err := FormatByName("4k9000"); err == nil {
		t.Error("unknown format should error")
	}
}

func TestTickInterval(t *testing.T) {
	t.Parallel()

	d := Formats["720p5000"]
	if got := d.TickInterval(); got != 20*time.Millisecond {
		t.Errorf("TickInterval: got %v, want 20ms", got)
	}

	pal := Formats["pal"]
	if got := pal.TickInterval(); got != 40*time.Millisecond {
		t.Errorf("TickInterval: got %v, want 40ms", got)
	}
}

func TestSamplesPerTick(t *testing.T) {
	t.Parallel()

	// 48kHz stereo at 50fps: 960 samples per channel per tick.
	d := Formats["720p5000"]
	if got := d.SamplesPerTick(); got != 1920 {
		t.Errorf("SamplesPerTick: got %d, want 1920", got)
	}
}

func TestFactoryFrame(t *testing.T) {
	t.Parallel()

	f := NewFactory(Formats["pal"])
	if f.Format().Name != "pal" {
		t.Errorf("Format: got %s, want pal", f.Format().Name)
	}

	frame := f.NewFrame()
	if frame.Opacity != 1 {
		t.Errorf("opacity: got %v, want 1", frame.Opacity)
	}
	if frame.SampleRect != FullRect() {
		t.Errorf("sample rect: got %+v, want full frame", frame.SampleRect)
	}
	// 48kHz stereo at 25fps: 1920 samples per channel per tick.
	if len(frame.Audio) != 3840 {
		t.Errorf("audio buffer: got %d samples, want 3840", len(frame.Audio))
	}
	for i, s := range frame.Audio {
		if s != 0 {
			t.Fatalf("sample %d not silent: %d", i, s)
		}
	}
}
