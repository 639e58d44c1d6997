package media

import "testing"

func TestMixAudio(t *testing.T) {
	t.Parallel()

	c := NewComposite(testFormat())
	c.Add(&Frame{Audio: []int16{100, -100, 32000}})
	c.Add(&Frame{Audio: []int16{50, -50, 32000}})

	mixed := MixAudio(c)
	if len(mixed) != testFormat().SamplesPerTick() {
		t.Fatalf("mixed length: got %d, want %d", len(mixed), testFormat().SamplesPerTick())
	}
	if mixed[0] != 150 || mixed[1] != -150 {
		t.Errorf("mixed samples: got %d,%d, want 150,-150", mixed[0], mixed[1])
	}
	if mixed[2] != 32767 {
		t.Errorf("positive overflow must clamp: got %d, want 32767", mixed[2])
	}
	if mixed[3] != 0 {
		t.Errorf("samples past layer audio must stay silent: got %d", mixed[3])
	}
}

func TestMixAudioClampNegative(t *testing.T) {
	t.Parallel()

	c := NewComposite(testFormat())
	c.Add(&Frame{Audio: []int16{-32000}})
	c.Add(&Frame{Audio: []int16{-32000}})

	if got := MixAudio(c)[0]; got != -32768 {
		t.Errorf("negative overflow must clamp: got %d, want -32768", got)
	}
}

func TestMixAudioNil(t *testing.T) {
	t.Parallel()

	if got := MixAudio(nil); got != nil {
		t.Errorf("nil composite: got %v, want nil", got)
	}
}
