package consumer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/beamcast/playout/media"
)

func testComposite(samples ...int16) *media.CompositeFrame {
	f := &media.Frame{
		Opacity:    0.5,
		TransX:     -0.25,
		SampleRect: media.FullRect(),
		Audio:      samples,
		Data:       []byte{1, 2, 3},
	}
	return media.SingleLayer(media.Formats["pal"], f)
}

func TestCounting(t *testing.T) {
	t.Parallel()

	c := NewCounting()
	if err := c.Send(testComposite(0)); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := c.Send(testComposite(0)); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if c.Frames() != 2 {
		t.Errorf("frames: got %d, want 2", c.Frames())
	}
	if c.Layers() != 2 {
		t.Errorf("layers: got %d, want 2", c.Layers())
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.plo")
	c, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	if err := c.Send(testComposite(100, -100)); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := c.Send(testComposite(7)); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	if err := ReadHeader(f); err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}

	rec, err := ReadRecord(f)
	if err != nil {
		t.Fatalf("ReadRecord: %v", err)
	}
	if rec.Tick != 1 {
		t.Errorf("tick: got %d, want 1", rec.Tick)
	}
	if len(rec.Layers) != 1 {
		t.Fatalf("layers: got %d, want 1", len(rec.Layers))
	}
	l := rec.Layers[0]
	if l.Opacity != 0.5 || l.TransX != -0.25 {
		t.Errorf("layer attributes: got opacity=%v x=%v", l.Opacity, l.TransX)
	}
	if l.SampleRect != media.FullRect() {
		t.Errorf("sample rect: got %+v", l.SampleRect)
	}
	if len(l.Data) != 3 || l.Data[0] != 1 {
		t.Errorf("payload: got %x", l.Data)
	}
	if rec.Audio[0] != 100 || rec.Audio[1] != -100 {
		t.Errorf("audio: got %d,%d, want 100,-100", rec.Audio[0], rec.Audio[1])
	}

	if rec, err = ReadRecord(f); err != nil {
		t.Fatalf("second record: %v", err)
	}
	if rec.Tick != 2 {
		t.Errorf("tick: got %d, want 2", rec.Tick)
	}

	if _, err := ReadRecord(f); !errors.Is(err, io.EOF) {
		t.Errorf("end of file: got %v, want io.EOF", err)
	}
}

func TestReadHeaderRejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "junk")
	if err := os.WriteFile(path, []byte("not a dump"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := ReadHeader(f); err == nil {
		t.Error("garbage header should be rejected")
	}
}
