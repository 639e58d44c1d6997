package consumer

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/beamcast/playout/media"
)

// fileMagic opens a composed-output dump so readers can reject other files.
const fileMagic = uint32(0x504c4f31) // "PLO1"

// File writes composed output as a sequence of binary records, one per
// tick: the layer stack's composition attributes and picture payloads,
// followed by the tick's mixed-down audio. The format is this module's
// own; see ReadRecord for the layout.
type File struct {
	f *os.File
	w *bufio.Writer

	wroteHeader bool
	ticks       uint64
}

// NewFile creates or truncates path and returns a file consumer.
func NewFile(path string) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("consumer: create output: %w", err)
	}
	return &File{f: f, w: bufio.NewWriter(f)}, nil
}

// Send appends one tick's record.
func (c *File) Send(frame *media.CompositeFrame) error {
	if !c.wroteHeader {
		if err := binary.Write(c.w, binary.BigEndian, fileMagic); err != nil {
			return fmt.Errorf("consumer: write header: %w", err)
		}
		c.wroteHeader = true
	}
	c.ticks++

	if err := binary.Write(c.w, binary.BigEndian, c.ticks); err != nil {
		return fmt.Errorf("consumer: write record: %w", err)
	}

	layers := frame.Layers()
	if err := binary.Write(c.w, binary.BigEndian, uint32(len(layers))); err != nil {
		return fmt.Errorf("consumer: write record: %w", err)
	}
	for _, l := range layers {
		if err := writeLayer(c.w, l); err != nil {
			return fmt.Errorf("consumer: write layer: %w", err)
		}
	}

	mixed := media.MixAudio(frame)
	if err := binary.Write(c.w, binary.BigEndian, uint32(len(mixed))); err != nil {
		return fmt.Errorf("consumer: write audio: %w", err)
	}
	if err := binary.Write(c.w, binary.BigEndian, mixed); err != nil {
		return fmt.Errorf("consumer: write audio: %w", err)
	}
	return nil
}

// Close flushes and closes the output file.
func (c *File) Close() error {
	if err := c.w.Flush(); err != nil {
		c.f.Close()
		return fmt.Errorf("consumer: flush output: %w", err)
	}
	return c.f.Close()
}

func writeLayer(w io.Writer, l *media.Frame) error {
	attrs := []float64{
		l.Opacity, l.TransX, l.TransY,
		l.SampleRect.Left, l.SampleRect.Top, l.SampleRect.Right, l.SampleRect.Bottom,
	}
	for _, a := range attrs {
		if err := binary.Write(w, binary.BigEndian, a); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(l.Data))); err != nil {
		return err
	}
	_, err := w.Write(l.Data)
	return err
}

// Record is one decoded tick from a composed-output file.
type Record struct {
	Tick   uint64
	Layers []*media.Frame
	Audio  []int16
}

// ReadHeader consumes and validates the file magic.
func ReadHeader(r io.Reader) error {
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return fmt.Errorf("consumer: read header: %w", err)
	}
	if magic != fileMagic {
		return fmt.Errorf("consumer: bad magic %#x", magic)
	}
	return nil
}

// ReadRecord decodes the next tick record. Returns io.EOF at a clean end
// of file.
func ReadRecord(r io.Reader) (*Record, error) {
	rec := &Record{}
	if err := binary.Read(r, binary.BigEndian, &rec.Tick); err != nil {
		return nil, err
	}

	var layerCount uint32
	if err := binary.Read(r, binary.BigEndian, &layerCount); err != nil {
		return nil, fmt.Errorf("consumer: read record: %w", err)
	}
	for i := uint32(0); i < layerCount; i++ {
		l := &media.Frame{}
		attrs := []*float64{
			&l.Opacity, &l.TransX, &l.TransY,
			&l.SampleRect.Left, &l.SampleRect.Top, &l.SampleRect.Right, &l.SampleRect.Bottom,
		}
		for _, a := range attrs {
			if err := binary.Read(r, binary.BigEndian, a); err != nil {
				return nil, fmt.Errorf("consumer: read layer: %w", err)
			}
		}
		var dataLen uint32
		if err := binary.Read(r, binary.BigEndian, &dataLen); err != nil {
			return nil, fmt.Errorf("consumer: read layer: %w", err)
		}
		l.Data = make([]byte, dataLen)
		if _, err := io.ReadFull(r, l.Data); err != nil {
			return nil, fmt.Errorf("consumer: read layer: %w", err)
		}
		rec.Layers = append(rec.Layers, l)
	}

	var samples uint32
	if err := binary.Read(r, binary.BigEndian, &samples); err != nil {
		return nil, fmt.Errorf("consumer: read audio: %w", err)
	}
	rec.Audio = make([]int16, samples)
	if err := binary.Read(r, binary.BigEndian, rec.Audio); err != nil {
		return nil, fmt.Errorf("consumer: read audio: %w", err)
	}
	return rec, nil
}
