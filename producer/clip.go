package producer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beamcast/playout/media"
)

// maxClipRecord bounds a single clip record's picture payload so a corrupt
// length prefix cannot trigger an absurd allocation.
const maxClipRecord = 64 << 20

// ErrCorruptClip indicates a clip stream with a malformed record.
var ErrCorruptClip = errors.New("producer: corrupt clip record")

// Clip reads pre-decoded frames from a byte stream, one record per tick.
// Each record is a big-endian uint32 picture-payload length, the payload,
// a uint32 interleaved sample count, and the 16-bit samples. The producer
// is exhausted at a clean EOF; a truncated record is a fault.
type Clip struct {
	ChainLink

	path string
	r    io.Reader

	factory media.FrameFactory
}

// NewClip creates a clip producer that opens path at initialization.
func NewClip(path string) *Clip {
	return &Clip{path: path}
}

// NewClipReader creates a clip producer over an existing stream.
func NewClipReader(r io.Reader) *Clip {
	return &Clip{r: r}
}

func clipFactory(params ...string) (FrameProducer, error) {
	if len(params) < 1 || params[0] == "" {
		return nil, fmt.Errorf("producer: clip needs a path")
	}
	return NewClip(params[0]), nil
}

// Initialize stores the factory and opens the clip file if it is not
// already open. Repeat calls after a successful open are no-ops, so chain
// promotion does not reopen a clip mid-read.
func (c *Clip) Initialize(factory media.FrameFactory) error {
	c.factory = factory
	if c.r != nil {
		return nil
	}
	f, err := os.Open(c.path)
	if err != nil {
		return fmt.Errorf("producer: open clip: %w", err)
	}
	c.r = f
	return nil
}

// RenderFrame reads the next record. Returns nil at a clean end of stream.
func (c *Clip) RenderFrame() (*media.CompositeFrame, error) {
	if c.factory == nil || c.r == nil {
		return nil, fmt.Errorf("producer: clip not initialized")
	}

	var dataLen uint32
	if err := binary.Read(c.r, binary.BigEndian, &dataLen); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("producer: read clip record: %w", err)
	}
	if dataLen > maxClipRecord {
		return nil, fmt.Errorf("%w: payload length %d", ErrCorruptClip, dataLen)
	}

	f := c.factory.NewFrame()
	f.Data = make([]byte, dataLen)
	if _, err := io.ReadFull(c.r, f.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptClip, err)
	}

	var sampleCount uint32
	if err := binary.Read(c.r, binary.BigEndian, &sampleCount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptClip, err)
	}
	if int(sampleCount) > len(f.Audio) {
		return nil, fmt.Errorf("%w: %d samples exceeds tick cadence %d",
			ErrCorruptClip, sampleCount, len(f.Audio))
	}
	if err := binary.Read(c.r, binary.BigEndian, f.Audio[:sampleCount]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptClip, err)
	}

	return media.SingleLayer(c.factory.Format(), f), nil
}

func (c *Clip) String() string {
	if c.path != "" {
		return fmt.Sprintf("clip %s", c.path)
	}
	return "clip"
}

// WriteClipRecord writes one clip record in the format RenderFrame reads,
// used by tooling that prepares pre-decoded clip files.
func WriteClipRecord(w io.Writer, data []byte, audio []int16) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(data))); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(audio))); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, audio)
}
