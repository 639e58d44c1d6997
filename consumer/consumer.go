// Package consumer defines the boundary to the downstream renderer: a
// Consumer drains one CompositeFrame per tick from a channel. The concrete
// consumers here count frames for telemetry or dump composed output to a
// file; hardware render backends plug in behind the same interface.
package consumer

import (
	"sync/atomic"

	"github.com/beamcast/playout/media"
)

// Consumer receives one composed frame per tick. Send must return promptly;
// the channel tick loop has a fixed time budget.
type Consumer interface {
	Send(frame *media.CompositeFrame) error
	Close() error
}

// Counting tallies delivered frames and layers. Useful as a telemetry sink
// and in tests.
type Counting struct {
	frames atomic.Int64
	layers atomic.Int64
}

// NewCounting returns a counting consumer.
func NewCounting() *Counting {
	return &Counting{}
}

// Send counts the frame and its layers.
func (c *Counting) Send(frame *media.CompositeFrame) error {
	c.frames.Add(1)
	c.layers.Add(int64(len(frame.Layers())))
	return nil
}

// Close is a no-op.
func (c *Counting) Close() error {
	return nil
}

// Frames returns the number of frames received.
func (c *Counting) Frames() int64 {
	return c.frames.Load()
}

// Layers returns the total number of layers received.
func (c *Counting) Layers() int64 {
	return c.layers.Load()
}
