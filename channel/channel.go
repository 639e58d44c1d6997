// Package channel drives playout for one output: a layered stage of frame
// producers ticked at the format's frame rate, composed bottom-up into one
// CompositeFrame per tick and fanned out to the attached consumers.
package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/beamcast/playout/consumer"
	"github.com/beamcast/playout/media"
	"github.com/beamcast/playout/producer"
	"github.com/beamcast/playout/producer/transition"
)

// ErrEmptyLayer is returned by Play when no producer has been loaded.
var ErrEmptyLayer = errors.New("channel: no producer loaded on layer")

// layer is one slot of the stage: the on-air foreground and a loaded
// background waiting for Play.
type layer struct {
	id         uuid.UUID
	foreground producer.FrameProducer
	background producer.FrameProducer
}

// Channel owns one output's stage and tick loop. Stage mutations and the
// tick loop synchronize on a single mutex; rendering within a tick happens
// under it so commands never observe a half-composed tick.
type Channel struct {
	log     *slog.Logger
	num     int
	desc    media.FormatDesc
	factory media.FrameFactory

	mu        sync.Mutex
	layers    map[int]*layer
	consumers []consumer.Consumer

	ticks     atomic.Int64
	delivered atomic.Int64
	faults    atomic.Int64
}

// New creates a channel for the given output format. If log is nil,
// slog.Default() is used.
func New(num int, desc media.FormatDesc, log *slog.Logger) *Channel {
	if log == nil {
		log = slog.Default()
	}
	return &Channel{
		log:     log.With("component", "channel", "channel", num),
		num:     num,
		desc:    desc,
		factory: media.NewFactory(desc),
		layers:  make(map[int]*layer),
	}
}

// Number returns the channel number.
func (ch *Channel) Number() int {
	return ch.num
}

// Format returns the channel's output format.
func (ch *Channel) Format() media.FormatDesc {
	return ch.desc
}

// AddConsumer attaches a consumer; every subsequent tick is delivered
// to it.
func (ch *Channel) AddConsumer(c consumer.Consumer) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.consumers = append(ch.consumers, c)
}

// Load initializes p and parks it as the layer's background, ready for
// Play. The previous background, if any, is discarded.
func (ch *Channel) Load(layerNum int, p producer.FrameProducer) error {
	if err := p.Initialize(ch.factory); err != nil {
		return fmt.Errorf("channel: initialize producer: %w", err)
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	l := ch.layer(layerNum)
	l.background = p
	ch.log.Info("loaded background", "layer", layerNum, "id", l.id, "producer", producerName(p))
	return nil
}

// Play promotes the layer's background to the foreground. With a non-nil
// transition info the background is wrapped in a transition from the
// current foreground; with nil it goes on air directly.
func (ch *Channel) Play(layerNum int, info *transition.Info) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	l := ch.layer(layerNum)
	if l.background == nil {
		return fmt.Errorf("%w %d", ErrEmptyLayer, layerNum)
	}

	next := l.background
	if info != nil {
		tr, err := transition.New(next, *info, ch.desc, ch.log)
		if err != nil {
			return err
		}
		if err := tr.Initialize(ch.factory); err != nil {
			return fmt.Errorf("channel: initialize transition: %w", err)
		}
		tr.SetLeadingProducer(l.foreground)
		next = tr
	}
	l.foreground = next
	l.background = nil
	ch.log.Info("playing", "layer", layerNum, "id", l.id, "producer", producerName(next))
	return nil
}

// Stop takes the layer's foreground off air, leaving any loaded
// background in place.
func (ch *Channel) Stop(layerNum int) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	l := ch.layer(layerNum)
	l.foreground = nil
	ch.log.Info("stopped", "layer", layerNum, "id", l.id)
}

// Clear drops every layer on the channel.
func (ch *Channel) Clear() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.layers = make(map[int]*layer)
	ch.log.Info("cleared")
}

// layer returns the slot for layerNum, creating it on first use.
// Callers hold ch.mu.
func (ch *Channel) layer(layerNum int) *layer {
	l, ok := ch.layers[layerNum]
	if !ok {
		l = &layer{id: uuid.New()}
		ch.layers[layerNum] = l
	}
	return l
}

// Tick renders every layer bottom-up, delivers the composed frame to all
// consumers, and returns it.
func (ch *Channel) Tick() *media.CompositeFrame {
	out := media.NewComposite(ch.desc)

	ch.mu.Lock()
	nums := make([]int, 0, len(ch.layers))
	for n := range ch.layers {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	for _, n := range nums {
		out.Append(ch.renderLayer(n, ch.layers[n]))
	}
	consumers := slices.Clone(ch.consumers)
	ch.mu.Unlock()

	ch.ticks.Add(1)
	for _, c := range consumers {
		if err := c.Send(out); err != nil {
			ch.log.Warn("consumer send failed", "error", err)
			continue
		}
		ch.delivered.Add(1)
	}
	return out
}

// renderLayer renders one layer's foreground, excising it on a fault and
// promoting its following producer when it reports exhaustion. This is how
// a finished transition is replaced by its destination with no gap: the
// transition's following producer is the destination, promoted and
// re-rendered within the same tick. Callers hold ch.mu.
func (ch *Channel) renderLayer(layerNum int, l *layer) *media.CompositeFrame {
	for l.foreground != nil {
		frame, err := l.foreground.RenderFrame()
		if err != nil {
			ch.faults.Add(1)
			ch.log.Warn("producer fault, layer taken off air",
				"layer", layerNum, "id", l.id, "error", err)
			l.foreground = nil
			return nil
		}
		if frame != nil {
			return frame
		}

		following := l.foreground.FollowingProducer()
		if following == nil {
			// Not ready this tick, or exhausted with nothing queued.
			return nil
		}
		if err := following.Initialize(ch.factory); err != nil {
			ch.faults.Add(1)
			ch.log.Warn("promotion failed, layer taken off air",
				"layer", layerNum, "id", l.id, "error", err)
			l.foreground = nil
			return nil
		}
		following.SetLeadingProducer(l.foreground)
		l.foreground = following
		ch.log.Debug("promoted following producer",
			"layer", layerNum, "id", l.id, "producer", producerName(following))
	}
	return nil
}

// Run ticks the channel at the format's frame rate until the context is
// cancelled.
func (ch *Channel) Run(ctx context.Context) error {
	interval := ch.desc.TickInterval()
	ch.log.Info("running", "format", ch.desc.Name, "tick", interval)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			ch.Tick()
		}
	}
}

func producerName(p producer.FrameProducer) string {
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", p)
}
