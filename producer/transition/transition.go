// Package transition implements the cross-fade engine between an outgoing
// and an incoming frame producer: a tick-driven state machine that renders
// both sides in parallel each tick, composes them per the transition kind,
// and survives sub-producer faults by playing on with one side absent.
package transition

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/beamcast/playout/media"
	"github.com/beamcast/playout/producer"
)

// Construction faults.
var (
	ErrNilDestination  = errors.New("transition: nil destination producer")
	ErrInvalidDuration = errors.New("transition: duration must be positive")
)

// Producer blends an outgoing source producer into an incoming destination
// producer over a fixed number of ticks. It implements
// producer.FrameProducer, so transitions nest: either side may itself be a
// transition.
//
// The destination is required for the producer's whole lifetime. The source
// is optional and is assigned by the owning channel via SetLeadingProducer;
// either side may become nil mid-transition when it faults.
type Producer struct {
	log  *slog.Logger
	desc media.FormatDesc
	info Info

	// tick counts render calls, monotonically; never reset. The transition
	// is finished once it exceeds the configured duration.
	tick int

	dest producer.FrameProducer
	src  producer.FrameProducer

	factory media.FrameFactory
}

var _ producer.FrameProducer = (*Producer)(nil)

// New creates a transition into dest. A nil dest or non-positive duration
// is a programming error and fails immediately.
func New(dest producer.FrameProducer, info Info, desc media.FormatDesc, log *slog.Logger) (*Producer, error) {
	if dest == nil {
		return nil, ErrNilDestination
	}
	if info.Duration <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, info.Duration)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Producer{
		log:  log.With("component", "transition", "kind", info.Kind.String()),
		desc: desc,
		info: info,
		dest: dest,
	}, nil
}

// Initialize forwards the factory to the destination and keeps it for
// chain promotion.
func (p *Producer) Initialize(factory media.FrameFactory) error {
	if err := p.dest.Initialize(factory); err != nil {
		return err
	}
	p.factory = factory
	return nil
}

// FollowingProducer returns the destination, which the owning channel
// swaps in once the transition reports completion.
func (p *Producer) FollowingProducer() producer.FrameProducer {
	return p.dest
}

// SetLeadingProducer assigns the outgoing side of the transition.
func (p *Producer) SetLeadingProducer(src producer.FrameProducer) {
	p.src = src
}

// RenderFrame advances the transition one tick. It returns a composed
// frame for each of the configured duration's ticks and nil forever after.
// Sub-producer faults never surface here; the failing side is dropped and
// the transition continues degraded.
func (p *Producer) RenderFrame() (*media.CompositeFrame, error) {
	p.tick++
	if p.tick > p.info.Duration {
		return nil, nil
	}

	var dest, src *media.CompositeFrame
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		dest = p.renderSide(&p.dest)
	}()
	go func() {
		defer wg.Done()
		src = p.renderSide(&p.src)
	}()
	wg.Wait()

	return p.compose(dest, src), nil
}

// renderSide renders one side's producer, excising it permanently on a
// fault and promoting its following producer when it exhausts. Promotion
// iterates rather than recursing so a pathological chain cannot grow the
// stack. The two sides' slots are disjoint, so no locking is needed during
// the parallel phase.
func (p *Producer) renderSide(slot *producer.FrameProducer) *media.CompositeFrame {
	for {
		prod := *slot
		if prod == nil {
			return nil
		}

		frame, err := prod.RenderFrame()
		if err != nil {
			p.log.Warn("producer fault, removed from transition", "error", err)
			*slot = nil
			return nil
		}
		if frame != nil {
			return frame
		}

		following := prod.FollowingProducer()
		if following == nil {
			// Exhausted or simply not ready; nothing to promote.
			return nil
		}
		if err := following.Initialize(p.factory); err != nil {
			p.log.Warn("chain promotion failed, removed from transition", "error", err)
			*slot = nil
			return nil
		}
		following.SetLeadingProducer(prod)
		*slot = following
	}
}

// compose blends the two sub-frames per the transition kind. A missing
// destination short-circuits to no output; a missing source simply
// contributes nothing.
func (p *Producer) compose(dest, src *media.CompositeFrame) *media.CompositeFrame {
	if p.info.Kind == Cut {
		return src
	}
	if dest == nil {
		return nil
	}

	alpha := float64(p.tick) / float64(p.info.Duration)
	volume := int(math.Round(alpha * 256))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		dest.ScaleVolume(volume)
	}()
	go func() {
		defer wg.Done()
		src.ScaleVolume(256 - volume)
	}()
	wg.Wait()

	switch p.info.Kind {
	case Mix:
		dest.ScaleOpacity(alpha)
	case Slide:
		dest.Translate(p.destOffset(alpha), 0)
	case Push:
		dest.Translate(p.destOffset(alpha), 0)
		src.Translate(p.srcOffset(alpha), 0)
	case Wipe:
		dest.Translate(p.destOffset(alpha), 0)
		dest.SetSampleRect(p.wipeRect(alpha))
	}

	out := media.NewComposite(p.desc)
	out.Append(src)
	out.Append(dest)
	return out
}

// destOffset is the destination's horizontal travel: it starts one full
// frame off-screen on the transition's side and lands at zero.
func (p *Producer) destOffset(alpha float64) float64 {
	if p.info.Direction == FromLeft {
		return -1 + alpha
	}
	return 1 - alpha
}

// srcOffset mirrors destOffset so source and destination move together in
// a push.
func (p *Producer) srcOffset(alpha float64) float64 {
	if p.info.Direction == FromLeft {
		return alpha
	}
	return -alpha
}

// wipeRect clips the destination's sample rectangle to the fraction
// already wiped in, giving a hard edge instead of a blend.
func (p *Producer) wipeRect(alpha float64) media.Rect {
	if p.info.Direction == FromLeft {
		return media.Rect{Left: -1 + alpha, Top: 1, Right: alpha, Bottom: 0}
	}
	return media.Rect{Left: 1 - alpha, Top: 1, Right: 2 - alpha, Bottom: 0}
}

func (p *Producer) String() string {
	return fmt.Sprintf("transition %s %d", p.info.Kind, p.info.Duration)
}
