// Package producer defines the frame-producer contract every media source
// implements, the chaining protocol that lets an exhausted source hand off
// to its successor, and a registry that builds producers by name.
package producer

import "github.com/beamcast/playout/media"

// FrameProducer is the role implemented by every media source: file clip,
// still, generator, or a transition wrapping two other producers.
type FrameProducer interface {
	// RenderFrame returns the producer's contribution to the next tick.
	// A nil composite with a nil error means no content this tick, which
	// covers both "not ready yet" and end-of-content; ordinary exhaustion
	// is never an error. A non-nil error is an unrecoverable fault and the
	// caller drops the producer.
	RenderFrame() (*media.CompositeFrame, error)

	// Initialize binds the producer to the channel's frame factory. It is
	// called again when a producer is promoted into an active chain and
	// must be safe to repeat.
	Initialize(factory media.FrameFactory) error

	// FollowingProducer returns the producer that takes over once this one
	// is exhausted, or nil if there is none. It does not mutate state.
	FollowingProducer() FrameProducer

	// SetLeadingProducer tells a freshly activated producer which producer
	// it replaced, so a chained transition can cross-fade from it.
	SetLeadingProducer(p FrameProducer)
}

// FollowSetter is implemented by producers whose successor can be assigned
// after construction. Playlist chaining requires it.
type FollowSetter interface {
	SetFollowingProducer(p FrameProducer)
}

// ChainLink provides chaining storage for leaf producers. Embed it to
// satisfy the FollowingProducer, SetLeadingProducer, and FollowSetter
// methods of the contract.
type ChainLink struct {
	following FrameProducer
	leading   FrameProducer
}

// FollowingProducer returns the assigned successor, or nil.
func (c *ChainLink) FollowingProducer() FrameProducer {
	return c.following
}

// SetFollowingProducer assigns the producer that takes over at exhaustion.
func (c *ChainLink) SetFollowingProducer(p FrameProducer) {
	c.following = p
}

// SetLeadingProducer records the producer this one replaced.
func (c *ChainLink) SetLeadingProducer(p FrameProducer) {
	c.leading = p
}

// LeadingProducer returns the producer this one replaced, or nil.
func (c *ChainLink) LeadingProducer() FrameProducer {
	return c.leading
}
