package channel

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Group holds a fixed set of channels keyed by number and runs their tick
// loops together.
type Group struct {
	mu    sync.RWMutex
	chans map[int]*Channel
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{chans: make(map[int]*Channel)}
}

// Add registers a channel under its number, replacing any previous one.
func (g *Group) Add(ch *Channel) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chans[ch.Number()] = ch
}

// Get looks up a channel by number.
func (g *Group) Get(num int) (*Channel, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ch, ok := g.chans[num]
	return ch, ok
}

// All returns the channels ordered by number.
func (g *Group) All() []*Channel {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Channel, 0, len(g.chans))
	for _, ch := range g.chans {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}

// Run ticks every channel until the context is cancelled or one fails.
func (g *Group) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, ch := range g.All() {
		ch := ch
		eg.Go(func() error {
			return ch.Run(ctx)
		})
	}
	return eg.Wait()
}
