package channel

import "sort"

// LayerInfo describes one stage layer in a snapshot.
type LayerInfo struct {
	Layer      int    `json:"layer"`
	ID         string `json:"id"`
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`
}

// Snapshot is a point-in-time view of a channel's stage and counters,
// suitable for JSON serialization to the control connection.
type Snapshot struct {
	Channel        int         `json:"channel"`
	Format         string      `json:"format"`
	Ticks          int64       `json:"ticks"`
	FramesOut      int64       `json:"framesDelivered"`
	ProducerFaults int64       `json:"producerFaults"`
	Layers         []LayerInfo `json:"layers"`
}

// Snapshot returns the channel's current state.
func (ch *Channel) Snapshot() Snapshot {
	snap := Snapshot{
		Channel:        ch.num,
		Format:         ch.desc.Name,
		Ticks:          ch.ticks.Load(),
		FramesOut:      ch.delivered.Load(),
		ProducerFaults: ch.faults.Load(),
	}

	ch.mu.Lock()
	for n, l := range ch.layers {
		info := LayerInfo{Layer: n, ID: l.id.String()}
		if l.foreground != nil {
			info.Foreground = producerName(l.foreground)
		}
		if l.background != nil {
			info.Background = producerName(l.background)
		}
		snap.Layers = append(snap.Layers, info)
	}
	ch.mu.Unlock()

	sort.Slice(snap.Layers, func(i, j int) bool {
		return snap.Layers[i].Layer < snap.Layers[j].Layer
	})
	return snap
}
