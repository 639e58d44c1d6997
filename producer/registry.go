package producer

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds a producer from string parameters, as parsed from a
// control command or a playlist entry.
type Factory func(params ...string) (FrameProducer, error)

// Registry maps producer names to factories. It is the rendezvous point
// between the control layer, playlists, and the concrete producer set.
// Concurrent-safe.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// RegisterBuiltins registers the color, clip, and still factories.
func (r *Registry) RegisterBuiltins() {
	r.Register("color", colorFactory)
	r.Register("clip", clipFactory)
	r.Register("still", stillFactory)
}

// Register adds a factory under name, replacing any previous registration.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(name)] = f
}

// Create builds a producer by registered name.
func (r *Registry) Create(name string, params ...string) (FrameProducer, error) {
	r.mu.RLock()
	f, ok := r.factories[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("producer: unknown producer %q", name)
	}
	return f(params...)
}

// CreateSpec builds a producer from a colon-separated spec such as
// "color:red:100" or "clip:media/intro.clip". A spec whose first segment is
// not a registered name is treated as a bare clip path.
func (r *Registry) CreateSpec(spec string) (FrameProducer, error) {
	parts := strings.Split(spec, ":")

	r.mu.RLock()
	_, known := r.factories[strings.ToLower(parts[0])]
	r.mu.RUnlock()

	if known && len(parts) > 1 {
		return r.Create(parts[0], parts[1:]...)
	}
	if known {
		return r.Create(parts[0])
	}
	return r.Create("clip", spec)
}

// Names returns the registered producer names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
