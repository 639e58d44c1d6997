package producer

import (
	"fmt"
	"os"

	"github.com/beamcast/playout/media"
)

// Still renders the same picture payload forever with silent audio. The
// payload is read whole from a file at initialization.
type Still struct {
	ChainLink

	path    string
	payload []byte
	factory media.FrameFactory
}

// NewStill creates a still producer backed by the file at path.
func NewStill(path string) *Still {
	return &Still{path: path}
}

func stillFactory(params ...string) (FrameProducer, error) {
	if len(params) < 1 || params[0] == "" {
		return nil, fmt.Errorf("producer: still needs a path")
	}
	return NewStill(params[0]), nil
}

// Initialize loads the payload if it has not been loaded yet.
func (s *Still) Initialize(factory media.FrameFactory) error {
	s.factory = factory
	if s.payload != nil {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("producer: load still: %w", err)
	}
	s.payload = data
	return nil
}

// RenderFrame always returns a frame; a still never exhausts.
func (s *Still) RenderFrame() (*media.CompositeFrame, error) {
	if s.factory == nil {
		return nil, fmt.Errorf("producer: still not initialized")
	}
	f := s.factory.NewFrame()
	f.Data = s.payload
	return media.SingleLayer(s.factory.Format(), f), nil
}

func (s *Still) String() string {
	return fmt.Sprintf("still %s", s.path)
}
