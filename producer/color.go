package producer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/beamcast/playout/media"
)

// Named colors accepted by the color producer alongside #RRGGBB hex.
var namedColors = map[string]string{
	"black":   "000000",
	"white":   "ffffff",
	"red":     "ff0000",
	"green":   "00ff00",
	"blue":    "0000ff",
	"magenta": "ff00ff",
	"empty":   "000000",
}

// Color renders constant-color frames with silent audio. An optional frame
// limit makes it exhaust after that many ticks, enabling chain handoff; the
// zero limit renders forever.
type Color struct {
	ChainLink

	payload []byte
	limit   int

	rendered int
	factory  media.FrameFactory
}

// NewColor creates a color producer. spec is a named color or "#RRGGBB";
// limit caps the number of frames rendered, 0 meaning unlimited.
func NewColor(spec string, limit int) (*Color, error) {
	s := strings.ToLower(spec)
	if named, ok := namedColors[s]; ok {
		s = named
	} else {
		s = strings.TrimPrefix(s, "#")
	}
	if len(s) != 6 {
		return nil, fmt.Errorf("producer: bad color %q", spec)
	}
	rgb, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("producer: bad color %q: %w", spec, err)
	}
	return &Color{payload: rgb, limit: limit}, nil
}

func colorFactory(params ...string) (FrameProducer, error) {
	if len(params) < 1 {
		return nil, fmt.Errorf("producer: color needs a color spec")
	}
	limit := 0
	if len(params) > 1 {
		n, err := strconv.Atoi(params[1])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("producer: bad color frame limit %q", params[1])
		}
		limit = n
	}
	return NewColor(params[0], limit)
}

// Initialize stores the frame factory. Safe to call repeatedly.
func (c *Color) Initialize(factory media.FrameFactory) error {
	c.factory = factory
	return nil
}

// RenderFrame returns one solid-color frame per tick until the limit is
// reached, then nil.
func (c *Color) RenderFrame() (*media.CompositeFrame, error) {
	if c.factory == nil {
		return nil, fmt.Errorf("producer: color not initialized")
	}
	if c.limit > 0 && c.rendered >= c.limit {
		return nil, nil
	}
	c.rendered++

	f := c.factory.NewFrame()
	f.Data = c.payload
	return media.SingleLayer(c.factory.Format(), f), nil
}

func (c *Color) String() string {
	return fmt.Sprintf("color #%s", hex.EncodeToString(c.payload))
}
