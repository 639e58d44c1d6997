// Package playlist builds producer chains from M3U media playlists. Each
// entry becomes a producer, linked to the next through the chaining
// protocol so playback hands off seamlessly from one to the following.
package playlist

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/grafov/m3u8"

	"github.com/beamcast/playout/producer"
)

// Load errors.
var (
	ErrNotMediaPlaylist = errors.New("playlist: not a media playlist")
	ErrEmptyPlaylist    = errors.New("playlist: no entries")
)

// Load parses a media playlist and returns the head of the producer chain
// it describes. Entry URIs are producer specs (see Registry.CreateSpec);
// every producer except the last must support chaining.
func Load(r io.Reader, reg *producer.Registry) (producer.FrameProducer, error) {
	pl, listType, err := m3u8.DecodeFrom(r, true)
	if err != nil {
		return nil, fmt.Errorf("playlist: decode: %w", err)
	}
	if listType != m3u8.MEDIA {
		return nil, ErrNotMediaPlaylist
	}
	mediaPl := pl.(*m3u8.MediaPlaylist)

	var head, prev producer.FrameProducer
	for _, seg := range mediaPl.Segments {
		if seg == nil {
			continue
		}
		p, err := reg.CreateSpec(seg.URI)
		if err != nil {
			return nil, fmt.Errorf("playlist: entry %q: %w", seg.URI, err)
		}
		if head == nil {
			head = p
		}
		if prev != nil {
			setter, ok := prev.(producer.FollowSetter)
			if !ok {
				return nil, fmt.Errorf("playlist: producer %T cannot chain to a successor", prev)
			}
			setter.SetFollowingProducer(p)
		}
		prev = p
	}
	if head == nil {
		return nil, ErrEmptyPlaylist
	}
	return head, nil
}

// LoadFile loads a playlist from disk.
func LoadFile(path string, reg *producer.Registry) (producer.FrameProducer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("playlist: open: %w", err)
	}
	defer f.Close()
	return Load(f, reg)
}
