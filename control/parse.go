// Package control exposes the playout stage over a line-based TCP
// protocol: LOAD, PLAY, STOP, CLEAR, INFO, and BYE commands address
// channels and layers, with an optional transition clause on PLAY.
package control

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beamcast/playout/producer/transition"
)

// Command is one parsed control line.
type Command struct {
	Name    string
	Channel int
	Layer   int

	// Spec is the producer spec on LOAD, or the optional inline spec on
	// PLAY.
	Spec string

	// Transition is the optional transition clause on PLAY.
	Transition *transition.Info
}

// ParseCommand parses a single control line, e.g.
//
//	LOAD 1-10 color:red
//	PLAY 1-10 clip:intro.clip MIX 25 FROMLEFT
//	PLAY 1-10
//	STOP 1-10
//	CLEAR 1
//	INFO 1
func ParseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := &Command{Name: strings.ToUpper(fields[0])}
	args := fields[1:]

	switch cmd.Name {
	case "LOAD":
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: LOAD <channel>-<layer> <producer>", ErrMissingArg)
		}
		if err := parseChannelLayer(cmd, args[0]); err != nil {
			return nil, err
		}
		cmd.Spec = args[1]
		return cmd, nil

	case "PLAY":
		if len(args) < 1 {
			return nil, fmt.Errorf("%w: PLAY <channel>-<layer> [<producer>] [<transition>]", ErrMissingArg)
		}
		if err := parseChannelLayer(cmd, args[0]); err != nil {
			return nil, err
		}
		rest := args[1:]
		if len(rest) > 0 {
			if _, err := transition.ParseKind(rest[0]); err != nil {
				cmd.Spec = rest[0]
				rest = rest[1:]
			}
		}
		if len(rest) > 0 {
			info, err := parseTransition(rest)
			if err != nil {
				return nil, err
			}
			cmd.Transition = info
		}
		return cmd, nil

	case "STOP":
		if len(args) < 1 {
			return nil, fmt.Errorf("%w: STOP <channel>-<layer>", ErrMissingArg)
		}
		if err := parseChannelLayer(cmd, args[0]); err != nil {
			return nil, err
		}
		return cmd, nil

	case "CLEAR":
		if len(args) < 1 {
			return nil, fmt.Errorf("%w: CLEAR <channel>", ErrMissingArg)
		}
		ch, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, &ParseError{Field: "channel", Err: err}
		}
		cmd.Channel = ch
		return cmd, nil

	case "INFO":
		cmd.Channel = -1
		if len(args) > 0 {
			ch, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, &ParseError{Field: "channel", Err: err}
			}
			cmd.Channel = ch
		}
		return cmd, nil

	case "BYE":
		return cmd, nil

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Name)
	}
}

// parseChannelLayer parses a "<channel>-<layer>" address; a bare channel
// number addresses layer 0.
func parseChannelLayer(cmd *Command, s string) error {
	chPart, layerPart, hasLayer := strings.Cut(s, "-")

	ch, err := strconv.Atoi(chPart)
	if err != nil {
		return &ParseError{Field: "channel", Err: err}
	}
	cmd.Channel = ch

	if hasLayer {
		layer, err := strconv.Atoi(layerPart)
		if err != nil {
			return &ParseError{Field: "layer", Err: err}
		}
		cmd.Layer = layer
	}
	return nil
}

// parseTransition parses "<kind> <duration> [<direction>]".
func parseTransition(fields []string) (*transition.Info, error) {
	kind, err := transition.ParseKind(fields[0])
	if err != nil {
		return nil, &ParseError{Field: "transition kind", Err: err}
	}
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: transition duration", ErrMissingArg)
	}
	duration, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, &ParseError{Field: "transition duration", Err: err}
	}
	if duration <= 0 {
		return nil, &ParseError{Field: "transition duration",
			Err: fmt.Errorf("must be positive, got %d", duration)}
	}

	info := &transition.Info{Kind: kind, Duration: duration}
	if len(fields) > 2 {
		dir, err := transition.ParseDirection(fields[2])
		if err != nil {
			return nil, &ParseError{Field: "transition direction", Err: err}
		}
		info.Direction = dir
	}
	return info, nil
}
