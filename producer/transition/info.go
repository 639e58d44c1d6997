package transition

import (
	"fmt"
	"strings"
)

// Kind selects the composition rule applied each tick.
type Kind int

// Transition kinds.
const (
	Cut Kind = iota
	Mix
	Slide
	Push
	Wipe
)

func (k Kind) String() string {
	switch k {
	case Cut:
		return "cut"
	case Mix:
		return "mix"
	case Slide:
		return "slide"
	case Push:
		return "push"
	case Wipe:
		return "wipe"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a case-insensitive kind name to its Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "cut":
		return Cut, nil
	case "mix":
		return Mix, nil
	case "slide":
		return Slide, nil
	case "push":
		return Push, nil
	case "wipe":
		return Wipe, nil
	default:
		return 0, fmt.Errorf("transition: unknown kind %q", s)
	}
}

// Direction selects which edge the destination enters from.
type Direction int

// Transition directions.
const (
	FromLeft Direction = iota
	FromRight
)

func (d Direction) String() string {
	if d == FromRight {
		return "fromright"
	}
	return "fromleft"
}

// ParseDirection maps a case-insensitive direction name to its Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "fromleft", "left":
		return FromLeft, nil
	case "fromright", "right":
		return FromRight, nil
	default:
		return 0, fmt.Errorf("transition: unknown direction %q", s)
	}
}

// Info configures one transition: kind, direction, and duration in ticks.
// Immutable for the lifetime of the Producer it parameterizes.
type Info struct {
	Kind      Kind
	Direction Direction
	Duration  int
}

func (i Info) String() string {
	return fmt.Sprintf("%s %d %s", i.Kind, i.Duration, i.Direction)
}
