package game

import (
	"fmt"
	"strings"
)

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// AllDirections is the order stuck detection and the bot probe moves in.
var AllDirections = []Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps a direction name or a WASD / vi key to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w", "k":
		return Up, nil
	case "down", "s", "j":
		return Down, nil
	case "left", "a", "h":
		return Left, nil
	case "right", "d", "l":
		return Right, nil
	}
	return Up, fmt.Errorf("unknown direction %q", s)
}
