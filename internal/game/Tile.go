package game

import "strconv"

// Tile is the content of one grid cell: either blank or a number.
// The zero value is the blank tile.
type Tile struct {
	value int
}

var BlankTile = Tile{}

// NumberTile returns a tile holding v. v must be positive.
func NumberTile(v int) Tile {
	if v <= 0 {
		panic("game: number tile must be positive, got " + strconv.Itoa(v))
	}
	return Tile{value: v}
}

func (t Tile) IsBlank() bool {
	return t.value == 0
}

// Value returns the tile's number, or 0 for a blank tile.
func (t Tile) Value() int {
	return t.value
}

func (t Tile) String() string {
	if t.IsBlank() {
		return "_"
	}
	return strconv.Itoa(t.value)
}
