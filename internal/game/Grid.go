package game

import (
	"fmt"
	"strings"
)

// Position addresses one cell, rows top-to-bottom and columns left-to-right.
type Position struct {
	Row int
	Col int
}

// Grid is an immutable size×size matrix of tiles. Every operation returns a
// new Grid and leaves the receiver untouched.
type Grid struct {
	rows [][]Tile
}

func NewEmptyGrid(size int) Grid {
	if size < 0 {
		panic(fmt.Sprintf("game: negative grid size %d", size))
	}
	rows := make([][]Tile, size)
	for row := range rows {
		rows[row] = make([]Tile, size)
	}
	return Grid{rows: rows}
}

// NewGridFromValues builds a grid from plain numbers, 0 meaning blank.
// The input must be square.
func NewGridFromValues(values [][]int) Grid {
	rows := make([][]Tile, len(values))
	for row, line := range values {
		rows[row] = make([]Tile, len(line))
		for col, value := range line {
			if value != 0 {
				rows[row][col] = NumberTile(value)
			}
		}
	}
	return newGrid(rows)
}

// newGrid takes ownership of rows after checking the shape.
func newGrid(rows [][]Tile) Grid {
	for i, row := range rows {
		if len(row) != len(rows) {
			panic(fmt.Sprintf("game: grid row %d has %d cells, want %d", i, len(row), len(rows)))
		}
	}
	return Grid{rows: rows}
}

func (g Grid) Size() int {
	return len(g.rows)
}

func (g Grid) At(row, col int) Tile {
	return g.rows[row][col]
}

// Values returns a copy of the grid as plain numbers, 0 meaning blank.
func (g Grid) Values() [][]int {
	values := make([][]int, len(g.rows))
	for row, line := range g.rows {
		values[row] = make([]int, len(line))
		for col, tile := range line {
			values[row][col] = tile.Value()
		}
	}
	return values
}

func (g Grid) Equal(other Grid) bool {
	if len(g.rows) != len(other.rows) {
		return false
	}
	for row := range g.rows {
		if len(g.rows[row]) != len(other.rows[row]) {
			return false
		}
		for col := range g.rows[row] {
			if g.rows[row][col] != other.rows[row][col] {
				return false
			}
		}
	}
	return true
}

// Reflect reverses every row, turning a left slide into a right one.
func (g Grid) Reflect() Grid {
	rows := make([][]Tile, len(g.rows))
	for row, line := range g.rows {
		reversed := make([]Tile, len(line))
		for col, tile := range line {
			reversed[len(line)-1-col] = tile
		}
		rows[row] = reversed
	}
	return Grid{rows: rows}
}

// Transpose swaps rows and columns, turning up/down into left/right.
func (g Grid) Transpose() Grid {
	size := len(g.rows)
	rows := make([][]Tile, size)
	for j := range rows {
		rows[j] = make([]Tile, size)
	}
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			rows[j][i] = g.rows[i][j]
		}
	}
	return Grid{rows: rows}
}

// SlideRight is the one slide primitive, the other three directions are
// built from it with Reflect and Transpose.
func (g Grid) SlideRight() (Grid, int) {
	rows := make([][]Tile, len(g.rows))
	score := 0
	for row, line := range g.rows {
		slid, rowScore := slideRowRight(line)
		rows[row] = slid
		score += rowScore
	}
	return Grid{rows: rows}, score
}

func (g Grid) SlideLeft() (Grid, int) {
	slid, score := g.Reflect().SlideRight()
	return slid.Reflect(), score
}

func (g Grid) SlideUp() (Grid, int) {
	slid, score := g.Transpose().SlideLeft()
	return slid.Transpose(), score
}

func (g Grid) SlideDown() (Grid, int) {
	slid, score := g.Transpose().SlideRight()
	return slid.Transpose(), score
}

func (g Grid) Slide(direction Direction) (Grid, int) {
	switch direction {
	case Up:
		return g.SlideUp()
	case Down:
		return g.SlideDown()
	case Left:
		return g.SlideLeft()
	case Right:
		return g.SlideRight()
	default:
		panic(fmt.Sprintf("game: unknown direction %d", int(direction)))
	}
}

// BlankPositions lists every blank cell in row-major order.
func (g Grid) BlankPositions() []Position {
	var positions []Position
	for row, line := range g.rows {
		for col, tile := range line {
			if tile.IsBlank() {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

// WithTile returns a copy of the grid with one cell replaced.
func (g Grid) WithTile(pos Position, tile Tile) Grid {
	rows := make([][]Tile, len(g.rows))
	for row, line := range g.rows {
		rows[row] = append([]Tile(nil), line...)
	}
	rows[pos.Row][pos.Col] = tile
	return Grid{rows: rows}
}

// Contains reports whether any cell holds value.
func (g Grid) Contains(value int) bool {
	for _, line := range g.rows {
		for _, tile := range line {
			if tile.Value() == value {
				return true
			}
		}
	}
	return false
}

func (g Grid) MaxTile() int {
	best := 0
	for _, line := range g.rows {
		for _, tile := range line {
			best = max(best, tile.Value())
		}
	}
	return best
}

// TileCount is the number of non-blank cells.
func (g Grid) TileCount() int {
	count := 0
	for _, line := range g.rows {
		for _, tile := range line {
			if !tile.IsBlank() {
				count++
			}
		}
	}
	return count
}

// Sum adds up every tile value.
func (g Grid) Sum() int {
	sum := 0
	for _, line := range g.rows {
		for _, tile := range line {
			sum += tile.Value()
		}
	}
	return sum
}

func (g Grid) String() string {
	var sb strings.Builder
	for _, line := range g.rows {
		for col, tile := range line {
			if col > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%4s", tile.String()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
