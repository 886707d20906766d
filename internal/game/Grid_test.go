package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func row(values ...int) []Tile {
	tiles := make([]Tile, len(values))
	for i, value := range values {
		if value != 0 {
			tiles[i] = NumberTile(value)
		}
	}
	return tiles
}

func TestSlideRowRight(t *testing.T) {
	tests := []struct {
		name      string
		input     []Tile
		expected  []Tile
		wantScore int
	}{
		{"empty row", row(0, 0, 0, 0), row(0, 0, 0, 0), 0},
		{"all distinct", row(2, 4, 8, 16), row(2, 4, 8, 16), 0},
		{"distinct with gaps", row(2, 0, 4, 0), row(0, 0, 2, 4), 0},
		{"simple merge", row(2, 2, 0, 0), row(0, 0, 0, 4), 4},
		{"merge across gap", row(2, 0, 2, 0), row(0, 0, 0, 4), 4},
		{"three equal merge nearest edge", row(2, 2, 2, 0), row(0, 0, 2, 4), 4},
		{"four equal merge pairwise", row(2, 2, 2, 2), row(0, 0, 4, 4), 8},
		{"merged tile does not chain", row(2, 2, 4, 0), row(0, 0, 4, 4), 4},
		{"two different merges", row(4, 4, 2, 2), row(0, 0, 8, 4), 12},
		{"single tile", row(0, 8, 0, 0), row(0, 0, 0, 8), 0},
		{"already packed", row(0, 0, 4, 2), row(0, 0, 4, 2), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, score := slideRowRight(tt.input)
			require.Equal(t, tt.expected, got)
			require.Equal(t, tt.wantScore, score)
		})
	}
}

func TestSlideRowRight_DoesNotMutateInput(t *testing.T) {
	input := row(2, 2, 0, 4)
	_, _ = slideRowRight(input)
	require.Equal(t, row(2, 2, 0, 4), input)
}

func sampleGrid() Grid {
	return NewGridFromValues([][]int{
		{2, 2, 0, 4},
		{0, 4, 4, 0},
		{2, 0, 2, 2},
		{0, 0, 0, 2},
	})
}

func TestGridSlides(t *testing.T) {
	tests := []struct {
		direction Direction
		expected  [][]int
		score     int
	}{
		{Right, [][]int{
			{0, 0, 4, 4},
			{0, 0, 0, 8},
			{0, 0, 2, 4},
			{0, 0, 0, 2},
		}, 16},
		{Left, [][]int{
			{4, 4, 0, 0},
			{8, 0, 0, 0},
			{4, 2, 0, 0},
			{2, 0, 0, 0},
		}, 16},
		{Up, [][]int{
			{4, 2, 4, 4},
			{0, 4, 2, 4},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}, 8},
		{Down, [][]int{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 2, 4, 4},
			{4, 4, 2, 4},
		}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.direction.String(), func(t *testing.T) {
			g := sampleGrid()
			got, score := g.Slide(tt.direction)
			require.Equal(t, tt.expected, got.Values())
			require.Equal(t, tt.score, score)
			require.True(t, g.Equal(sampleGrid()), "slide must not mutate its input")
		})
	}
}

func TestSlideRight_PairNearestEdgeMergesFirst(t *testing.T) {
	g := NewGridFromValues([][]int{
		{2, 2, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	got, score := g.SlideRight()
	require.Equal(t, []int{0, 0, 4, 4}, got.Values()[0])
	require.Equal(t, 4, score)
	require.Equal(t, g.Sum(), got.Sum())
}

func TestSlideRight_MergeLocality(t *testing.T) {
	g := NewGridFromValues([][]int{
		{2, 2, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	got, score := g.SlideRight()
	require.Equal(t, []int{0, 0, 2, 4}, got.Values()[0])
	require.Equal(t, 4, score)
}

func stuckGrid() Grid {
	return NewGridFromValues([][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})
}

func TestStuckGridSlidesAreNoOps(t *testing.T) {
	g := stuckGrid()
	for _, direction := range AllDirections {
		got, score := g.Slide(direction)
		require.True(t, got.Equal(g), "direction %s", direction)
		require.Zero(t, score, "direction %s", direction)
	}
}

func randomGrid(rng *rand.Rand, size int) Grid {
	values := make([][]int, size)
	for r := range values {
		values[r] = make([]int, size)
		for c := range values[r] {
			if rng.IntN(3) == 0 {
				continue
			}
			values[r][c] = 1 << (1 + rng.IntN(4))
		}
	}
	return NewGridFromValues(values)
}

func TestTransposeAndReflectAreInvolutions(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		g := randomGrid(rng, 1+i%6)
		require.True(t, g.Transpose().Transpose().Equal(g))
		require.True(t, g.Reflect().Reflect().Equal(g))
	}
}

func TestTranspose(t *testing.T) {
	g := NewGridFromValues([][]int{
		{2, 4, 8},
		{0, 16, 0},
		{32, 0, 64},
	})
	require.Equal(t, [][]int{
		{2, 0, 32},
		{4, 16, 0},
		{8, 0, 64},
	}, g.Transpose().Values())
	require.Equal(t, [][]int{
		{8, 4, 2},
		{0, 16, 0},
		{64, 0, 32},
	}, g.Reflect().Values())
}

func TestTranspose_EmptyGrid(t *testing.T) {
	g := NewEmptyGrid(0)
	require.Equal(t, 0, g.Transpose().Size())
	got, score := g.SlideUp()
	require.Equal(t, 0, got.Size())
	require.Zero(t, score)
}

func TestSlidesConserveValue(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	for i := 0; i < 500; i++ {
		g := randomGrid(rng, 4)
		for _, direction := range AllDirections {
			got, score := g.Slide(direction)
			require.Equal(t, g.Sum(), got.Sum())
			require.Equal(t, g.Size(), got.Size())
			if got.TileCount() == g.TileCount() {
				require.Zero(t, score)
			} else {
				require.Less(t, got.TileCount(), g.TileCount())
				require.Positive(t, score)
			}
		}
	}
}

func TestBlankPositions(t *testing.T) {
	g := NewGridFromValues([][]int{
		{2, 0, 4},
		{0, 8, 2},
		{4, 2, 0},
	})
	require.Equal(t, []Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 2, Col: 2}}, g.BlankPositions())
	require.Empty(t, stuckGrid().BlankPositions())
	require.Len(t, NewEmptyGrid(4).BlankPositions(), 16)
}

func TestWithTile_CopiesGrid(t *testing.T) {
	g := NewEmptyGrid(2)
	updated := g.WithTile(Position{Row: 1, Col: 0}, NumberTile(4))
	require.True(t, g.At(1, 0).IsBlank())
	require.Equal(t, 4, updated.At(1, 0).Value())
}

func TestNewGridFromValues_PanicsOnRaggedRows(t *testing.T) {
	require.Panics(t, func() {
		NewGridFromValues([][]int{{2, 0}, {0}})
	})
	require.Panics(t, func() {
		NewGridFromValues([][]int{{2, 0, 0}, {0, 0, 0}})
	})
}

func TestGridSnapshotHelpers(t *testing.T) {
	g := NewGridFromValues([][]int{
		{2, 0},
		{2048, 4},
	})
	require.Equal(t, 2048, g.MaxTile())
	require.Equal(t, 3, g.TileCount())
	require.Equal(t, 2054, g.Sum())
	require.True(t, g.Contains(2048))
	require.False(t, g.Contains(8))
	require.Equal(t, "   2    _\n2048    4\n", g.String())
}

func TestParseDirection(t *testing.T) {
	for input, want := range map[string]Direction{
		"up": Up, "W": Up, "k": Up,
		"down": Down, "s": Down, "j": Down,
		"Left": Left, "a": Left, "h": Left,
		" right ": Right, "d": Right, "l": Right,
	} {
		got, err := ParseDirection(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := ParseDirection("sideways")
	require.Error(t, err)
}
