package game

// slideRowRight compacts one row toward its right edge, merging equal
// neighbours. Numbers are consumed from the right edge inward so that a run
// of three equal values merges only the pair nearest the edge.
func slideRowRight(row []Tile) ([]Tile, int) {
	numbers := make([]int, 0, len(row))
	for _, tile := range row {
		if !tile.IsBlank() {
			numbers = append(numbers, tile.Value())
		}
	}

	merged, score := mergeNumbersRight(numbers)

	// merged is edge-first; the untouched left side stays blank.
	result := make([]Tile, len(row))
	for i, value := range merged {
		result[len(row)-1-i] = NumberTile(value)
	}
	return result, score
}

// mergeNumbersRight returns the merged values ordered from the right edge
// inward, plus the sum of every value produced by a merge.
func mergeNumbersRight(numbers []int) ([]int, int) {
	merged := make([]int, 0, len(numbers))
	score := 0
	for i := len(numbers) - 1; i >= 0; i-- {
		k := numbers[i]
		if i > 0 && numbers[i-1] == k {
			merged = append(merged, k+k)
			score += k + k
			i--
			continue
		}
		merged = append(merged, k)
	}
	return merged, score
}
