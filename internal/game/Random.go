package game

import (
	"math/rand/v2"
	"time"
)

// RandomSource picks uniformly from a non-empty ordered sequence of n items
// by returning an index in [0, n).
type RandomSource interface {
	Pick(n int) int
}

type pcgSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a seeded source. A zero seed uses the clock.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &pcgSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *pcgSource) Pick(n int) int {
	return s.rng.IntN(n)
}

// FixedSource replays a scripted list of picks, wrapping around when it runs
// out. Each pick is reduced modulo n.
type FixedSource struct {
	picks []int
	next  int
}

func NewFixedSource(picks ...int) *FixedSource {
	return &FixedSource{picks: picks}
}

func (s *FixedSource) Pick(n int) int {
	if len(s.picks) == 0 {
		return 0
	}
	pick := s.picks[s.next%len(s.picks)]
	s.next++
	return pick % n
}
