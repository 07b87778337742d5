package engine

import (
	"math/rand"
	"time"
)

// Roller is the single source of randomness: dice throws and card draws.
// Tests inject a scripted one so transitions are deterministic.
type Roller interface {
	Roll() (int, int)
	Intn(n int) int
}

type randRoller struct {
	rng *rand.Rand
}

func NewRoller() Roller {
	return &randRoller{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func NewSeededRoller(seed int64) Roller {
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *randRoller) Roll() (int, int) {
	return r.rng.Intn(6) + 1, r.rng.Intn(6) + 1
}

func (r *randRoller) Intn(n int) int {
	return r.rng.Intn(n)
}
