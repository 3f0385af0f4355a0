package game

import (
	"math/rand"
	"sync"
)

// Dice is the randomness source for every contested action and for the
// market walk. Tests swap in FakeDice to pin outcomes.
type Dice interface {
	// Float returns a uniform value in [0,1).
	Float() float64
	// Intn returns a uniform value in [0,n).
	Intn(n int) int
}

type RandDice struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandDice(seed int64) *RandDice {
	return &RandDice{rng: rand.New(rand.NewSource(seed))}
}

func (d *RandDice) Float() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Float64()
}

func (d *RandDice) Intn(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Intn(n)
}

// FakeDice replays scripted values; it repeats the last one when exhausted.
type FakeDice struct {
	mu     sync.Mutex
	Floats []float64
	Ints   []int
	fi, ii int
}

func (d *FakeDice) Float() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Floats) == 0 {
		return 0
	}
	v := d.Floats[d.fi]
	if d.fi < len(d.Floats)-1 {
		d.fi++
	}
	return v
}

func (d *FakeDice) Intn(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Ints) == 0 {
		return 0
	}
	v := d.Ints[d.ii]
	if d.ii < len(d.Ints)-1 {
		d.ii++
	}
	if v >= n {
		v = n - 1
	}
	return v
}

// Chance is a clamped linear success model: Base plus per-factor bonuses,
// held inside [Min, Max].
type Chance struct {
	Base float64
	Min  float64
	Max  float64
}

// Value computes the effective probability for a given bonus.
func (c Chance) Value(bonus float64) float64 {
	v := c.Base + bonus
	if v < c.Min {
		v = c.Min
	}
	if v > c.Max {
		v = c.Max
	}
	return v
}

// resolve rolls once against the chance. All contested actions go through
// here so the roll-then-branch logic lives in one place.
func (e *Engine) resolve(c Chance, bonus float64) (bool, float64) {
	p := c.Value(bonus)
	return e.Dice.Float() < p, p
}
