package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChanceValue_Clamping(t *testing.T) {
	c := Chance{Base: 0.30, Min: 0.05, Max: 0.95}

	assert.InDelta(t, 0.30, c.Value(0), 1e-9)
	assert.InDelta(t, 0.55, c.Value(0.25), 1e-9)
	assert.InDelta(t, 0.95, c.Value(5.0), 1e-9)
	assert.InDelta(t, 0.05, c.Value(-5.0), 1e-9)
}

func TestFakeDice_RepeatsLastValue(t *testing.T) {
	d := &FakeDice{Floats: []float64{0.1, 0.9}, Ints: []int{3}}

	assert.Equal(t, 0.1, d.Float())
	assert.Equal(t, 0.9, d.Float())
	assert.Equal(t, 0.9, d.Float())

	assert.Equal(t, 3, d.Intn(10))
	// Clamped when the scripted value is out of range.
	assert.Equal(t, 1, d.Intn(2))
}

func TestRandDice_Bounds(t *testing.T) {
	d := NewRandDice(42)
	for i := 0; i < 100; i++ {
		f := d.Float()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
		n := d.Intn(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
}
