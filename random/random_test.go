package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("same seed gives same sequence", func(t *testing.T) {
		a, b := New(42), New(42)
		for i := 0; i < 16; i++ {
			assert.Equal(t, a.Float64(), b.Float64())
		}
	})

	t.Run("zero seed is usable", func(t *testing.T) {
		src := New(0)
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	})
}

func TestDerive(t *testing.T) {
	a, b := Derive(7, 1), Derive(7, 1)
	c := Derive(7, 2)
	assert.Equal(t, a.Int63(), b.Int63())
	assert.NotEqual(t, Derive(7, 1).Int63(), c.Int63())
}

func TestUniform(t *testing.T) {
	src := New(3)
	for i := 0; i < 100; i++ {
		v := Uniform(src, 1.2, 2.0)
		assert.GreaterOrEqual(t, v, 1.2)
		assert.Less(t, v, 2.0)
	}
}

func TestShuffle(t *testing.T) {
	src := New(9)
	s := []int{1, 2, 3, 4, 5, 6}
	Shuffle(src, s)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6}, s)
}
