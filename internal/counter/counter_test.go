package counter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/sqlclause/internal/counter"
)

func TestNext(t *testing.T) {
	c := counter.New(1)
	assert.Equal(t, 1, c.Next(true))
	assert.Equal(t, 2, c.Next(false))
	assert.Equal(t, 2, c.Next(true))
	assert.Equal(t, 3, c.Current())
}

func TestStart(t *testing.T) {
	c := counter.New(5)
	got := []int{c.Next(true), c.Next(true), c.Next(true)}
	assert.Equal(t, []int{5, 6, 7}, got)
	assert.Equal(t, 8, c.Current())
}

func TestNonConsumingLeavesCounter(t *testing.T) {
	c := counter.New(3)
	for range 10 {
		c.Next(false)
	}
	assert.Equal(t, 3, c.Current())
}
