package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	// GIVEN
	input := map[int]float64{
		70: 87.5,
		45: 0,
		55: 50,
	}

	// WHEN
	result := SortedKeys(input)

	// THEN
	assert.Equal(t, []int{45, 55, 70}, result)
}

func TestSortedKeys_Empty(t *testing.T) {
	// GIVEN
	input := map[string]int{}

	// WHEN
	result := SortedKeys(input)

	// THEN
	assert.Empty(t, result)
}
