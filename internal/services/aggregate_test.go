package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecileCeil(t *testing.T) {
	// ceil(mean/10)*10
	assert.Equal(t, 9000, decileCeil(9000))
	assert.Equal(t, 8670, decileCeil(8666.6667))
	assert.Equal(t, 10, decileCeil(1))
	assert.Equal(t, 10, decileCeil(10))
	assert.Equal(t, 0, decileCeil(0))
}

func TestRoundTenth(t *testing.T) {
	assert.Equal(t, 8.3, roundTenth(8.333333))
	assert.Equal(t, 9.6, roundTenth(9.55))
	assert.Equal(t, 10.0, roundTenth(10))
}

func TestAverageCostOf(t *testing.T) {
	assert.Equal(t, 8670, averageCostOf([]meanResult{{Value: 8666.6667}}))

	// removing the last course resets the derived field
	assert.Equal(t, 0, averageCostOf(nil))
	assert.Equal(t, 0, averageCostOf([]meanResult{}))
}

func TestAverageRatingOf(t *testing.T) {
	assert.Equal(t, 8.3, averageRatingOf([]meanResult{{Value: 8.333333}}))

	// removing the last review resets the derived field
	assert.Equal(t, 0.0, averageRatingOf(nil))
}
