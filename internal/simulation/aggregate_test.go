package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, 1.0, percentile(sorted, 0))
	assert.Equal(t, 3.0, percentile(sorted, 50))
	assert.Equal(t, 5.0, percentile(sorted, 100))

	// Linear interpolation between closest ranks.
	assert.InDelta(t, 1.1, percentile(sorted, 2.5), 1e-9)
	assert.InDelta(t, 4.9, percentile(sorted, 97.5), 1e-9)

	assert.Equal(t, 7.0, percentile([]float64{7}, 97.5))
}
