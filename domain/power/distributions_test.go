package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalCDF(t *testing.T) {
	d := NewDistributions()

	assert.InDelta(t, 0.5, d.NormalCDF(0), 1e-12)
	assert.InDelta(t, 0.975, d.NormalCDF(1.959963985), 1e-6)

	// Quantile and CDF are inverses
	for _, p := range []float64{0.025, 0.5, 0.8, 0.975} {
		assert.InDelta(t, p, d.NormalCDF(d.NormalQuantile(p)), 1e-9)
	}
}

func TestNoncentralTCDF(t *testing.T) {
	d := NewDistributions()

	// With zero noncentrality the distribution is symmetric about zero,
	// so the approximation must land on the standard normal's midpoint.
	assert.InDelta(t, d.NormalCDF(0), d.NoncentralTCDF(0, 100, 0), 1e-12)

	// Shifting the noncentrality moves mass to the right
	assert.Less(t, d.NoncentralTCDF(1, 200, 2), d.NoncentralTCDF(1, 200, 0))
}
