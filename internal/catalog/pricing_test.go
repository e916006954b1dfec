package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalUnitPrice_NoDiscount(t *testing.T) {
	assert.Equal(t, 100.00, FinalUnitPrice(100, 0))
	assert.Equal(t, 19.99, FinalUnitPrice(19.99, 0))
}

func TestFinalUnitPrice_SimpleDiscount(t *testing.T) {
	assert.Equal(t, 75.00, FinalUnitPrice(100, 25))
	assert.Equal(t, 17.99, FinalUnitPrice(19.99, 10))
	assert.Equal(t, 0.00, FinalUnitPrice(49.99, 100))
}

// Rounding is half-up at the cent boundary, decided on the exact value
// of the incoming float64.
func TestFinalUnitPrice_HalfCentBoundary(t *testing.T) {
	// 10.125 is exactly representable; half a cent rounds up.
	assert.Equal(t, 10.13, FinalUnitPrice(10.125, 0))

	// 10.005 arrives as a float64 slightly below the boundary, so it
	// rounds down, matching the arithmetic of the front end.
	assert.Equal(t, 10.00, FinalUnitPrice(10.005, 0))

	// 19.995 at 10% is 17.9955: above the half-cent, rounds up.
	assert.Equal(t, 18.00, FinalUnitPrice(19.995, 10))

	// A half-cent produced by the discount itself also rounds up.
	assert.Equal(t, 0.01, FinalUnitPrice(0.01, 50))
}

func TestFinalUnitPrice_Zero(t *testing.T) {
	assert.Equal(t, 0.00, FinalUnitPrice(0, 0))
	assert.Equal(t, 0.00, FinalUnitPrice(0, 30))
}
