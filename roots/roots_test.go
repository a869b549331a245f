package roots

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func containsRoot(roots []float64, want, tol float64) bool {
	for _, r := range roots {
		if almostEqual(r, want, tol) {
			return true
		}
	}
	return false
}

func TestPolyEval(t *testing.T) {
	// x^2 - 3x + 2 at x=5 => 25-15+2 = 12
	assert.Equal(t, 12.0, PolyEval([]float64{1, -3, 2}, 5))
}

func TestPolyDeriv(t *testing.T) {
	// d/dx(x^3 - 3x^2 + 2) = 3x^2 - 6x
	got := PolyDeriv([]float64{1, -3, 0, 2})
	assert.Equal(t, []float64{3, -6, 0}, got)
}

func TestSolveQuadraticTwoRoots(t *testing.T) {
	// (x-2)(x-3) = x^2 - 5x + 6, roots 2 and 3
	r := SolveQuadratic(1, -5, 6)
	assert.True(t, containsRoot(r, 2, 1e-9), "roots %v missing 2", r)
	assert.True(t, containsRoot(r, 3, 1e-9), "roots %v missing 3", r)
}

func TestSolveQuadraticNoRealRoots(t *testing.T) {
	// x^2 + 1 = 0 has no real roots
	r := SolveQuadratic(1, 0, 1)
	assert.Empty(t, r)
}

func TestSolveCubicThreeRealRoots(t *testing.T) {
	// (x-1)(x-2)(x-3) = x^3 - 6x^2 + 11x - 6, roots 1,2,3
	r := SolveCubic(1, -6, 11, -6)
	for _, want := range []float64{1, 2, 3} {
		assert.True(t, containsRoot(r, want, 1e-6), "roots %v missing %v", r, want)
	}
}

func TestSolveCubicDegeneratesToQuadratic(t *testing.T) {
	// a=0: 2x^2 - 4x + 2 = 0 => (x-1)^2 = 0, root at x=1
	r := SolveCubic(0, 2, -4, 2)
	assert.True(t, containsRoot(r, 1, 1e-9), "roots %v missing 1", r)
}

func TestSolveQuartMonicBiquadratic(t *testing.T) {
	// (x^2-1)(x^2-4) = x^4 - 5x^2 + 4, roots +-1, +-2; only non-negative kept
	r := SolveQuartMonic(0, -5, 0, 4)
	assert.True(t, containsRoot(r, 1, 1e-6), "roots %v missing 1", r)
	assert.True(t, containsRoot(r, 2, 1e-6), "roots %v missing 2", r)
}

func TestShrinkIntervalConvergesToRoot(t *testing.T) {
	// f(x) = x^2 - 2, root at sqrt(2) in [0,2]
	f := func(x float64) float64 { return x*x - 2 }
	df := func(x float64) float64 { return 2 * x }
	x := ShrinkInterval(f, df, 0, 2)
	assert.InDelta(t, math.Sqrt2, x, 1e-9)
}

func TestShrinkIntervalReturnsEndpointOnExactRoot(t *testing.T) {
	f := func(x float64) float64 { return x - 3 }
	df := func(x float64) float64 { return 1 }
	assert.Equal(t, 3.0, ShrinkInterval(f, df, 3, 5), "exact root at lower bound")
}
