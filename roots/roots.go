// Package roots implements the closed-form polynomial root kernel shared by
// the Step-1 and Step-2 solvers: a Cardano cubic solver, a quartic solver via
// the cubic resolvent, and a hybrid Newton/bisection refinement step. All
// root sets are filtered to non-negative values, since every caller in this
// module is solving for a segment duration.
package roots

import "math"

// TOLERANCE is the convergence criterion used by ShrinkInterval.
const TOLERANCE = 1e-14

// MaxIterations bounds the Newton/bisection refinement loop.
const MaxIterations = 128

const eps = 2.2204460492503131e-16 // float64 machine epsilon

const (
	cos120 = -0.5
	sin120 = 0.86602540378443864676 // sqrt(3)/2
)

// PolyEval evaluates a polynomial given in descending-degree coefficient
// order (coeffs[0] is the highest-degree term) at x.
func PolyEval(coeffs []float64, x float64) float64 {
	result := 0.0
	for _, c := range coeffs {
		result = result*x + c
	}
	return result
}

// PolyDeriv returns the coefficients (descending order) of the derivative of
// the polynomial given by coeffs.
func PolyDeriv(coeffs []float64) []float64 {
	n := len(coeffs) - 1
	if n <= 0 {
		return []float64{0}
	}
	deriv := make([]float64, n)
	for i := 0; i < n; i++ {
		deriv[i] = coeffs[i] * float64(n-i)
	}
	return deriv
}

// appendNonNegative appends x to roots if x >= -1e-9 (clamped to 0),
// matching the source's "positive root set" discipline for segment durations.
func appendNonNegative(roots []float64, x float64) []float64 {
	if x >= -1e-9 {
		if x < 0 {
			x = 0
		}
		return append(roots, x)
	}
	return roots
}

// SolveQuadratic solves a*x^2+b*x+c=0, returning non-negative real roots.
func SolveQuadratic(a, b, c float64) []float64 {
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return appendNonNegative(nil, -c/b)
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	var roots []float64
	roots = appendNonNegative(roots, (-b+sq)/(2*a))
	roots = appendNonNegative(roots, (-b-sq)/(2*a))
	return roots
}

// SolveCubic solves a*x^3+b*x^2+c*x+d=0 for all non-negative real roots,
// using Cardano's method with the standard 120-degree-rotated complex-root
// trick for the three-real-roots case. Degenerates to the quadratic/linear
// solver when the leading coefficient(s) vanish.
func SolveCubic(a, b, c, d float64) []float64 {
	if math.Abs(a) < eps {
		return SolveQuadratic(b, c, d)
	}

	// Normalize to monic x^3 + A x^2 + B x + C = 0.
	A := b / a
	B := c / a
	C := d / a

	// Depress: x = t - A/3  =>  t^3 + p t + q = 0
	p := B - A*A/3.0
	q := 2.0*A*A*A/27.0 - A*B/3.0 + C
	offset := A / 3.0

	discriminant := q*q/4.0 + p*p*p/27.0

	var roots []float64
	switch {
	case discriminant > TOLERANCE:
		sq := math.Sqrt(discriminant)
		u := cubeRoot(-q/2.0 + sq)
		v := cubeRoot(-q/2.0 - sq)
		roots = appendNonNegative(roots, u+v-offset)
	case discriminant > -TOLERANCE:
		// Discriminant ~ 0: a double and a simple root.
		u := cubeRoot(-q / 2.0)
		roots = appendNonNegative(roots, 2.0*u-offset)
		roots = appendNonNegative(roots, -u-offset)
	default:
		// Three distinct real roots, via the trigonometric form.
		r := math.Sqrt(-p * p * p / 27.0)
		phi := math.Acos(clamp(-q/(2.0*r), -1, 1))
		m := 2.0 * math.Sqrt(-p/3.0)
		roots = appendNonNegative(roots, m*math.Cos(phi/3.0)-offset)
		roots = appendNonNegative(roots, m*math.Cos(phi/3.0+2.0*math.Pi/3.0)-offset)
		roots = appendNonNegative(roots, m*math.Cos(phi/3.0+4.0*math.Pi/3.0)-offset)
	}
	return roots
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func cubeRoot(x float64) float64 {
	if x < 0 {
		return -math.Cbrt(-x)
	}
	return math.Cbrt(x)
}

// complexRoot128 rotates a complex cube-root candidate by 120 degrees; kept
// for documentation purposes alongside cos120/sin120 even though the
// trigonometric branch above is used directly (equivalent result, clearer
// control flow in Go than re-deriving the complex-pair form each time).
func complexRoot128(re, im float64) (float64, float64) {
	return re*cos120 - im*sin120, re*sin120 + im*cos120
}

// SolveQuartMonic solves x^4+a*x^3+b*x^2+c*x+d=0 for all non-negative real
// roots. Builds the cubic resolvent, picks the root of largest magnitude,
// factors into two quadratics, and collects real roots from each.
func SolveQuartMonic(a, b, c, d float64) []float64 {
	// Depress: x = y - a/4
	a2 := a * a
	p := b - 3.0*a2/8.0
	q := a2*a/8.0 - a*b/2.0 + c
	r := -3.0*a2*a2/256.0 + a2*b/16.0 - a*c/4.0 + d
	offset := a / 4.0

	if math.Abs(q) < 1e-12 {
		// Biquadratic: y^4 + p y^2 + r = 0
		var roots []float64
		for _, y2 := range SolveQuadratic(1, p, r) {
			if y2 < 0 {
				continue
			}
			y := math.Sqrt(y2)
			roots = appendNonNegative(roots, y-offset)
			roots = appendNonNegative(roots, -y-offset)
		}
		return roots
	}

	// Cubic resolvent: z^3 + 2p z^2 + (p^2-4r) z - q^2 = 0
	resolventRoots := SolveCubicAll(1, 2*p, p*p-4*r, -q*q)
	if len(resolventRoots) == 0 {
		return nil
	}
	z := resolventRoots[0]
	for _, cand := range resolventRoots {
		if math.Abs(cand) > math.Abs(z) {
			z = cand
		}
	}
	if z <= 0 {
		return nil
	}

	sz := math.Sqrt(z)
	// Factor into (y^2 + sz*y + (p+z)/2 - q/(2*sz)) * (y^2 - sz*y + (p+z)/2 + q/(2*sz))
	half := (p + z) / 2.0
	qOver := q / (2.0 * sz)

	var roots []float64
	roots = append(roots, SolveQuadratic(1, sz, half-qOver)...)
	roots = append(roots, SolveQuadratic(1, -sz, half+qOver)...)

	out := make([]float64, 0, len(roots))
	for _, y := range roots {
		out = appendNonNegative(out, y-offset)
	}
	return out
}

// SolveCubicAll is like SolveCubic but returns all real roots (including
// negative ones), needed internally by the quartic resolvent step which must
// not discard a negative resolvent root before testing its magnitude.
func SolveCubicAll(a, b, c, d float64) []float64 {
	if math.Abs(a) < eps {
		return solveQuadraticAll(b, c, d)
	}
	A := b / a
	B := c / a
	C := d / a
	p := B - A*A/3.0
	q := 2.0*A*A*A/27.0 - A*B/3.0 + C
	offset := A / 3.0
	discriminant := q*q/4.0 + p*p*p/27.0

	var roots []float64
	switch {
	case discriminant > TOLERANCE:
		sq := math.Sqrt(discriminant)
		u := cubeRoot(-q/2.0 + sq)
		v := cubeRoot(-q/2.0 - sq)
		roots = append(roots, u+v-offset)
	case discriminant > -TOLERANCE:
		u := cubeRoot(-q / 2.0)
		roots = append(roots, 2.0*u-offset, -u-offset)
	default:
		r := math.Sqrt(-p * p * p / 27.0)
		phi := math.Acos(clamp(-q/(2.0*r), -1, 1))
		m := 2.0 * math.Sqrt(-p/3.0)
		roots = append(roots,
			m*math.Cos(phi/3.0)-offset,
			m*math.Cos(phi/3.0+2.0*math.Pi/3.0)-offset,
			m*math.Cos(phi/3.0+4.0*math.Pi/3.0)-offset,
		)
	}
	return roots
}

func solveQuadraticAll(a, b, c float64) []float64 {
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// ShrinkInterval refines a root of f, known to lie in [l, h] with f(l) and
// f(h) of opposite sign, via a hybrid Newton/bisection method: Newton's step
// is taken when it stays inside the bracket, bisection otherwise. Stops when
// the bracket width drops below TOLERANCE or MaxIterations is exhausted.
func ShrinkInterval(f, deriv func(float64) float64, l, h float64) float64 {
	fl := f(l)
	fh := f(h)
	if fl == 0 {
		return l
	}
	if fh == 0 {
		return h
	}
	if fl*fh > 0 {
		// Not a proper bracket; fall back to the midpoint as the best guess.
		return (l + h) / 2.0
	}

	x := (l + h) / 2.0
	for i := 0; i < MaxIterations; i++ {
		fx := f(x)
		dfx := deriv(x)

		var next float64
		useNewton := math.Abs(dfx) > 16.0*eps*math.Max(1.0, math.Abs(x))
		if useNewton {
			next = x - fx/dfx
		}
		if !useNewton || next <= l || next >= h {
			next = (l + h) / 2.0
		}

		fxNext := f(next)
		if fxNext == 0 || math.Abs(h-l) < TOLERANCE {
			return next
		}

		if fl*fxNext < 0 {
			h = next
			fh = fxNext
		} else {
			l = next
			fl = fxNext
		}
		x = next
	}
	_ = fh
	return x
}
