package easing

import "math"

// InverseIterations is the number of bisection steps used by InverseEase on
// the upper half of the curve, where no closed form exists. Each step halves
// the bracket, so 20 iterations bound the error by 2^-20 (~1e-6).
const InverseIterations = 20

// Ease applies cubic ease-in-out to a progress value t in [0,1].
// Slow start, fast middle, slow end: 4t³ below the midpoint, the mirrored
// complement above it. Ease(0)=0, Ease(0.5)=0.5, Ease(1)=1, monotonic.
func Ease(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// InverseEase returns the t for which Ease(t) == y, for y in [0,1].
// The lower half inverts analytically via cube root; the upper half has no
// closed form, so a fixed-count binary search over the monotonic forward
// function is used instead. Worst-case error is below 2^-InverseIterations.
func InverseEase(y float64) float64 {
	y = Clamp01(y)
	if y < 0.5 {
		return math.Cbrt(y / 4)
	}

	lo, hi := 0.5, 1.0
	for i := 0; i < InverseIterations; i++ {
		mid := (lo + hi) / 2
		if Ease(mid) < y {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// Lerp performs linear interpolation between a and b.
// t=0 returns a, t=1 returns b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
