package timeline

import "math"

// Spring models a damped harmonic oscillator settling from 0 toward 1,
// the physics-based progress curve behind the slide and scale animations.
// Stiffness and Damping follow the usual animation-framework convention;
// Mass defaults to 1 when left zero.
type Spring struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

// Value returns the spring position at t seconds, starting at rest from 0.
// Underdamped configurations overshoot 1 before settling; callers that feed
// the result into an opacity should pin it with Clamp01.
func (s Spring) Value(t float64) float64 {
	if t <= 0 {
		return 0
	}

	mass := s.Mass
	if mass <= 0 {
		mass = 1
	}

	w0 := math.Sqrt(s.Stiffness / mass)
	zeta := s.Damping / (2 * math.Sqrt(s.Stiffness*mass))

	switch {
	case zeta < 1:
		// Underdamped: decaying oscillation around the target
		wd := w0 * math.Sqrt(1-zeta*zeta)
		e := math.Exp(-zeta * w0 * t)
		return 1 - e*(math.Cos(wd*t)+(zeta*w0/wd)*math.Sin(wd*t))
	case zeta == 1:
		// Critically damped: fastest settle without crossing the target
		return 1 - math.Exp(-w0*t)*(1+w0*t)
	default:
		// Overdamped: two real decay modes, no oscillation
		root := math.Sqrt(zeta*zeta - 1)
		r1 := -w0 * (zeta - root)
		r2 := -w0 * (zeta + root)
		return 1 - (r2*math.Exp(r1*t)-r1*math.Exp(r2*t))/(r2-r1)
	}
}

// Pulse returns a scale factor oscillating around 1.0 with the given relative
// amplitude and frequency. After dampAfter seconds the amplitude decays
// exponentially, so the pulse fades out instead of stopping abruptly.
// A dampAfter of zero or less keeps the pulse going forever.
func Pulse(t, amplitude, hz, dampAfter float64) float64 {
	if t < 0 {
		return 1
	}

	a := amplitude
	if dampAfter > 0 && t > dampAfter {
		a *= math.Exp(-2 * (t - dampAfter))
	}

	return 1 + a*math.Sin(2*math.Pi*hz*t)
}
