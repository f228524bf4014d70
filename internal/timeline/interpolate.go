package timeline

// Clamp selects how Interpolate behaves outside the input range.
type Clamp int

const (
	ClampNone Clamp = iota
	ClampLeft
	ClampRight
	ClampBoth
)

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Interpolate maps v from [inLo, inHi] onto [outLo, outHi] linearly,
// pinning the output at the range edges according to c.
func Interpolate(v, inLo, inHi, outLo, outHi float64, c Clamp) float64 {
	if (c == ClampLeft || c == ClampBoth) && v <= inLo {
		return outLo
	}
	if (c == ClampRight || c == ClampBoth) && v >= inHi {
		return outHi
	}

	span := inHi - inLo
	if span == 0 {
		// Degenerate range: everything maps to the end value
		return outHi
	}

	return Lerp(outLo, outHi, (v-inLo)/span)
}

// Clamp01 pins v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
