package borepix

import "math"

// LUT maps every 8-bit intensity to an RGB triple. A LUT is built once from
// a stop table and never mutated afterwards, so concurrent reads need no
// locking.
type LUT [256]RGB

// BuildLUT expands a color-stop table into a dense 256-entry lookup table.
//
// Each pair of adjacent stops is interpolated linearly per channel across
// the inclusive position range [lo.Pos, hi.Pos]. A position shared between
// two segments is the endpoint of both interpolations, so both produce the
// stop color exactly; the second write is identical to the first rather than
// a correction. Identical stop tables always yield bit-identical LUTs.
//
// Stop tables violating the invariants (see ColorStop) fail with ErrConfig
// before any entry is written.
func BuildLUT(stops []ColorStop) (*LUT, error) {
	if err := validateStops(stops); err != nil {
		return nil, err
	}

	var lut LUT
	for s := 1; s < len(stops); s++ {
		lo, hi := stops[s-1], stops[s]
		span := int(hi.Pos) - int(lo.Pos)
		for i := 0; i <= span; i++ {
			t := float64(i) / float64(span)
			lut[int(lo.Pos)+i] = RGB{
				R: lerpChannel(lo.Color.R, hi.Color.R, t),
				G: lerpChannel(lo.Color.G, hi.Color.G, t),
				B: lerpChannel(lo.Color.B, hi.Color.B, t),
			}
		}
	}
	return &lut, nil
}

// lerpChannel interpolates one 8-bit channel. t=0 yields a exactly and t=1
// yields b exactly; intermediate values are rounded and cannot leave the
// byte range because the endpoints bound the interpolation.
func lerpChannel(a, b uint8, t float64) uint8 {
	v := float64(a) + t*(float64(b)-float64(a))
	return uint8(math.Round(v))
}
