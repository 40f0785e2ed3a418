package borepix

// Colorize maps each 8-bit intensity through the lookup table, producing a
// packed RGB byte sequence (3 bytes per sample).
//
// Pure per-element lookup: no interpolation, no clamping, no shared state
// beyond the read-only table. Inputs are in [0, 255] by construction of the
// uint8 type; upstream code is responsible for clamping before the values
// reach this point.
func Colorize(row []uint8, lut *LUT) []byte {
	rgb := make([]byte, len(row)*3)
	for i, v := range row {
		c := lut[v]
		rgb[i*3+0] = c.R
		rgb[i*3+1] = c.G
		rgb[i*3+2] = c.B
	}
	return rgb
}
