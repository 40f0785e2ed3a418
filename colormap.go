package borepix

import "fmt"

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// ColorStop anchors a color at a specific intensity in the colormap.
type ColorStop struct {
	Pos   uint8 // Intensity position, 0 to 255
	Color RGB   // Color at this intensity
}

// DefaultStops is the compiled-in depth colormap: dark blue (deep) through
// cyan, green and yellow to red (shallow). The table is fixed at build time;
// callers that need a different gradient swap it via WithStops before the
// lookup table is constructed, never afterwards.
var DefaultStops = []ColorStop{
	{Pos: 0, Color: RGB{0, 0, 128}},     // dark blue
	{Pos: 64, Color: RGB{0, 128, 255}},  // cyan
	{Pos: 128, Color: RGB{0, 255, 128}}, // green
	{Pos: 192, Color: RGB{255, 255, 0}}, // yellow
	{Pos: 255, Color: RGB{255, 0, 0}},   // red
}

// validateStops checks the stop-table invariants: at least two stops,
// strictly ascending positions, first anchored at 0 and last at 255.
func validateStops(stops []ColorStop) error {
	if len(stops) < 2 {
		return fmt.Errorf("%w: need at least 2 color stops, got %d", ErrConfig, len(stops))
	}
	if stops[0].Pos != 0 {
		return fmt.Errorf("%w: first color stop must be at position 0, got %d", ErrConfig, stops[0].Pos)
	}
	if last := stops[len(stops)-1].Pos; last != 255 {
		return fmt.Errorf("%w: last color stop must be at position 255, got %d", ErrConfig, last)
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].Pos <= stops[i-1].Pos {
			return fmt.Errorf("%w: color stops must be strictly ascending: stop %d at position %d does not follow %d",
				ErrConfig, i, stops[i].Pos, stops[i-1].Pos)
		}
	}
	return nil
}
