package borepix

import (
	"errors"
	"testing"
)

func TestBuildLUTStopAnchors(t *testing.T) {
	lut, err := BuildLUT(DefaultStops)
	if err != nil {
		t.Fatalf("BuildLUT(DefaultStops) = %v", err)
	}

	// Every stop position must map to the stop color exactly, including
	// positions shared between two segments.
	for _, stop := range DefaultStops {
		if got := lut[stop.Pos]; got != stop.Color {
			t.Errorf("lut[%d] = %v, want %v", stop.Pos, got, stop.Color)
		}
	}
}

func TestBuildLUTBoundaries(t *testing.T) {
	lut, err := BuildLUT(DefaultStops)
	if err != nil {
		t.Fatalf("BuildLUT(DefaultStops) = %v", err)
	}

	darkBlue := RGB{0, 0, 128}
	red := RGB{255, 0, 0}
	if lut[0] != darkBlue {
		t.Errorf("lut[0] = %v, want %v (dark blue)", lut[0], darkBlue)
	}
	if lut[255] != red {
		t.Errorf("lut[255] = %v, want %v (red)", lut[255], red)
	}
}

func TestBuildLUTMonotonicSegments(t *testing.T) {
	lut, err := BuildLUT(DefaultStops)
	if err != nil {
		t.Fatalf("BuildLUT(DefaultStops) = %v", err)
	}

	// Within each segment, every channel must trend monotonically toward
	// the next stop's value and never overshoot either endpoint.
	for s := 1; s < len(DefaultStops); s++ {
		lo, hi := DefaultStops[s-1], DefaultStops[s]
		checkChannel := func(name string, get func(RGB) uint8) {
			a, b := get(lo.Color), get(hi.Color)
			minC, maxC := a, b
			if minC > maxC {
				minC, maxC = maxC, minC
			}
			prev := get(lut[lo.Pos])
			for pos := int(lo.Pos) + 1; pos <= int(hi.Pos); pos++ {
				cur := get(lut[pos])
				if cur < minC || cur > maxC {
					t.Errorf("segment %d-%d channel %s: lut[%d]=%d outside [%d,%d]",
						lo.Pos, hi.Pos, name, pos, cur, minC, maxC)
				}
				if a <= b && cur < prev {
					t.Errorf("segment %d-%d channel %s: lut[%d]=%d decreases (prev %d)",
						lo.Pos, hi.Pos, name, pos, cur, prev)
				}
				if a >= b && cur > prev {
					t.Errorf("segment %d-%d channel %s: lut[%d]=%d increases (prev %d)",
						lo.Pos, hi.Pos, name, pos, cur, prev)
				}
				prev = cur
			}
		}
		checkChannel("R", func(c RGB) uint8 { return c.R })
		checkChannel("G", func(c RGB) uint8 { return c.G })
		checkChannel("B", func(c RGB) uint8 { return c.B })
	}
}

func TestBuildLUTDeterministic(t *testing.T) {
	a, err := BuildLUT(DefaultStops)
	if err != nil {
		t.Fatalf("BuildLUT() = %v", err)
	}
	b, err := BuildLUT(DefaultStops)
	if err != nil {
		t.Fatalf("BuildLUT() = %v", err)
	}
	if *a != *b {
		t.Error("two builds from identical stops produced different tables")
	}
}

func TestBuildLUTInvalidStops(t *testing.T) {
	tests := []struct {
		name  string
		stops []ColorStop
	}{
		{"empty", nil},
		{"single stop", []ColorStop{{Pos: 0, Color: RGB{0, 0, 0}}}},
		{"first not zero", []ColorStop{
			{Pos: 1, Color: RGB{}},
			{Pos: 255, Color: RGB{}},
		}},
		{"last not 255", []ColorStop{
			{Pos: 0, Color: RGB{}},
			{Pos: 254, Color: RGB{}},
		}},
		{"unsorted", []ColorStop{
			{Pos: 0, Color: RGB{}},
			{Pos: 128, Color: RGB{}},
			{Pos: 64, Color: RGB{}},
			{Pos: 255, Color: RGB{}},
		}},
		{"duplicate position", []ColorStop{
			{Pos: 0, Color: RGB{}},
			{Pos: 64, Color: RGB{}},
			{Pos: 64, Color: RGB{}},
			{Pos: 255, Color: RGB{}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildLUT(tt.stops); !errors.Is(err, ErrConfig) {
				t.Errorf("BuildLUT(%s) = %v, want ErrConfig", tt.name, err)
			}
		})
	}
}

func TestBuildLUTTwoStops(t *testing.T) {
	// Minimal valid table: a straight black-to-white ramp.
	lut, err := BuildLUT([]ColorStop{
		{Pos: 0, Color: RGB{0, 0, 0}},
		{Pos: 255, Color: RGB{255, 255, 255}},
	})
	if err != nil {
		t.Fatalf("BuildLUT() = %v", err)
	}
	for i := range 256 {
		want := RGB{uint8(i), uint8(i), uint8(i)}
		if lut[i] != want {
			t.Fatalf("lut[%d] = %v, want %v", i, lut[i], want)
		}
	}
}
