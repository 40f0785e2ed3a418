package borepix

import (
	"fmt"
	"log/slog"
	"math"
)

// Default row geometry, matching the upstream scan format.
const (
	DefaultSourceWidth = 200
	DefaultTargetWidth = 150
)

// Encoded is one finished frame: the PNG bytes plus the dimensions used to
// produce them. Ownership transfers to the caller.
type Encoded struct {
	PNG    []byte
	Width  int
	Height int
}

// Pipeline converts raw intensity rows into colorized PNG strips.
//
// A Pipeline holds no per-row state. The only shared object is the lookup
// table, which is built during NewPipeline and never mutated, so a single
// Pipeline may be used from any number of goroutines without locking.
type Pipeline struct {
	lut         *LUT
	sourceWidth int
	targetWidth int
}

// NewPipeline builds the lookup table and validates the row geometry.
// Configuration errors (bad stop table, non-positive widths) surface here,
// before any row is processed; they are never reported per-row.
func NewPipeline(opts ...Option) (*Pipeline, error) {
	o := defaultPipelineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.sourceWidth <= 0 {
		return nil, fmt.Errorf("%w: source width must be positive, got %d", ErrConfig, o.sourceWidth)
	}
	if o.targetWidth <= 0 {
		return nil, fmt.Errorf("%w: target width must be positive, got %d", ErrConfig, o.targetWidth)
	}
	lut, err := BuildLUT(o.stops)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		lut:         lut,
		sourceWidth: o.sourceWidth,
		targetWidth: o.targetWidth,
	}, nil
}

// SourceWidth returns the expected input row length.
func (p *Pipeline) SourceWidth() int { return p.sourceWidth }

// TargetWidth returns the output image width.
func (p *Pipeline) TargetWidth() int { return p.targetWidth }

// LUT returns the pipeline's lookup table. The table is read-only; callers
// must not modify it.
func (p *Pipeline) LUT() *LUT { return p.lut }

// ProcessRow runs one raw intensity row through the full pipeline:
// saturating clamp to 8 bits, length validation, Lanczos resample to the
// target width, re-quantization, colormap lookup, PNG encoding.
//
// Out-of-range samples are clamped, never rejected; clamping is the only
// implicit correction the pipeline performs. A row whose length disagrees
// with the configured source width returns a *RowLengthError and produces
// no image; the failure is isolated to that row.
func (p *Pipeline) ProcessRow(raw []float64) (Encoded, error) {
	// Saturating clamp into the 8-bit range. Truncation rather than
	// rounding here mirrors the upstream quantization of raw samples.
	clamped := make([]uint8, len(raw))
	for i, v := range raw {
		clamped[i] = clampUint8(v)
	}

	if len(clamped) != p.sourceWidth {
		return Encoded{}, &RowLengthError{Expected: p.sourceWidth, Actual: len(clamped)}
	}

	// Promote to float only for the interpolation step.
	src := make([]float64, len(clamped))
	for i, v := range clamped {
		src[i] = float64(v)
	}
	resampled, err := Resample(src, p.targetWidth)
	if err != nil {
		return Encoded{}, err
	}

	// The filter can overshoot [0, 255] at sharp transitions; re-quantize
	// with saturating rounding.
	row := make([]uint8, len(resampled))
	for i, v := range resampled {
		row[i] = roundUint8(v)
	}

	rgb := Colorize(row, p.lut)

	png, err := EncodePNG(rgb, p.targetWidth)
	if err != nil {
		return Encoded{}, err
	}

	Logger().Debug("processed row",
		slog.Int("source_width", p.sourceWidth),
		slog.Int("target_width", p.targetWidth),
		slog.Int("png_bytes", len(png)))

	return Encoded{PNG: png, Width: p.targetWidth, Height: 1}, nil
}

// clampUint8 clips v into [0, 255] and truncates the fraction. NaN maps
// to 0.
func clampUint8(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// roundUint8 clips v into [0, 255] and rounds to the nearest integer. NaN
// maps to 0.
func roundUint8(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
