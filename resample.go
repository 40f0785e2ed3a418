package borepix

import (
	"fmt"
	"math"
)

// lanczosSupport is the filter radius in source samples at unit scale.
const lanczosSupport = 3.0

// Resample resizes a 1-D intensity row to targetWidth samples using a
// Lanczos windowed-sinc filter.
//
// The function is width-agnostic: any positive source and target widths
// work. When minifying, the kernel is stretched by the scale factor so it
// keeps covering the same source extent instead of degenerating to point
// sampling. Weights are normalized to sum to one, so a constant input
// resamples to the same constant. Samples beyond the row edges are clamped
// to the edge value.
//
// Output values can overshoot [0, 255] near sharp transitions (filter
// ringing); clamping is the caller's responsibility, not the resampler's.
func Resample(row []float64, targetWidth int) ([]float64, error) {
	if targetWidth <= 0 {
		return nil, fmt.Errorf("%w: target width must be positive, got %d", ErrConfig, targetWidth)
	}
	if len(row) == 0 {
		return nil, fmt.Errorf("%w: source row is empty", ErrConfig)
	}

	srcWidth := len(row)
	out := make([]float64, targetWidth)

	scale := float64(srcWidth) / float64(targetWidth)
	// Widen the kernel when minifying; keep unit width when magnifying.
	filterScale := scale
	if filterScale < 1 {
		filterScale = 1
	}
	support := lanczosSupport * filterScale

	for x := range targetWidth {
		// Center of destination sample x in source coordinates.
		center := (float64(x)+0.5)*scale - 0.5

		lo := int(math.Floor(center - support))
		hi := int(math.Ceil(center + support))

		var sum, weightSum float64
		for sx := lo; sx <= hi; sx++ {
			w := lanczos((float64(sx) - center) / filterScale)
			if w == 0 {
				continue
			}
			sum += w * row[clampIndex(sx, srcWidth-1)]
			weightSum += w
		}
		if weightSum != 0 {
			out[x] = sum / weightSum
		}
	}
	return out, nil
}

// lanczos is the Lanczos-3 kernel: sinc(x)·sinc(x/3) for |x| < 3, else 0.
func lanczos(x float64) float64 {
	x = math.Abs(x)
	if x >= lanczosSupport {
		return 0
	}
	if x < 1e-8 {
		return 1
	}
	px := math.Pi * x
	return lanczosSupport * math.Sin(px) * math.Sin(px/lanczosSupport) / (px * px)
}

// clampIndex clamps a source index to [0, maxIdx] (edge extension).
func clampIndex(i, maxIdx int) int {
	if i < 0 {
		return 0
	}
	if i > maxIdx {
		return maxIdx
	}
	return i
}
