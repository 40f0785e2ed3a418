// Package borepix converts rows of raw depth-scan intensities into small,
// visually interpretable colorized PNG strips.
//
// # Overview
//
// Each input row is one horizontal scan line: a fixed number of numeric
// samples, nominally in [0, 255], one per pixel column. The pipeline clamps
// the samples into the 8-bit range, resamples the row to the target width
// with a Lanczos windowed-sinc filter, maps each intensity to RGB through a
// precomputed 256-entry colormap lookup table, and encodes the result as a
// deterministic 1-pixel-tall truecolor PNG.
//
// # Quick Start
//
//	p, err := borepix.NewPipeline() // 200 samples in, 150 pixels out
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	frame, err := p.ProcessRow(samples)
//	if err != nil {
//		// *borepix.RowLengthError: this row had the wrong sample count;
//		// skip it and continue with the rest of the batch.
//	}
//	_ = os.WriteFile("row.png", frame.PNG, 0o644)
//
// # Concurrency
//
// A Pipeline is stateless per call. Its lookup table is built once during
// NewPipeline and never mutated, so ProcessRow may be invoked from any
// number of goroutines with no locking and no ordering requirements between
// rows.
//
// # Architecture
//
// The module is organized into:
//   - Public API: ColorStop, BuildLUT, Resample, Colorize, EncodePNG, Pipeline
//   - internal/csvframe: streaming CSV ingestion with per-row error isolation
//   - internal/store: SQLite frame persistence keyed by depth
//   - internal/httpapi: HTTP API serving stored frames and the colormap legend
//   - cmd/borepix: ingest / serve / verify command-line tool
package borepix
