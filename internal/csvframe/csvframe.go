// Package csvframe ingests depth-scan CSV files: one record per depth, the
// first field the depth, the remaining fields raw intensity samples.
package csvframe

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/borepix/borepix"
	"github.com/borepix/borepix/internal/store"
)

// DefaultChunkSize bounds how many encoded frames are held in memory before
// being flushed to the store.
const DefaultChunkSize = 500

// Result summarizes one ingestion run.
type Result struct {
	RowsProcessed  int
	FramesUpserted int
	RowsSkipped    int
}

// Ingest streams CSV records from r through the pipeline and upserts the
// encoded frames into st in chunks of chunkSize (DefaultChunkSize when
// non-positive). A header row is detected by a non-numeric first field and
// skipped.
//
// Per-row failures (malformed line, bad depth, unparsable sample, wrong
// sample count) are logged, counted in RowsSkipped and never abort the run.
// Store and context errors do abort it; the partial Result is still
// returned.
func Ingest(ctx context.Context, r io.Reader, p *borepix.Pipeline, st *store.Store, chunkSize int) (Result, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // sample count is validated by the pipeline, not the reader
	cr.ReuseRecord = true

	log := borepix.Logger()
	var res Result
	chunk := make([]store.Frame, 0, chunkSize)

	first := true
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A structurally broken line is a per-row failure; the
			// reader resumes on the next line.
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				log.Warn("skipping malformed csv line",
					slog.Int("line", perr.Line),
					slog.String("error", perr.Err.Error()))
				res.RowsSkipped++
				continue
			}
			return res, fmt.Errorf("csvframe: read: %w", err)
		}

		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		res.RowsProcessed++

		depth, samples, err := parseRecord(rec)
		if err != nil {
			log.Warn("skipping row", slog.String("error", err.Error()))
			res.RowsSkipped++
			continue
		}

		frame, err := p.ProcessRow(samples)
		if err != nil {
			var lenErr *borepix.RowLengthError
			if errors.As(err, &lenErr) {
				log.Warn("skipping row with wrong sample count",
					slog.Float64("depth", depth),
					slog.Int("expected", lenErr.Expected),
					slog.Int("actual", lenErr.Actual))
				res.RowsSkipped++
				continue
			}
			// Anything else is a configuration or encoder contract
			// failure; no later row would fare better.
			return res, fmt.Errorf("csvframe: depth %g: %w", depth, err)
		}

		chunk = append(chunk, store.Frame{
			Depth:  depth,
			Width:  frame.Width,
			Height: frame.Height,
			PNG:    frame.PNG,
		})
		if len(chunk) >= chunkSize {
			if err := st.UpsertBatch(ctx, chunk); err != nil {
				return res, err
			}
			res.FramesUpserted += len(chunk)
			chunk = chunk[:0]
		}
	}

	if len(chunk) > 0 {
		if err := st.UpsertBatch(ctx, chunk); err != nil {
			return res, err
		}
		res.FramesUpserted += len(chunk)
	}

	log.Info("ingestion complete",
		slog.Int("rows_processed", res.RowsProcessed),
		slog.Int("frames_upserted", res.FramesUpserted),
		slog.Int("rows_skipped", res.RowsSkipped))
	return res, nil
}

// parseRecord splits one CSV record into a depth and its intensity samples.
func parseRecord(rec []string) (float64, []float64, error) {
	if len(rec) < 2 {
		return 0, nil, fmt.Errorf("record has %d fields, want depth plus samples", len(rec))
	}
	depth, err := strconv.ParseFloat(rec[0], 64)
	if err != nil {
		return 0, nil, fmt.Errorf("bad depth %q: %w", rec[0], err)
	}
	samples := make([]float64, len(rec)-1)
	for i, field := range rec[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, nil, fmt.Errorf("bad sample %q at column %d: %w", field, i+1, err)
		}
		samples[i] = v
	}
	return depth, samples, nil
}

// isHeader reports whether the record looks like a header row (non-numeric
// first field).
func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(rec[0], 64)
	return err != nil
}
