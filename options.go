package borepix

// Option configures a Pipeline during creation.
//
// Example:
//
//	// Defaults: 200-sample input, 150-pixel output, DefaultStops.
//	p, err := borepix.NewPipeline()
//
//	// Custom row geometry
//	p, err := borepix.NewPipeline(borepix.WithWidths(400, 300))
type Option func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	sourceWidth int
	targetWidth int
	stops       []ColorStop
}

// defaultPipelineOptions returns the default pipeline options.
func defaultPipelineOptions() pipelineOptions {
	return pipelineOptions{
		sourceWidth: DefaultSourceWidth,
		targetWidth: DefaultTargetWidth,
		stops:       DefaultStops,
	}
}

// WithWidths sets the expected input row length and the output image width.
// Both must be positive; NewPipeline fails otherwise.
func WithWidths(source, target int) Option {
	return func(o *pipelineOptions) {
		o.sourceWidth = source
		o.targetWidth = target
	}
}

// WithStops replaces the compiled-in colormap stop table. The stops must
// satisfy the usual invariants (at least two, strictly ascending, anchored
// at 0 and 255); NewPipeline fails with ErrConfig otherwise.
//
// The table is consumed at construction time only; swapping stops after the
// lookup table is built has no effect.
func WithStops(stops []ColorStop) Option {
	return func(o *pipelineOptions) {
		o.stops = stops
	}
}
