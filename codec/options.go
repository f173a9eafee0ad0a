package codec

import "github.com/bfastfmt/bfast/internal/options"

// DecodeOption configures a Decoder via the functional options pattern.
type DecodeOption = options.Option[*Decoder]

// WithMaxDepth overrides the recursive nesting cap a Decoder enforces,
// in place of the MaxDepth default. Callers decoding documents known to
// be shallow and trusted may raise it; callers decoding untrusted input
// may lower it below MaxDepth for a tighter resource bound.
func WithMaxDepth(n int) DecodeOption {
	return options.NoError(func(d *Decoder) {
		d.maxDepth = n
	})
}

// WithMaxElements overrides the running decoded-value counter's ceiling,
// in place of the MaxDecodedValues default.
func WithMaxElements(n int) DecodeOption {
	return options.NoError(func(d *Decoder) {
		d.maxElements = n
	})
}
