package frame

import "github.com/bfastfmt/bfast/internal/options"

// EncodeOption configures an EncodeOptions value via the functional
// options pattern.
type EncodeOption = options.Option[*EncodeOptions]

// WithCompress requests LZ4 framing of the encoded output, subject to
// ShouldCompress's size threshold.
func WithCompress(compress bool) EncodeOption {
	return options.NoError(func(o *EncodeOptions) {
		o.Compress = compress
	})
}

// WithCompressionThreshold overrides CompressThreshold, the minimum
// uncompressed size at or above which a Compress-requesting encode
// actually compresses its output.
func WithCompressionThreshold(n int) EncodeOption {
	return options.NoError(func(o *EncodeOptions) {
		o.CompressionThreshold = n
	})
}

// WithParallelChunkSize overrides ChunkSize, the size of each
// independently-compressed LZ4 frame once chunked parallel compression
// kicks in.
func WithParallelChunkSize(n int) EncodeOption {
	return options.NoError(func(o *EncodeOptions) {
		o.ParallelChunkSize = n
	})
}

// NewEncodeOptions builds an EncodeOptions from zero or more EncodeOption
// values, applied in order.
func NewEncodeOptions(opts ...EncodeOption) (EncodeOptions, error) {
	var o EncodeOptions
	if err := options.Apply(&o, opts...); err != nil {
		return EncodeOptions{}, err
	}

	return o, nil
}
