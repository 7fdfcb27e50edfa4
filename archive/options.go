package archive

import (
	"github.com/google/uuid"

	"github.com/arloliu/cmpent"
	"github.com/arloliu/cmpent/compress"
	"github.com/arloliu/cmpent/format"
	"github.com/arloliu/cmpent/internal/options"
)

// WriterConfig holds the settings of a Writer.
type WriterConfig struct {
	codec compress.Codec
	id    uuid.UUID
}

func newWriterConfig() *WriterConfig {
	return &WriterConfig{codec: compress.NewNoOpCodec()}
}

// WriterOption represents a functional option for configuring a Writer.
// This is a type alias for the generic Option interface specialized for WriterConfig.
type WriterOption = options.Option[*WriterConfig]

// WithCompression sets the codec applied to frame bodies. The default is
// format.CompressionNone.
func WithCompression(comp format.CompressionType) WriterOption {
	return options.New(func(c *WriterConfig) error {
		codec, err := compress.GetCodec(comp)
		if err != nil {
			return err
		}
		c.codec = codec

		return nil
	})
}

// WithStreamID sets the stream id written into the stream header. By default a
// random id is generated.
func WithStreamID(id uuid.UUID) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.id = id
	})
}

// ReaderConfig holds the settings of a Reader.
type ReaderConfig struct {
	parseOpts []cmpent.ParseOption
}

// ReaderOption represents a functional option for configuring a Reader.
// This is a type alias for the generic Option interface specialized for ReaderConfig.
type ReaderOption = options.Option[*ReaderConfig]

// WithParseOptions sets the options passed to cmpent.Parse for every entity read.
func WithParseOptions(opts ...cmpent.ParseOption) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.parseOpts = append(c.parseOpts, opts...)
	})
}
