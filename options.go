package pdfcreator

import (
	"io"
	"log"
	"time"

	"github.com/scottcrawfordcoach/pdf-creator/theme"
)

// Option is a functional option for configuring a Generate call.
type Option func(*generateConfig)

type generateConfig struct {
	watermark   string
	blendWeight float64
	paletteSize int
	creation    *time.Time
	logger      *log.Logger
}

func defaultConfig() *generateConfig {
	return &generateConfig{
		blendWeight: theme.DefaultBlendWeight,
		paletteSize: defaultPaletteSize,
		logger:      log.New(io.Discard, "", 0),
	}
}

// WithWatermark draws text diagonally across every page, e.g. "DRAFT".
func WithWatermark(text string) Option {
	return func(c *generateConfig) {
		c.watermark = text
	}
}

// WithBlendWeight sets how strongly explicit color suggestions pull the
// extracted palette colors, from 0 (palette only) to 1 (suggestion only).
func WithBlendWeight(w float64) Option {
	return func(c *generateConfig) {
		c.blendWeight = w
	}
}

// WithPaletteSize caps how many dominant colors are extracted from the
// brand image before theme selection.
func WithPaletteSize(n int) Option {
	return func(c *generateConfig) {
		c.paletteSize = n
	}
}

// WithCreationTime stamps the document info dictionary. Without it the
// output carries no timestamp and identical requests produce identical
// bytes.
func WithCreationTime(t time.Time) Option {
	return func(c *generateConfig) {
		c.creation = &t
	}
}

// WithLogger routes pipeline diagnostics (palette fallbacks, clipping
// warnings) to the given logger. By default they are discarded.
func WithLogger(l *log.Logger) Option {
	return func(c *generateConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
