package subrename

import (
	"github.com/charmbracelet/log"
	"github.com/mydehq/subrename/internal/config"
	"github.com/mydehq/subrename/internal/types"
)

// Option configures Plan and Rename.
type Option func(*options)

type options struct {
	dryRun    bool
	strict    bool
	language  bool
	detect    bool
	normalize bool
	maxBytes  int64
	events    func(Event)
	logger    *log.Logger
}

func defaultOptions() *options {
	d := config.GetDefaults()
	return &options{
		language:  d.Language.Enabled,
		detect:    d.Language.Detect,
		normalize: d.Language.Normalize,
		maxBytes:  d.Language.MaxBytes,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithConfig applies the behavioural settings of cfg. Options given after
// it override individual values.
func WithConfig(cfg *types.Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		o.dryRun = cfg.DryRun
		o.strict = cfg.Strict
		o.language = cfg.Language.Enabled
		o.detect = cfg.Language.Detect
		o.normalize = cfg.Language.Normalize
		if cfg.Language.MaxBytes > 0 {
			o.maxBytes = cfg.Language.MaxBytes
		}
	}
}

// WithDryRun enables dry-run mode (no files are renamed)
func WithDryRun() Option {
	return func(o *options) { o.dryRun = true }
}

// WithStrict fails with ErrCountMismatch when the number of videos and
// subtitles differ instead of pairing the shorter list.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// WithoutLanguage leaves language tags out of target names.
func WithoutLanguage() Option {
	return func(o *options) { o.language = false }
}

// WithoutDetection only takes language tags from file names.
func WithoutDetection() Option {
	return func(o *options) { o.detect = false }
}

// WithNormalize maps language tags to their ISO 639-1 form.
func WithNormalize() Option {
	return func(o *options) { o.normalize = true }
}

// WithMaxBytes bounds how much of a subtitle is read for detection.
func WithMaxBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBytes = n
		}
	}
}

// WithEvents sets a callback for progress events
func WithEvents(fn func(Event)) Option {
	return func(o *options) { o.events = fn }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}
