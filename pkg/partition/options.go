package partition

import "github.com/rs/zerolog"

// Option adjusts encoder and decoder behavior.
type Option func(*options)

type options struct {
	log zerolog.Logger
}

func newOptions(opts []Option) *options {
	o := &options{log: zerolog.Nop()}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// WithLogger routes the codec's debug and warn events to log. The
// codec has no other side effects; without this option events are
// discarded.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}
