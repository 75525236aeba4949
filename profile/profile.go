// Package profile wraps [github.com/pkg/profile] behind a small functional
// configuration, so the CLI can expose profiling as ordinary flags.
package profile

import (
	"iter"
	"maps"
	"slices"

	"github.com/pkg/profile"
)

var mode = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// Modes returns an iterator over the supported mode names in sorted order.
func Modes() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(mode)))
}

// Config holds the profiler parameters.
type Config struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option applies one configuration value to Config.
type Option func(Config) Config

// WithMode selects the profiling mode. An empty or unknown mode disables
// profiling.
func WithMode(m string) Option {
	return func(c Config) Config {
		c.Mode = m

		return c
	}
}

// WithPath sets the output directory for profile files.
func WithPath(p string) Option {
	return func(c Config) Config {
		c.Path = p

		return c
	}
}

// WithQuiet suppresses the profiler's own logging.
func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		c.Quiet = quiet

		return c
	}
}

// Make builds a Config from options over the zero value.
func Make(opts ...Option) Config {
	var c Config

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// Start begins profiling as configured and returns its stopper. Both Start
// and the returned Stop are always safe to call; an empty or unknown mode
// yields a no-op.
func (c Config) Start() interface{ Stop() } {
	fn, ok := mode[c.Mode]
	if !ok {
		return ignore{}
	}

	opts := []func(*profile.Profile){fn}

	if c.Path != "" {
		opts = append(opts, profile.ProfilePath(c.Path))
	}

	if c.Quiet {
		opts = append(opts, profile.Quiet)
	}

	return profile.Start(opts...)
}

type ignore struct{}

func (ignore) Stop() {}
