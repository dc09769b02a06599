package gomint

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tevino/abool/v2"

	"github.com/sandrolain/gomint/pkg/cache"
	"github.com/sandrolain/gomint/pkg/parser"
	"github.com/sandrolain/gomint/pkg/scoring"
	"github.com/sandrolain/gomint/pkg/tagdict"
)

// ErrClosed is returned by a Loader after Close.
var ErrClosed = errors.New("gomint: loader closed")

// ProfileSource resolves profile names to source text. *store.Store
// implements it.
type ProfileSource interface {
	Source(ctx context.Context, name string) (string, error)
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// CacheSize is the number of compiled profiles kept in memory.
	CacheSize int
	// MaxDepth limits block nesting while parsing.
	MaxDepth int
	// Runtime options passed to scoring.New.
	Runtime []scoring.Option
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*LoaderOptions)

// WithCacheSize sets the number of compiled profiles kept in memory.
func WithCacheSize(n int) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.CacheSize = n
	}
}

// WithMaxDepth sets the maximum block nesting accepted by the parser.
func WithMaxDepth(depth int) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxDepth = depth
	}
}

// WithRuntimeOptions appends options passed to every scoring.New call.
func WithRuntimeOptions(ro ...scoring.Option) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Runtime = append(opts.Runtime, ro...)
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Logger = logger
	}
}

// Loader compiles profiles against a fixed dictionary and memoises the
// resulting runtimes by source content.
//
// Safe for concurrent use by multiple goroutines.
type Loader struct {
	dict   *tagdict.Dict
	cache  *cache.Cache
	opts   LoaderOptions
	closed *abool.AtomicBool
}

// NewLoader creates a Loader for dict.
func NewLoader(dict *tagdict.Dict, opts ...LoaderOption) *Loader {
	options := LoaderOptions{
		CacheSize: cache.DefaultCapacity,
		MaxDepth:  100,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	ro := make([]scoring.Option, 0, len(options.Runtime)+2)
	ro = append(ro, scoring.WithDebug(options.Debug), scoring.WithLogger(options.Logger))
	options.Runtime = append(ro, options.Runtime...)

	return &Loader{
		dict:   dict,
		cache:  cache.New(options.CacheSize),
		opts:   options,
		closed: abool.New(),
	}
}

// Load returns the runtime for source, compiling it on first use.
func (l *Loader) Load(source string) (*scoring.Runtime, error) {
	if l.closed.IsSet() {
		return nil, ErrClosed
	}

	// Runtimes compiled before the dictionary grew can never be hit again.
	if n := l.cache.Sync(l.dict.Fingerprint()); n > 0 && l.opts.Debug {
		l.opts.Logger.Debug("dictionary changed", slog.Int("dropped", n))
	}

	key := cache.Key(source, l.dict)
	hit := true
	rt, err := l.cache.GetOrCompile(key, func() (*scoring.Runtime, error) {
		hit = false
		profile, err := parser.Parse(source, parser.WithMaxDepth(l.opts.MaxDepth))
		if err != nil {
			return nil, err
		}
		return scoring.New(profile, l.dict, l.opts.Runtime...)
	})
	if err != nil {
		return nil, err
	}
	// Close may have cleared the cache while this runtime was compiling.
	if !hit && l.closed.IsSet() {
		l.cache.Invalidate(key)
		return nil, ErrClosed
	}

	if l.opts.Debug {
		l.opts.Logger.Debug("profile loaded",
			slog.String("profile", rt.Name()),
			slog.Bool("cache_hit", hit),
			slog.String("key", key[:16]),
		)
	}
	return rt, nil
}

// LoadNamed fetches the source called name from src and loads it.
func (l *Loader) LoadNamed(ctx context.Context, src ProfileSource, name string) (*scoring.Runtime, error) {
	if l.closed.IsSet() {
		return nil, ErrClosed
	}
	source, err := src.Source(ctx, name)
	if err != nil {
		return nil, err
	}
	return l.Load(source)
}

// Len returns the number of cached runtimes.
func (l *Loader) Len() int {
	return l.cache.Len()
}

// Close drops every cached runtime. Runtimes already handed out stay usable.
func (l *Loader) Close() error {
	if !l.closed.SetToIf(false, true) {
		return ErrClosed
	}
	l.cache.Clear()
	return nil
}
