package filedemand

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/filedemand/filedemand/internal/store"
)

// Defaults applied by Open.
const (
	DefaultEncoding    = "utf-8"
	DefaultExpire      = store.DefaultExpire
	DefaultLength      = store.DefaultLength
	DefaultConcurrency = 4
)

// Options configures a Registry.
type Options struct {
	Fs       afero.Fs
	Encoding string
	// FlushModes lists the modes written back by Sync. Empty disables flushing.
	FlushModes  []Mode
	CacheExpire time.Duration
	// CacheLength is advisory; the store never evicts by size.
	CacheLength int
	Concurrency int
	Clock       func() time.Time
	Logger      logrus.FieldLogger
}

// Option is a functional option for configuring Open.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Fs:          afero.NewOsFs(),
		Encoding:    DefaultEncoding,
		FlushModes:  AllModes,
		CacheExpire: DefaultExpire,
		CacheLength: DefaultLength,
		Concurrency: DefaultConcurrency,
		Clock:       time.Now,
		Logger:      logrus.StandardLogger(),
	}
}

// WithFs sets the filesystem objects live on.
func WithFs(fs afero.Fs) Option {
	return func(o *Options) {
		if fs != nil {
			o.Fs = fs
		}
	}
}

// WithEncoding sets the text encoding of raw file content (e.g. "utf-8",
// "iso-8859-1"). Names follow the WHATWG encoding labels.
func WithEncoding(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.Encoding = name
		}
	}
}

// WithFlushModes restricts Sync to entries of the given modes.
func WithFlushModes(modes ...Mode) Option {
	return func(o *Options) { o.FlushModes = modes }
}

// WithoutFlush makes Sync and Close leave the disk untouched.
func WithoutFlush() Option {
	return func(o *Options) { o.FlushModes = nil }
}

// WithCacheExpire sets the TTL of Cache-mode content.
func WithCacheExpire(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.CacheExpire = d
		}
	}
}

// WithCacheLength sets the advisory cache size.
func WithCacheLength(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.CacheLength = n
		}
	}
}

// WithConcurrency sets the number of parallel writes during Sync.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Concurrency = n
		}
	}
}

// WithClock replaces time.Now for cache expiration.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Clock = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
