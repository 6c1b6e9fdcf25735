package store

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Defaults applied by New.
const (
	DefaultExpire = 10 * time.Minute
	DefaultLength = 20
)

// Options configures a Store.
type Options struct {
	Expire time.Duration
	// Length is an advisory size cap. It is recorded but never enforced.
	Length int
	Clock  func() time.Time
	Logger logrus.FieldLogger
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Expire: DefaultExpire,
		Length: DefaultLength,
		Clock:  time.Now,
		Logger: logrus.StandardLogger(),
	}
}

// WithExpire sets the TTL of ModeCache entries.
func WithExpire(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Expire = d
		}
	}
}

// WithLength sets the advisory entry cap.
func WithLength(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Length = n
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Clock = now
		}
	}
}

// WithLogger sets the logger used to report expirations.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
