// Package store implements the in-memory content layer.
//
// The Store maps opaque string keys to decoded content. Entries written in
// ModeCache expire after a configured TTL; every other mode stays resident
// until replaced. Eviction is lazy: each Set, Exists and Get first sweeps the
// buckets of the expiration index whose instant has passed. There is no
// background timer.
package store

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned by Get when no entry is resident for a key.
var ErrNotFound = errors.New("store: not found")

// Mode governs persistence and expiration of an entry.
type Mode int

const (
	// ModeStatic content is read-only and never expires.
	ModeStatic Mode = iota + 1
	// ModeDynamic content is writable and never expires.
	ModeDynamic
	// ModeCache content is writable and expires after the store TTL.
	ModeCache
	// ModeTemp content is never held by the store.
	ModeTemp
)

var modeNames = map[Mode]string{
	ModeStatic:  "static",
	ModeDynamic: "dynamic",
	ModeCache:   "cache",
	ModeTemp:    "temp",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// Expires reports whether entries of this mode are scheduled for eviction.
func (m Mode) Expires() bool { return m == ModeCache }

// Cached reports whether reads and writes of this mode go through the store.
func (m Mode) Cached() bool {
	return m == ModeStatic || m == ModeDynamic || m == ModeCache
}

// ParseMode maps a case-insensitive mode name to its Mode.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// SetOptions describes how an entry is held.
type SetOptions struct {
	Mode Mode
	JSON bool
}

// Entry is a resident piece of content.
type Entry struct {
	Key       string
	Mode      Mode
	JSON      bool
	Content   any
	ExpiresAt time.Time // zero for non-expiring modes
}

// Store holds entries keyed by an opaque string.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
	expiry  *expirationIndex
	stopped bool

	expire time.Duration
	length int
	now    func() time.Time
	log    logrus.FieldLogger
}

// New creates an empty store.
func New(opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Store{
		entries: make(map[string]*Entry),
		expiry:  newExpirationIndex(),
		expire:  o.Expire,
		length:  o.Length,
		now:     o.Clock,
		log:     o.Logger,
	}
}

// Expire returns the TTL applied to ModeCache entries.
func (s *Store) Expire() time.Duration { return s.expire }

// Length returns the advisory entry cap.
func (s *Store) Length() int { return s.length }

// Set inserts content for key, replacing any previous entry wholesale.
func (s *Store) Set(key string, content any, opts SetOptions) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	if prev, ok := s.entries[key]; ok {
		s.expiry.remove(prev)
		delete(s.entries, key)
	}

	e := &Entry{
		Key:     key,
		Mode:    opts.Mode,
		JSON:    opts.JSON,
		Content: content,
	}
	s.entries[key] = e

	if !e.Mode.Expires() {
		return s
	}

	e.ExpiresAt = now.Add(s.expire)
	s.expiry.add(e)

	return s
}

// Exists reports whether an entry is resident for key.
func (s *Store) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(s.now())
	_, ok := s.entries[key]
	return ok
}

// Get returns a copy of the entry for key.
func (s *Store) Get(key string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(s.now())
	e, ok := s.entries[key]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return *e, nil
}

// Len returns the number of resident entries, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Entries iterates over a snapshot of the resident entries. It does not sweep.
func (s *Store) Entries() iter.Seq2[string, Entry] {
	s.mu.Lock()
	snapshot := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		snapshot = append(snapshot, *e)
	}
	s.mu.Unlock()

	return func(yield func(string, Entry) bool) {
		for _, e := range snapshot {
			if !yield(e.Key, e) {
				return
			}
		}
	}
}

// Stop freezes expiration. Entries already past due stay resident.
func (s *Store) Stop() *Store {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	return s
}

// Start resumes expiration processing.
func (s *Store) Start() *Store {
	s.mu.Lock()
	s.stopped = false
	s.mu.Unlock()
	return s
}

// Stopped reports whether expiration is frozen.
func (s *Store) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// sweep evicts every bucket due at or before now.
// Must be called with lock held.
func (s *Store) sweep(now time.Time) {
	if s.stopped {
		return
	}

	for _, bucket := range s.expiry.popDue(now) {
		for key, e := range bucket {
			// The key may have been replaced since this bucket was filled.
			if cur, ok := s.entries[key]; ok && cur == e {
				delete(s.entries, key)
				s.log.WithFields(logrus.Fields{
					"key":        key,
					"expired_at": e.ExpiresAt,
				}).Debug("cache entry expired")
			}
		}
	}
}
