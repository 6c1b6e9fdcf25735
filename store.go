package filedemand

import (
	"fmt"

	"github.com/filedemand/filedemand/internal/store"
)

// Mode governs how an object is cached and persisted.
// Re-exported from internal/store for convenience.
type Mode = store.Mode

// Object modes.
const (
	Static  = store.ModeStatic
	Dynamic = store.ModeDynamic
	Cache   = store.ModeCache
	Temp    = store.ModeTemp
)

// AllModes lists every mode, in declaration order.
var AllModes = []Mode{Static, Dynamic, Cache, Temp}

// ParseMode maps a mode name ("static", "dynamic", "cache", "temp") to a Mode.
func ParseMode(s string) (Mode, error) {
	m, err := store.ParseMode(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}
