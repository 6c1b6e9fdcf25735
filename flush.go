package filedemand

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// Sync writes resident content whose mode is in the flush list back to disk,
// JSON-encoding entries held as JSON. Every write is attempted; the errors of
// failed writes are joined.
func (r *Registry) Sync() error {
	if len(r.opts.FlushModes) == 0 {
		return nil
	}

	allowed := make(map[Mode]bool, len(r.opts.FlushModes))
	for _, m := range r.opts.FlushModes {
		allowed[m] = true
	}

	var written atomic.Int64
	p := pool.New().WithErrors().WithMaxGoroutines(r.opts.Concurrency)

	for path, e := range r.store.Entries() {
		if !allowed[e.Mode] {
			continue
		}
		p.Go(func() error {
			data, err := r.encode(e.Content, e.JSON)
			if err != nil {
				return fmt.Errorf("flush %s: %w", path, err)
			}
			if err := r.writeFile(path, data); err != nil {
				return fmt.Errorf("flush: %w", err)
			}
			written.Add(1)
			return nil
		})
	}

	err := p.Wait()

	r.log.WithFields(logrus.Fields{
		"action":  "sync",
		"written": written.Load(),
	}).Debug("cache flushed")

	return err
}

// Close freezes cache expiration and flushes. Content stays readable from
// memory afterwards but no longer expires.
func (r *Registry) Close() error {
	r.store.Stop()
	return r.Sync()
}
