package store

import (
	"time"

	"github.com/tidwall/btree"
)

// expirationIndex groups expiring entries into buckets keyed by their exact
// expiry instant in Unix nanoseconds. Buckets are sets: entries expiring at
// the same instant share one.
type expirationIndex struct {
	buckets *btree.Map[int64, map[string]*Entry]
}

func newExpirationIndex() *expirationIndex {
	return &expirationIndex{
		buckets: btree.NewMap[int64, map[string]*Entry](0),
	}
}

func bucketOf(t time.Time) int64 { return t.UnixNano() }

func (x *expirationIndex) add(e *Entry) {
	at := bucketOf(e.ExpiresAt)
	bucket, ok := x.buckets.Get(at)
	if !ok {
		bucket = make(map[string]*Entry)
		x.buckets.Set(at, bucket)
	}
	bucket[e.Key] = e
}

// remove drops e from its bucket. Entries without an expiry are ignored.
func (x *expirationIndex) remove(e *Entry) {
	if e.ExpiresAt.IsZero() {
		return
	}

	at := bucketOf(e.ExpiresAt)
	bucket, ok := x.buckets.Get(at)
	if !ok {
		return
	}
	if cur, ok := bucket[e.Key]; ok && cur == e {
		delete(bucket, e.Key)
	}
	if len(bucket) == 0 {
		x.buckets.Delete(at)
	}
}

// popDue removes and returns, oldest first, every bucket whose instant is at
// or before now.
func (x *expirationIndex) popDue(now time.Time) []map[string]*Entry {
	limit := bucketOf(now)

	var due []map[string]*Entry
	for {
		at, bucket, ok := x.buckets.Min()
		if !ok || at > limit {
			return due
		}
		x.buckets.Delete(at)
		due = append(due, bucket)
	}
}

func (x *expirationIndex) len() int { return x.buckets.Len() }
