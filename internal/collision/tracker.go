// Package collision detects repeated observation ids.
package collision

import "github.com/arloliu/iqrfit/internal/hash"

// Tracker records observation ids keyed by their xxHash64 and reports ids
// seen more than once. Distinct ids sharing a hash are compared by value, so
// a hash collision never reports a false duplicate.
type Tracker struct {
	hashFn     func(string) uint64
	ids        map[uint64][]string // hash → distinct ids with that hash
	seen       map[string]int      // id → occurrences, only for repeated ids
	duplicates []string            // repeated ids in first-repeat order
	collided   bool
	count      int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return newTrackerWithHash(hash.String)
}

func newTrackerWithHash(fn func(string) uint64) *Tracker {
	return &Tracker{
		hashFn: fn,
		ids:    make(map[uint64][]string),
		seen:   make(map[string]int),
	}
}

// Track records id and reports whether it was already tracked.
func (t *Tracker) Track(id string) bool {
	t.count++
	h := t.hashFn(id)

	bucket := t.ids[h]
	for _, existing := range bucket {
		if existing != id {
			continue
		}
		if t.seen[id] == 0 {
			t.duplicates = append(t.duplicates, id)
			t.seen[id] = 1
		}
		t.seen[id]++

		return true
	}

	if len(bucket) > 0 {
		t.collided = true
	}
	t.ids[h] = append(bucket, id)

	return false
}

// Duplicates returns the ids tracked more than once, in the order in which
// each was first repeated.
func (t *Tracker) Duplicates() []string {
	return t.duplicates
}

// Occurrences returns how many times id was tracked.
func (t *Tracker) Occurrences(id string) int {
	if n, ok := t.seen[id]; ok {
		return n
	}
	for _, existing := range t.ids[t.hashFn(id)] {
		if existing == id {
			return 1
		}
	}

	return 0
}

// HasCollision reports whether two distinct ids shared a hash.
func (t *Tracker) HasCollision() bool {
	return t.collided
}

// Count returns the number of Track calls.
func (t *Tracker) Count() int {
	return t.count
}

// Reset clears the tracker for reuse.
func (t *Tracker) Reset() {
	clear(t.ids)
	clear(t.seen)
	t.duplicates = t.duplicates[:0]
	t.collided = false
	t.count = 0
}
