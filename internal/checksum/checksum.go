// Package checksum tracks content digests of source posts so unchanged
// files do not trigger a republish.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Tracker remembers the last seen digest per file name.
// It is not safe for concurrent use.
type Tracker struct {
	sums map[string]string
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{sums: make(map[string]string)}
}

// Changed records data for name and reports whether it differs from the
// previously recorded content. The first observation of a name counts as a change.
func (t *Tracker) Changed(name string, data []byte) bool {
	sum := Sum(data)
	if prev, ok := t.sums[name]; ok && prev == sum {
		return false
	}
	t.sums[name] = sum
	return true
}

// Forget drops name so its next observation counts as a change.
// It reports whether name was tracked.
func (t *Tracker) Forget(name string) bool {
	if _, ok := t.sums[name]; !ok {
		return false
	}
	delete(t.sums, name)
	return true
}

// Known reports whether name has a recorded digest.
func (t *Tracker) Known(name string) bool {
	_, ok := t.sums[name]
	return ok
}

// Len returns the number of tracked names.
func (t *Tracker) Len() int { return len(t.sums) }
