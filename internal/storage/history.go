// Package storage persists which URLs were already delivered, so a
// digest never repeats a story a previous run mailed out. Distinct from
// the summary cache: that one remembers what a page said, this one
// remembers that we told the reader about it.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
)

// History is the sent-item store. Entries expire after the configured
// TTL so a story can reappear once enough time has passed.
type History interface {
	Seen(url string) (bool, error)
	Record(url, title string) error
	Close() error
}

// HashURL produces the stable identity key for a delivered URL.
func HashURL(url string) string {
	h := sha256.New()
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
