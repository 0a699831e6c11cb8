package cache

import (
	"encoding/json"
	"time"
)

// Entry is one cached payload with its TTL metadata.
type Entry struct {
	// Key is the SHA-256 of the normalised source.
	Key string `json:"key"`

	// Source is the URL the payload was fetched from.
	Source string `json:"source"`

	// Data is the raw payload.
	Data json.RawMessage `json:"data"`

	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	TTLSeconds int       `json:"ttl_seconds"`
}

// NewEntry creates an entry that expires ttlSeconds from now.
func NewEntry(key, source string, data json.RawMessage, ttlSeconds int) *Entry {
	now := time.Now().UTC()
	return &Entry{
		Key:        key,
		Source:     source,
		Data:       data,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSeconds: ttlSeconds,
	}
}

// IsExpired reports whether the entry is past its expiry time.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// IsValid is the inverse of IsExpired.
func (e *Entry) IsValid() bool {
	return !e.IsExpired()
}

// Age returns the time since the entry was written.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// TimeUntilExpiration returns the remaining lifetime, or 0 once expired.
func (e *Entry) TimeUntilExpiration() time.Duration {
	remaining := time.Until(e.ExpiresAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
